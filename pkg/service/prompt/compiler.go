package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

//go:embed template/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("system").Parse(systemPromptTmpl))

// DefaultInstruction is returned verbatim whenever a module has no
// training data. Byte-stable across calls.
const DefaultInstruction = "Bạn là trợ lý bán hàng thân thiện. Hãy chào khách, hỏi nhu cầu của khách và trả lời lịch sự, ngắn gọn bằng tiếng Việt. Nếu không biết thông tin sản phẩm, hãy xin phép khách chờ nhân viên phản hồi."

// profileThreshold gates which priorities/traits enter the customer
// profile block
const profileThreshold = 7

type promptProduct struct {
	Name        string
	Description string
	Price       string
	Currency    string
	Variants    string
	Features    string
}

type promptStep struct {
	Step        int
	Name        string
	Description string
	Triggers    string
}

type promptData struct {
	ModuleName    string
	ProductInfo   string
	Products      []promptProduct
	StyleTone     string
	StyleLanguage string
	EmojiPolicy   string
	Abbreviations string
	Steps         []promptStep
	FAQs          []model.FAQ
	HasProfile    bool
	ProfileStyle  string
	ProfileTone   string
	ProfileNotes  []string
	Guidance      []string
}

// Compile assembles the system instruction for a module, optionally
// adapted to a customer personality. Output is deterministic given
// identical inputs.
func Compile(module *model.Module, personality *model.CustomerPersonality) string {
	if module == nil || module.Training == nil {
		return DefaultInstruction
	}

	td := module.Training
	data := promptData{
		ModuleName:    module.Name,
		ProductInfo:   strings.TrimSpace(td.ProductInfo),
		StyleTone:     defaultStr(td.Style.Tone, "thân thiện, nhiệt tình"),
		StyleLanguage: defaultStr(td.Style.Language, "tiếng Việt"),
		EmojiPolicy:   emojiPolicy(td.Style.UseEmoji),
		Abbreviations: strings.Join(td.Style.Abbreviations, ", "),
	}

	for _, p := range module.Products {
		data.Products = append(data.Products, promptProduct{
			Name:        p.Name,
			Description: p.Description,
			Price:       formatPrice(p.Price),
			Currency:    p.Currency,
			Variants:    formatVariants(p.Variants),
			Features:    strings.Join(p.Features, ", "),
		})
	}

	steps := make([]model.SalesStep, len(td.SalesFlow))
	copy(steps, td.SalesFlow)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].Step < steps[j].Step })
	for _, s := range steps {
		data.Steps = append(data.Steps, promptStep{
			Step:        s.Step,
			Name:        s.Name,
			Description: s.Description,
			Triggers:    strings.Join(s.Triggers, ", "),
		})
	}

	data.FAQs = td.FAQs

	if personality != nil {
		data.HasProfile = true
		data.ProfileStyle = personality.Style.String()
		data.ProfileTone = personality.Tone.String()
		data.ProfileNotes = profileNotes(personality)
		data.Guidance = guidance(personality)
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, data); err != nil {
		// The template is static and the data contains no functions;
		// execution cannot fail with valid inputs.
		return DefaultInstruction
	}
	return buf.String()
}

// profileNotes lists priorities and traits whose score exceeds the
// threshold, in a fixed order so the output stays deterministic.
func profileNotes(p *model.CustomerPersonality) []string {
	var notes []string
	priorities := []struct {
		name  string
		score float64
	}{
		{"giá cả", p.Priorities.Price},
		{"chất lượng", p.Priorities.Quality},
		{"tốc độ", p.Priorities.Speed},
		{"dịch vụ", p.Priorities.Service},
	}
	for _, pr := range priorities {
		if pr.score > profileThreshold {
			notes = append(notes, fmt.Sprintf("Khách ưu tiên %s (điểm %.0f)", pr.name, pr.score))
		}
	}

	traits := []struct {
		name  string
		score float64
	}{
		{"quyết đoán", p.Traits.Decisive},
		{"thích chi tiết", p.Traits.DetailOriented},
		{"nhạy cảm về giá", p.Traits.PriceSensitive},
		{"trung thành thương hiệu", p.Traits.BrandLoyal},
	}
	for _, tr := range traits {
		if tr.score > profileThreshold {
			notes = append(notes, fmt.Sprintf("Tính cách: %s (điểm %.0f)", tr.name, tr.score))
		}
	}
	return notes
}

// guidance emits adaptive instruction lines keyed off the communication
// style and the dominant traits.
func guidance(p *model.CustomerPersonality) []string {
	var lines []string
	switch p.Style {
	case types.StyleDirect:
		lines = append(lines, "Trả lời thẳng vào vấn đề, không vòng vo.")
	case types.StylePolite, types.StyleFormal:
		lines = append(lines, "Giữ cách xưng hô trang trọng, lịch sự.")
	case types.StyleCasual:
		lines = append(lines, "Được phép dùng giọng điệu thoải mái, gần gũi.")
	}
	if p.Traits.PriceSensitive > profileThreshold {
		lines = append(lines, "Chủ động nhắc khuyến mãi và so sánh giá trị theo giá.")
	}
	if p.Traits.DetailOriented > profileThreshold {
		lines = append(lines, "Cung cấp thông số và chi tiết sản phẩm đầy đủ.")
	}
	return lines
}

func emojiPolicy(useEmoji bool) string {
	if useEmoji {
		return "dùng emoji vừa phải để tạo thiện cảm"
	}
	return "không dùng emoji"
}

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

func formatVariants(variants []model.ProductVariant) string {
	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		s := v.Name
		if v.Value != "" {
			s += " " + v.Value
		}
		if v.Price != nil {
			s += fmt.Sprintf(" (%s)", formatPrice(*v.Price))
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func defaultStr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
