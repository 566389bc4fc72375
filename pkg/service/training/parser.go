package training

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
)

// Parse extracts structured TrainingData from merchant-supplied free
// text via labeled-section pattern matching. A malformed section is
// simply omitted from the result, never fatal. The raw source text is
// always retained.
func Parse(text string) *model.TrainingData {
	td := &model.TrainingData{
		RawText: text,
	}

	sections := splitSections(text)

	td.ProductInfo = strings.TrimSpace(sections["product"])
	td.SalesFlow = parseSteps(sections["flow"])
	td.Style = parseStyle(sections["style"])
	td.FAQs = parseFAQs(sections["faq"])

	if len(td.SalesFlow) == 0 {
		td.SalesFlow = DefaultSalesFlow()
	}

	return td
}

// Section header labels, checked case-insensitively at line starts
var sectionLabels = map[string][]string{
	"product": {"sản phẩm", "thông tin sản phẩm", "product", "products"},
	"flow":    {"quy trình", "quy trình bán hàng", "sales flow", "flow"},
	"style":   {"phong cách", "giao tiếp", "communication", "style"},
	"faq":     {"faq", "câu hỏi thường gặp", "hỏi đáp", "q&a"},
}

// splitSections walks the text line by line, assigning content to the
// most recently seen labeled section. Text before the first label is
// treated as product info.
func splitSections(text string) map[string]string {
	sections := map[string]*strings.Builder{}
	current := "product"

	for _, line := range strings.Split(text, "\n") {
		if label := matchLabel(line); label != "" {
			current = label
			continue
		}
		if sections[current] == nil {
			sections[current] = &strings.Builder{}
		}
		sections[current].WriteString(line)
		sections[current].WriteString("\n")
	}

	out := map[string]string{}
	for k, b := range sections {
		out[k] = b.String()
	}
	return out
}

func matchLabel(line string) string {
	trimmed := strings.ToLower(strings.TrimSpace(line))
	trimmed = strings.TrimLeft(trimmed, "#*= ")
	trimmed = strings.TrimRight(trimmed, ": ")
	for key, labels := range sectionLabels {
		for _, label := range labels {
			if trimmed == label {
				return key
			}
		}
	}
	return ""
}

// stepPattern matches lines like "Bước 3: Tư vấn - giới thiệu sản phẩm"
// or "Step 3. Consult - introduce the product".
var stepPattern = regexp.MustCompile(`(?i)^\s*(?:bước|step)\s*(\d+)\s*[:.]\s*(.+)$`)

func parseSteps(text string) []model.SalesStep {
	var steps []model.SalesStep
	for _, line := range strings.Split(text, "\n") {
		m := stepPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		name := strings.TrimSpace(m[2])
		description := ""
		var triggers []string

		// optional "name - description" split
		if idx := strings.Index(name, " - "); idx >= 0 {
			description = strings.TrimSpace(name[idx+3:])
			name = strings.TrimSpace(name[:idx])
		}
		// optional trailing trigger list "(khi: a, b)"
		if idx := strings.Index(description, "(khi:"); idx >= 0 {
			raw := strings.TrimSuffix(strings.TrimSpace(description[idx+5:]), ")")
			for _, t := range strings.Split(raw, ",") {
				if t = strings.TrimSpace(t); t != "" {
					triggers = append(triggers, t)
				}
			}
			description = strings.TrimSpace(description[:idx])
		}

		steps = append(steps, model.SalesStep{
			Step:        n,
			Name:        name,
			Description: description,
			Triggers:    triggers,
		})
	}
	return steps
}

func parseStyle(text string) model.CommunicationProfile {
	style := model.CommunicationProfile{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(strings.TrimLeft(key, "-* ")))
		value = strings.TrimSpace(value)
		switch key {
		case "giọng điệu", "tone":
			style.Tone = value
		case "ngôn ngữ", "language":
			style.Language = value
		case "emoji":
			lower := strings.ToLower(value)
			style.UseEmoji = lower == "có" || lower == "yes" || lower == "true" || lower == "on"
		case "viết tắt", "abbreviations":
			for _, a := range strings.Split(value, ",") {
				if a = strings.TrimSpace(a); a != "" {
					style.Abbreviations = append(style.Abbreviations, a)
				}
			}
		}
	}
	return style
}

// faqPattern matches "Q:"/"Hỏi:" question lines; answers follow on
// "A:"/"Đáp:" lines.
var (
	questionPattern = regexp.MustCompile(`(?i)^\s*(?:q|hỏi|câu hỏi)\s*[:.]\s*(.+)$`)
	answerPattern   = regexp.MustCompile(`(?i)^\s*(?:a|đáp|trả lời)\s*[:.]\s*(.+)$`)
)

func parseFAQs(text string) []model.FAQ {
	var faqs []model.FAQ
	var pending string

	for _, line := range strings.Split(text, "\n") {
		if m := questionPattern.FindStringSubmatch(line); m != nil {
			pending = strings.TrimSpace(m[1])
			continue
		}
		if m := answerPattern.FindStringSubmatch(line); m != nil && pending != "" {
			faqs = append(faqs, model.FAQ{
				Question: pending,
				Answer:   strings.TrimSpace(m[1]),
			})
			pending = ""
		}
	}
	return faqs
}

// DefaultSalesFlow is the fixed 8-step flow used when the merchant text
// contains no recognizable steps.
func DefaultSalesFlow() []model.SalesStep {
	return []model.SalesStep{
		{Step: 1, Name: "Chào hỏi", Description: "Chào khách và giới thiệu shop"},
		{Step: 2, Name: "Khám phá nhu cầu", Description: "Hỏi khách đang tìm sản phẩm gì"},
		{Step: 3, Name: "Giới thiệu sản phẩm", Description: "Gửi thông tin và hình ảnh sản phẩm phù hợp"},
		{Step: 4, Name: "Tư vấn", Description: "Giải đáp thắc mắc về chất liệu, kích thước, màu sắc"},
		{Step: 5, Name: "Báo giá", Description: "Thông báo giá và khuyến mãi hiện có"},
		{Step: 6, Name: "Xử lý từ chối", Description: "Giải tỏa lo ngại về giá, chất lượng, giao hàng"},
		{Step: 7, Name: "Chốt đơn", Description: "Xin thông tin nhận hàng và xác nhận đơn"},
		{Step: 8, Name: "Chăm sóc sau bán", Description: "Cảm ơn và hẹn khách quay lại"},
	}
}
