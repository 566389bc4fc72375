package personality

import (
	"math"
	"strings"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Blend weights for the incremental update rule. A new user message is
// mixed into the current profile with these fixed linear weights; there
// is no other learning mechanism.
const (
	styleBlendWeight    = 0.3
	toneBlendWeight     = 0.4
	priorityBlendWeight = 0.3
	traitBlendWeight    = 0.3

	confidenceStep   = 0.1
	confidencePerMsg = 10.0
)

// Keyword families are matched as lowercase substrings. Vietnamese
// merchants dominate the install base, so each family mixes Vietnamese
// and English terms. The exact lists are tunable; the bounds and
// monotonicity of the resulting scores are the contract.
var styleKeywords = map[types.CommunicationStyle][]string{
	types.StyleDirect: {"luôn", "ngay", "nhanh lên", "chốt", "ok luôn", "deal", "now", "asap", "just tell me"},
	types.StylePolite: {"làm ơn", "cảm ơn", "xin", "vui lòng", "dạ", "ạ", "please", "thank", "would you"},
	types.StyleCasual: {"hihi", "haha", "kkk", "ê", "nè", "nha", "nhé", "lol", "btw", "yeah"},
	types.StyleFormal: {"kính", "quý", "trân trọng", "anh/chị", "regards", "dear", "sincerely"},
}

var toneKeywords = map[types.Tone][]string{
	types.ToneNegative: {"tệ", "chán", "thất vọng", "không hài lòng", "bực", "bad", "terrible", "disappointed", "angry"},
	types.ToneCurious:  {"tại sao", "như thế nào", "là gì", "bao nhiêu", "why", "how", "what", "?"},
	types.ToneHesitant: {"không chắc", "để xem", "suy nghĩ", "phân vân", "chưa biết", "maybe", "not sure", "hmm", "let me think"},
	types.TonePositive: {"tuyệt", "thích", "đẹp", "tốt", "ưng", "great", "love", "nice", "awesome", "good"},
}

// toneOrder is the tie-break priority when several tone families hit
var toneOrder = []types.Tone{
	types.ToneNegative,
	types.ToneCurious,
	types.ToneHesitant,
	types.TonePositive,
}

var priorityKeywords = map[string][]string{
	"price":   {"giá", "rẻ", "giảm", "khuyến mãi", "bao nhiêu tiền", "price", "cheap", "discount", "sale"},
	"quality": {"chất lượng", "bền", "xịn", "chính hãng", "quality", "durable", "authentic", "genuine"},
	"speed":   {"nhanh", "gấp", "ngay", "hôm nay", "fast", "quick", "today", "urgent"},
	"service": {"bảo hành", "đổi trả", "hỗ trợ", "tư vấn", "warranty", "return", "support", "service"},
}

var traitKeywords = map[string][]string{
	"decisive":       {"chốt", "lấy", "mua luôn", "ok luôn", "đặt hàng", "buy", "take it", "order now"},
	"detailOriented": {"chi tiết", "thông số", "kích thước", "chất liệu", "cụ thể", "detail", "spec", "size", "material"},
	"priceSensitive": {"giá", "rẻ hơn", "giảm giá", "bớt", "đắt", "price", "cheaper", "discount", "expensive"},
	"brandLoyal":     {"hãng", "thương hiệu", "chính hãng", "brand", "official", "original"},
}

// traitWeights scale raw hit counts before clamping to [0, 10]
var traitWeights = map[string]float64{
	"decisive":       3,
	"detailOriented": 2.5,
	"priceSensitive": 2,
	"brandLoyal":     3,
}

// Numeric scales used to blend the categorical fields. Each category
// maps to a point on a 1..9 axis; blending happens on the axis and the
// result maps back to the nearest category.
var styleScale = map[types.CommunicationStyle]float64{
	types.StyleDirect:   1,
	types.StyleCasual:   3,
	types.StyleFriendly: 5,
	types.StylePolite:   7,
	types.StyleFormal:   9,
}

var toneScale = map[types.Tone]float64{
	types.ToneNegative: 1,
	types.ToneHesitant: 3,
	types.ToneNeutral:  5,
	types.ToneCurious:  7,
	types.TonePositive: 9,
}

// Analyze derives a personality profile from a message history. Only
// user-authored messages contribute; with none, the fixed neutral
// default is returned.
func Analyze(messages []model.Message) model.CustomerPersonality {
	var userMsgs []string
	for _, m := range messages {
		if m.Role == types.RoleUser {
			userMsgs = append(userMsgs, strings.ToLower(m.Content))
		}
	}

	if len(userMsgs) == 0 {
		return model.NeutralPersonality()
	}

	p := model.CustomerPersonality{
		Style:      classifyStyle(userMsgs),
		Tone:       classifyTone(userMsgs),
		Priorities: scorePriorities(userMsgs),
		Traits:     scoreTraits(userMsgs),
		Confidence: math.Min(1, float64(len(userMsgs))/confidencePerMsg),
	}
	return p
}

// Update blends a single new message into the current profile. Messages
// not authored by the user leave the profile untouched.
func Update(current model.CustomerPersonality, newMessage model.Message) model.CustomerPersonality {
	if newMessage.Role != types.RoleUser {
		return current
	}

	fresh := Analyze([]model.Message{newMessage})

	updated := current
	updated.Style = blendStyle(current.Style, fresh.Style, styleBlendWeight)
	updated.Tone = blendTone(current.Tone, fresh.Tone, toneBlendWeight)
	updated.Priorities = model.Priorities{
		Price:   blend(current.Priorities.Price, fresh.Priorities.Price, priorityBlendWeight),
		Quality: blend(current.Priorities.Quality, fresh.Priorities.Quality, priorityBlendWeight),
		Speed:   blend(current.Priorities.Speed, fresh.Priorities.Speed, priorityBlendWeight),
		Service: blend(current.Priorities.Service, fresh.Priorities.Service, priorityBlendWeight),
	}
	updated.Traits = model.Traits{
		Decisive:       blend(current.Traits.Decisive, fresh.Traits.Decisive, traitBlendWeight),
		DetailOriented: blend(current.Traits.DetailOriented, fresh.Traits.DetailOriented, traitBlendWeight),
		PriceSensitive: blend(current.Traits.PriceSensitive, fresh.Traits.PriceSensitive, traitBlendWeight),
		BrandLoyal:     blend(current.Traits.BrandLoyal, fresh.Traits.BrandLoyal, traitBlendWeight),
	}
	updated.Traits.Clamp()
	updated.Confidence = math.Min(1, current.Confidence+confidenceStep)

	return updated
}

func blend(cur, fresh, weight float64) float64 {
	return cur*(1-weight) + fresh*weight
}

func blendStyle(cur, fresh types.CommunicationStyle, weight float64) types.CommunicationStyle {
	v := blend(styleScale[cur], styleScale[fresh], weight)
	return nearestStyle(v)
}

func blendTone(cur, fresh types.Tone, weight float64) types.Tone {
	v := blend(toneScale[cur], toneScale[fresh], weight)
	return nearestTone(v)
}

func nearestStyle(v float64) types.CommunicationStyle {
	best := types.StyleFriendly
	bestDist := math.Inf(1)
	for _, s := range types.AllCommunicationStyles() {
		d := math.Abs(styleScale[s] - v)
		if d < bestDist {
			best = s
			bestDist = d
		}
	}
	return best
}

func nearestTone(v float64) types.Tone {
	best := types.ToneNeutral
	bestDist := math.Inf(1)
	for _, t := range types.AllTones() {
		d := math.Abs(toneScale[t] - v)
		if d < bestDist {
			best = t
			bestDist = d
		}
	}
	return best
}

func countHits(msgs []string, keywords []string) int {
	var hits int
	for _, msg := range msgs {
		for _, kw := range keywords {
			hits += strings.Count(msg, kw)
		}
	}
	return hits
}

// classifyStyle counts hits against the four disjoint style families.
// Ties fall through to a mean-message-length heuristic; with no hits at
// all the style defaults to friendly.
func classifyStyle(userMsgs []string) types.CommunicationStyle {
	scores := map[types.CommunicationStyle]int{}
	for style, kws := range styleKeywords {
		scores[style] = countHits(userMsgs, kws)
	}

	// deterministic iteration order
	order := []types.CommunicationStyle{
		types.StyleDirect,
		types.StylePolite,
		types.StyleCasual,
		types.StyleFormal,
	}

	best := types.StyleFriendly
	bestScore := 0
	tied := false
	for _, style := range order {
		switch {
		case scores[style] > bestScore:
			best = style
			bestScore = scores[style]
			tied = false
		case scores[style] == bestScore && bestScore > 0:
			tied = true
		}
	}

	if bestScore == 0 {
		return types.StyleFriendly
	}
	if !tied {
		return best
	}

	// Tie-break: long messages read formal, short ones direct.
	var total int
	for _, m := range userMsgs {
		total += len([]rune(m))
	}
	mean := float64(total) / float64(len(userMsgs))
	if mean > 80 {
		return types.StyleFormal
	}
	if mean < 20 {
		return types.StyleDirect
	}
	return best
}

// classifyTone picks the first hitting family in priority order
// negative > curious > hesitant > positive, defaulting to neutral.
func classifyTone(userMsgs []string) types.Tone {
	for _, tone := range toneOrder {
		if countHits(userMsgs, toneKeywords[tone]) > 0 {
			return tone
		}
	}
	return types.ToneNeutral
}

// scorePriorities multiplies raw hit counts by two. The result is
// deliberately unbounded and never normalized; only relative ordering
// between the four categories carries meaning.
func scorePriorities(userMsgs []string) model.Priorities {
	return model.Priorities{
		Price:   float64(countHits(userMsgs, priorityKeywords["price"])) * 2,
		Quality: float64(countHits(userMsgs, priorityKeywords["quality"])) * 2,
		Speed:   float64(countHits(userMsgs, priorityKeywords["speed"])) * 2,
		Service: float64(countHits(userMsgs, priorityKeywords["service"])) * 2,
	}
}

func scoreTraits(userMsgs []string) model.Traits {
	t := model.Traits{
		Decisive:       float64(countHits(userMsgs, traitKeywords["decisive"])) * traitWeights["decisive"],
		DetailOriented: float64(countHits(userMsgs, traitKeywords["detailOriented"])) * traitWeights["detailOriented"],
		PriceSensitive: float64(countHits(userMsgs, traitKeywords["priceSensitive"])) * traitWeights["priceSensitive"],
		BrandLoyal:     float64(countHits(userMsgs, traitKeywords["brandLoyal"])) * traitWeights["brandLoyal"],
	}
	t.Clamp()
	return t
}
