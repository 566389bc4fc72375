package memory

import (
	"fmt"
	"strings"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// DefaultImmediateSize is how many recent messages are kept verbatim
const DefaultImmediateSize = 10

// summaryPrefixLen bounds how much of each older message enters the digest
const summaryPrefixLen = 60

// Long-term note triggers over older user messages
var (
	preferenceKeywords  = []string{"thích", "ưng", "muốn", "prefer", "want", "like", "love"}
	interactionKeywords = []string{"đã mua", "lần trước", "mua rồi", "bought", "last time", "ordered before", "purchased"}
	logisticsKeywords   = []string{"giá", "ship", "giao hàng", "vận chuyển", "price", "delivery", "shipping"}
)

// personalityNoteThreshold gates personality-derived notes
const personalityNoteThreshold = 7

// Compile derives the three-tier memory view from a conversation and a
// personality snapshot. The result is never persisted; identical inputs
// always compile to an identical view.
func Compile(conv *model.Conversation, personality *model.CustomerPersonality, immediateSize int) *model.ConversationMemory {
	if immediateSize <= 0 {
		immediateSize = DefaultImmediateSize
	}

	msgs := conv.Messages
	split := len(msgs) - immediateSize
	if split < 0 {
		split = 0
	}
	older := msgs[:split]

	mem := &model.ConversationMemory{
		Immediate: make([]model.Message, len(msgs)-split),
		Summary:   summarize(older),
		LongTerm:  extractLongTerm(older, personality),
	}
	copy(mem.Immediate, msgs[split:])
	return mem
}

// summarize digests older messages grouped by role, concatenating a
// fixed-length prefix of each message's content.
func summarize(older []model.Message) string {
	if len(older) == 0 {
		return ""
	}

	var userParts, assistantParts []string
	for _, m := range older {
		part := prefix(m.Content, summaryPrefixLen)
		if part == "" {
			continue
		}
		if m.Role == types.RoleUser {
			userParts = append(userParts, part)
		} else {
			assistantParts = append(assistantParts, part)
		}
	}

	var b strings.Builder
	if len(userParts) > 0 {
		fmt.Fprintf(&b, "Khách hàng đã nói: %s.", strings.Join(userParts, "; "))
	}
	if len(assistantParts) > 0 {
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "Trợ lý đã trả lời: %s.", strings.Join(assistantParts, "; "))
	}
	return b.String()
}

// extractLongTerm pulls durable facts from older user messages plus
// personality-driven notes gated above the threshold score.
func extractLongTerm(older []model.Message, personality *model.CustomerPersonality) []string {
	var notes []string
	seen := map[string]bool{}
	add := func(note string) {
		if !seen[note] {
			seen[note] = true
			notes = append(notes, note)
		}
	}

	for _, m := range older {
		if m.Role != types.RoleUser {
			continue
		}
		lower := strings.ToLower(m.Content)
		if containsAny(lower, preferenceKeywords) {
			add("Sở thích: " + prefix(m.Content, summaryPrefixLen))
		}
		if containsAny(lower, interactionKeywords) {
			add("Đã từng tương tác: " + prefix(m.Content, summaryPrefixLen))
		}
		if containsAny(lower, logisticsKeywords) {
			add("Quan tâm giá/giao hàng: " + prefix(m.Content, summaryPrefixLen))
		}
	}

	if personality != nil {
		if personality.Traits.PriceSensitive > personalityNoteThreshold {
			add("Khách nhạy cảm về giá, nên chủ động nói về khuyến mãi")
		}
		if personality.Traits.DetailOriented > personalityNoteThreshold {
			add("Khách thích chi tiết, nên cung cấp thông số đầy đủ")
		}
		if personality.Traits.Decisive > personalityNoteThreshold {
			add("Khách quyết đoán, có thể chốt đơn nhanh")
		}
		if personality.Traits.BrandLoyal > personalityNoteThreshold {
			add("Khách coi trọng thương hiệu và hàng chính hãng")
		}
	}

	return notes
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func prefix(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
