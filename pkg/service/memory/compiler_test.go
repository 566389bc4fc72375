package memory_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	memsvc "github.com/keytration7-star/DonHang-360-sub001/pkg/service/memory"
)

func buildConversation(contents ...string) *model.Conversation {
	conv := model.NewConversation("mod-1", "cust-1", "Anh Nam")
	for i, content := range contents {
		role := types.RoleUser
		if i%2 == 1 {
			role = types.RoleAssistant
		}
		conv.Append(model.NewMessage(conv.ID, role, content))
	}
	return conv
}

func TestCompileTiers(t *testing.T) {
	t.Run("short history fits immediate", func(t *testing.T) {
		conv := buildConversation("xin chào", "chào anh", "còn hàng không")

		mem := memsvc.Compile(conv, nil, 10)
		gt.Array(t, mem.Immediate).Length(3)
		gt.Value(t, mem.Summary).Equal("")
		gt.Array(t, mem.LongTerm).Length(0)
	})

	t.Run("older messages move to summary", func(t *testing.T) {
		var contents []string
		for i := 0; i < 14; i++ {
			contents = append(contents, "tin nhắn số")
		}
		conv := buildConversation(contents...)

		mem := memsvc.Compile(conv, nil, 10)
		gt.Array(t, mem.Immediate).Length(10)
		gt.Bool(t, strings.Contains(mem.Summary, "Khách hàng đã nói")).True()
		gt.Bool(t, strings.Contains(mem.Summary, "Trợ lý đã trả lời")).True()
	})
}

func TestCompileLongTermNotes(t *testing.T) {
	contents := []string{
		"mình thích màu đỏ",
		"dạ shop có màu đỏ ạ",
		"lần trước mình đã mua một cái rồi",
		"dạ cảm ơn anh đã ủng hộ",
		"giao hàng mất bao lâu",
		"dạ 2 ngày ạ",
	}
	// pad so the first messages fall out of the immediate tier
	for i := 0; i < 10; i++ {
		contents = append(contents, "ok")
	}
	conv := buildConversation(contents...)

	mem := memsvc.Compile(conv, nil, 10)

	var hasPreference, hasInteraction, hasLogistics bool
	for _, note := range mem.LongTerm {
		if strings.HasPrefix(note, "Sở thích:") {
			hasPreference = true
		}
		if strings.HasPrefix(note, "Đã từng tương tác:") {
			hasInteraction = true
		}
		if strings.HasPrefix(note, "Quan tâm giá/giao hàng:") {
			hasLogistics = true
		}
	}
	gt.Bool(t, hasPreference).True()
	gt.Bool(t, hasInteraction).True()
	gt.Bool(t, hasLogistics).True()
}

func TestCompilePersonalityNotes(t *testing.T) {
	var contents []string
	for i := 0; i < 12; i++ {
		contents = append(contents, "ok")
	}
	conv := buildConversation(contents...)

	p := model.NeutralPersonality()
	p.Traits.PriceSensitive = 9

	mem := memsvc.Compile(conv, &p, 10)

	var found bool
	for _, note := range mem.LongTerm {
		if strings.Contains(note, "nhạy cảm về giá") {
			found = true
		}
	}
	gt.Bool(t, found).True()
}

func TestCompileDeterministic(t *testing.T) {
	var contents []string
	for i := 0; i < 20; i++ {
		contents = append(contents, "mình thích giao hàng nhanh")
	}
	conv := buildConversation(contents...)
	p := model.NeutralPersonality()

	first := memsvc.Compile(conv, &p, 10)
	second := memsvc.Compile(conv, &p, 10)
	gt.Value(t, second).Equal(first)
}

func TestCompileHistory(t *testing.T) {
	conv := buildConversation("còn hàng không", "dạ còn ạ")

	mem := memsvc.Compile(conv, nil, 10)
	history := mem.History()

	gt.Array(t, history).Length(2).Required()
	gt.Value(t, history[0].Role).Equal("user")
	gt.Value(t, history[0].Content).Equal("còn hàng không")
	gt.Value(t, history[1].Role).Equal("assistant")
}

func TestContextBlock(t *testing.T) {
	t.Run("empty when everything is immediate", func(t *testing.T) {
		conv := buildConversation("xin chào", "chào anh")
		mem := memsvc.Compile(conv, nil, 10)
		gt.Value(t, mem.ContextBlock()).Equal("")
	})

	t.Run("carries summary and notes", func(t *testing.T) {
		contents := []string{"mình thích màu đỏ", "dạ có ạ"}
		for i := 0; i < 12; i++ {
			contents = append(contents, "ok")
		}
		conv := buildConversation(contents...)

		mem := memsvc.Compile(conv, nil, 10)
		block := mem.ContextBlock()
		gt.Bool(t, strings.Contains(block, "Bối cảnh hội thoại trước đó")).True()
		gt.Bool(t, strings.Contains(block, mem.Summary)).True()
		for _, note := range mem.LongTerm {
			gt.Bool(t, strings.Contains(block, note)).True()
		}
	})
}
