package personality_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/personality"
)

func userMsg(content string) model.Message {
	return model.NewMessage("conv-1", types.RoleUser, content)
}

func assistantMsg(content string) model.Message {
	return model.NewMessage("conv-1", types.RoleAssistant, content)
}

func TestAnalyzeNeutralDefault(t *testing.T) {
	t.Run("no messages", func(t *testing.T) {
		p := personality.Analyze(nil)
		gt.Value(t, p).Equal(model.NeutralPersonality())

		// every score sits at the midpoint, not at zero
		gt.Number(t, p.Priorities.Price).Equal(5)
		gt.Number(t, p.Priorities.Quality).Equal(5)
		gt.Number(t, p.Priorities.Speed).Equal(5)
		gt.Number(t, p.Priorities.Service).Equal(5)
		gt.Number(t, p.Traits.Decisive).Equal(5)
		gt.Number(t, p.Confidence).Equal(0.1)
	})

	t.Run("only assistant messages", func(t *testing.T) {
		p := personality.Analyze([]model.Message{
			assistantMsg("Dạ em chào anh"),
			assistantMsg("Sản phẩm còn hàng ạ"),
		})
		gt.Value(t, p).Equal(model.NeutralPersonality())
	})
}

func TestAnalyzeBounds(t *testing.T) {
	msgs := []model.Message{
		userMsg("giá bao nhiêu, rẻ hơn được không, giảm giá đi, đắt quá"),
		userMsg("chất lượng có bền không, hàng chính hãng chứ"),
		userMsg("giao hàng nhanh không, gấp lắm, cần ngay hôm nay"),
		userMsg("bảo hành thế nào, đổi trả được không"),
	}

	p := personality.Analyze(msgs)

	gt.Number(t, p.Confidence).GreaterOrEqual(0)
	gt.Number(t, p.Confidence).LessOrEqual(1)
	for _, trait := range []float64{
		p.Traits.Decisive,
		p.Traits.DetailOriented,
		p.Traits.PriceSensitive,
		p.Traits.BrandLoyal,
	} {
		gt.Number(t, trait).GreaterOrEqual(0)
		gt.Number(t, trait).LessOrEqual(10)
	}
}

func TestAnalyzePrioritiesUnbounded(t *testing.T) {
	// enough price keywords to push the raw score far past ten;
	// priorities are raw hit counts and must not be clamped like traits
	var msgs []model.Message
	for i := 0; i < 10; i++ {
		msgs = append(msgs, userMsg("giá rẻ giảm khuyến mãi price cheap discount sale"))
	}

	p := personality.Analyze(msgs)
	gt.Number(t, p.Priorities.Price).Greater(10)
}

func TestAnalyzeConfidenceScale(t *testing.T) {
	one := personality.Analyze([]model.Message{userMsg("hello")})
	gt.Number(t, one.Confidence).Equal(0.1)

	var many []model.Message
	for i := 0; i < 20; i++ {
		many = append(many, userMsg("hello"))
	}
	full := personality.Analyze(many)
	gt.Number(t, full.Confidence).Equal(1)
}

func TestUpdateAssistantIdentity(t *testing.T) {
	current := personality.Analyze([]model.Message{
		userMsg("giá bao nhiêu vậy shop"),
	})

	updated := personality.Update(current, assistantMsg("Dạ giá 250k ạ"))
	gt.Value(t, updated).Equal(current)
}

func TestUpdateConfidenceMonotonic(t *testing.T) {
	p := model.NeutralPersonality()

	prev := p.Confidence
	for i := 0; i < 15; i++ {
		p = personality.Update(p, userMsg("cho mình xem mẫu màu đỏ"))
		gt.Number(t, p.Confidence).GreaterOrEqual(prev)
		gt.Number(t, p.Confidence).LessOrEqual(1)
		prev = p.Confidence
	}
	gt.Number(t, p.Confidence).Equal(1)
}

func TestUpdateTraitBounds(t *testing.T) {
	p := model.NeutralPersonality()
	p.Traits = model.Traits{Decisive: 10, DetailOriented: 10, PriceSensitive: 10, BrandLoyal: 10}

	for i := 0; i < 5; i++ {
		p = personality.Update(p, userMsg("chốt luôn, mua luôn, lấy chính hãng, chi tiết thông số, giá rẻ hơn"))
	}

	for _, trait := range []float64{
		p.Traits.Decisive,
		p.Traits.DetailOriented,
		p.Traits.PriceSensitive,
		p.Traits.BrandLoyal,
	} {
		gt.Number(t, trait).GreaterOrEqual(0)
		gt.Number(t, trait).LessOrEqual(10)
	}
}

func TestClassifyTonePriority(t *testing.T) {
	// negative keywords outrank positive ones even in the same text
	p := personality.Analyze([]model.Message{
		userMsg("sản phẩm đẹp nhưng giao hàng tệ quá, thất vọng"),
	})
	gt.Value(t, p.Tone).Equal(types.ToneNegative)
}

func TestClassifyStyleDefaultFriendly(t *testing.T) {
	p := personality.Analyze([]model.Message{
		userMsg("cho xem mẫu khác"),
	})
	gt.Value(t, p.Style).Equal(types.StyleFriendly)
}
