package training_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/training"
)

const sampleText = `Thông tin sản phẩm:
Shop bán áo thun nam nữ, chất cotton 100%.
Giá từ 120k đến 250k.

Quy trình bán hàng:
Bước 1: Chào hỏi - Chào khách thân thiện
Bước 2: Tư vấn - Giới thiệu mẫu phù hợp (khi: khách hỏi mẫu, khách gửi ảnh)
Bước 3: Chốt đơn

Phong cách:
- Giọng điệu: vui vẻ, nhiệt tình
- Ngôn ngữ: tiếng Việt
- Emoji: có
- Viết tắt: ib, sz, ship

FAQ:
Q: Ship mất bao lâu?
A: 2-3 ngày trong nội thành ạ
Hỏi: Có đổi size không?
Đáp: Dạ có, trong 7 ngày ạ
`

func TestParseSections(t *testing.T) {
	td := training.Parse(sampleText)

	gt.Value(t, td.RawText).Equal(sampleText)
	gt.Bool(t, len(td.ProductInfo) > 0).True()
	gt.Value(t, td.ProductInfo[:len("Shop bán")]).Equal("Shop bán")
}

func TestParseSteps(t *testing.T) {
	td := training.Parse(sampleText)

	gt.Array(t, td.SalesFlow).Length(3).Required()
	gt.Value(t, td.SalesFlow[0].Step).Equal(1)
	gt.Value(t, td.SalesFlow[0].Name).Equal("Chào hỏi")
	gt.Value(t, td.SalesFlow[0].Description).Equal("Chào khách thân thiện")

	gt.Value(t, td.SalesFlow[1].Name).Equal("Tư vấn")
	gt.Value(t, td.SalesFlow[1].Description).Equal("Giới thiệu mẫu phù hợp")
	gt.Array(t, td.SalesFlow[1].Triggers).Length(2)
	gt.Value(t, td.SalesFlow[1].Triggers[0]).Equal("khách hỏi mẫu")

	gt.Value(t, td.SalesFlow[2].Name).Equal("Chốt đơn")
	gt.Value(t, td.SalesFlow[2].Description).Equal("")
}

func TestParseStyle(t *testing.T) {
	td := training.Parse(sampleText)

	gt.Value(t, td.Style.Tone).Equal("vui vẻ, nhiệt tình")
	gt.Value(t, td.Style.Language).Equal("tiếng Việt")
	gt.Bool(t, td.Style.UseEmoji).True()
	gt.Array(t, td.Style.Abbreviations).Length(3)
	gt.Value(t, td.Style.Abbreviations[1]).Equal("sz")
}

func TestParseFAQs(t *testing.T) {
	td := training.Parse(sampleText)

	gt.Array(t, td.FAQs).Length(2).Required()
	gt.Value(t, td.FAQs[0].Question).Equal("Ship mất bao lâu?")
	gt.Value(t, td.FAQs[0].Answer).Equal("2-3 ngày trong nội thành ạ")
	gt.Value(t, td.FAQs[1].Question).Equal("Có đổi size không?")
	gt.Value(t, td.FAQs[1].Answer).Equal("Dạ có, trong 7 ngày ạ")
}

func TestParseDefaultFlow(t *testing.T) {
	td := training.Parse("Shop bán giày thể thao chính hãng.")

	gt.Array(t, td.SalesFlow).Length(8).Required()
	gt.Value(t, td.SalesFlow[0].Name).Equal("Chào hỏi")
	gt.Value(t, td.SalesFlow[7].Step).Equal(8)
}

func TestParseUnpairedAnswer(t *testing.T) {
	td := training.Parse("FAQ:\nA: câu trả lời mồ côi\nQ: có hàng không?\n")

	// an answer with no preceding question is dropped, and a question
	// with no answer never materializes
	gt.Array(t, td.FAQs).Length(0)
}
