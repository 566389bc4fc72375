package prompt_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/prompt"
)

func trainedModule() *model.Module {
	price := 180000.0
	return &model.Module{
		ID:   "mod-1",
		Name: "Shop Áo Len Hà Nội",
		Products: []model.Product{
			{
				Name:        "Áo len cổ lọ",
				Description: "Áo len dày dặn cho mùa đông",
				Price:       250000,
				Currency:    "VND",
				Variants: []model.ProductVariant{
					{Name: "Size", Value: "M"},
					{Name: "Size", Value: "S", Price: &price},
				},
				Features: []string{"giữ ấm", "co giãn"},
			},
		},
		Training: &model.TrainingData{
			ProductInfo: "Shop chuyên áo len nữ",
			SalesFlow: []model.SalesStep{
				{Step: 2, Name: "Khám phá nhu cầu", Description: "Hỏi khách cần gì"},
				{Step: 1, Name: "Chào hỏi", Description: "Chào khách"},
			},
			Style: model.CommunicationProfile{
				Tone:     "thân thiện",
				Language: "tiếng Việt",
				UseEmoji: true,
			},
			FAQs: []model.FAQ{
				{Question: "Ship bao lâu?", Answer: "2-3 ngày ạ"},
			},
		},
	}
}

func TestCompileDefaultByteStable(t *testing.T) {
	module := &model.Module{ID: "mod-1", Name: "Shop"}

	first := prompt.Compile(module, nil)
	gt.Value(t, first).Equal(prompt.DefaultInstruction)

	for i := 0; i < 3; i++ {
		gt.Value(t, prompt.Compile(module, nil)).Equal(first)
	}
}

func TestCompileWithTraining(t *testing.T) {
	got := prompt.Compile(trainedModule(), nil)

	gt.Bool(t, strings.Contains(got, "Shop Áo Len Hà Nội")).True()
	gt.Bool(t, strings.Contains(got, "Áo len cổ lọ")).True()
	gt.Bool(t, strings.Contains(got, "250000 VND")).True()
	gt.Bool(t, strings.Contains(got, "Ship bao lâu?")).True()
	gt.Bool(t, strings.Contains(got, "2-3 ngày ạ")).True()

	// steps render sorted by index regardless of configured order
	gt.Bool(t, strings.Index(got, "Chào hỏi") < strings.Index(got, "Khám phá nhu cầu")).True()

	// no profile block without a personality
	gt.Bool(t, strings.Contains(got, "Hồ sơ khách hàng")).False()
}

func TestCompileWithPersonality(t *testing.T) {
	p := model.NeutralPersonality()
	p.Style = types.StyleDirect
	p.Traits.PriceSensitive = 9

	got := prompt.Compile(trainedModule(), &p)

	gt.Bool(t, strings.Contains(got, "direct")).True()
	gt.Bool(t, strings.Contains(got, "nhạy cảm về giá")).True()
	gt.Bool(t, strings.Contains(got, "Trả lời thẳng vào vấn đề")).True()
}

func TestCompileDeterministic(t *testing.T) {
	module := trainedModule()
	p := model.NeutralPersonality()
	p.Priorities.Quality = 8

	first := prompt.Compile(module, &p)
	for i := 0; i < 3; i++ {
		gt.Value(t, prompt.Compile(module, &p)).Equal(first)
	}
}
