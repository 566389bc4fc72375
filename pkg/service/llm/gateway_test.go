package llm_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/llm"
)

type spyProvider struct {
	name  types.ProviderName
	free  bool
	reply string
	err   error
	calls int
}

func (s *spyProvider) Name() types.ProviderName { return s.name }
func (s *spyProvider) FreeTier() bool           { return s.free }

func (s *spyProvider) Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &model.Generation{
		Content: s.reply,
		Metadata: model.GenerationMetadata{
			Provider: s.name,
			Model:    cfg.Model,
		},
	}, nil
}

func TestResolveExplicitProvider(t *testing.T) {
	openai := &spyProvider{name: types.ProviderOpenAI}
	gw := llm.NewGateway(openai)

	p, err := gw.Resolve(model.GenerationConfig{Provider: types.ProviderOpenAI})
	gt.NoError(t, err).Required()
	gt.Value(t, p.Name()).Equal(types.ProviderOpenAI)
}

func TestResolveUnregistered(t *testing.T) {
	gw := llm.NewGateway(&spyProvider{name: types.ProviderOpenAI})

	_, err := gw.Resolve(model.GenerationConfig{Provider: types.ProviderClaude})
	gt.Error(t, err).Is(types.ErrProviderNotFound)
}

func TestResolveEmptyGateway(t *testing.T) {
	gw := llm.NewGateway()

	_, err := gw.Resolve(model.GenerationConfig{Provider: types.ProviderAuto})
	gt.Error(t, err).Is(types.ErrProviderNotFound)
}

func TestResolveAutoPrefersDeepSeek(t *testing.T) {
	gemini := &spyProvider{name: types.ProviderGemini, free: true}
	deepseek := &spyProvider{name: types.ProviderDeepSeek, free: true}
	gw := llm.NewGateway(gemini, deepseek)

	p, err := gw.Resolve(model.GenerationConfig{
		Provider:   types.ProviderAuto,
		AutoSelect: true,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, p.Name()).Equal(types.ProviderDeepSeek)
}

func TestResolveAutoSkipsPaidTiers(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, free: false}
	gemini := &spyProvider{name: types.ProviderGemini, free: true}
	gw := llm.NewGateway(deepseek, gemini)

	p, err := gw.Resolve(model.GenerationConfig{
		Provider:   types.ProviderAuto,
		AutoSelect: true,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, p.Name()).Equal(types.ProviderGemini)
}

func TestResolveAutoWithoutAutoSelect(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek}
	claude := &spyProvider{name: types.ProviderClaude}
	gw := llm.NewGateway(claude, deepseek)

	p, err := gw.Resolve(model.GenerationConfig{Provider: types.ProviderAuto})
	gt.NoError(t, err).Required()
	gt.Value(t, p.Name()).Equal(types.ProviderDeepSeek)
}

func TestSendPrimarySucceeds(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, reply: "dạ có ạ"}
	fallback := &spyProvider{name: types.ProviderOpenAI, reply: "unused"}
	gw := llm.NewGateway(deepseek, fallback)

	gen, err := gw.Send(context.Background(), model.GenerationConfig{
		Provider: types.ProviderDeepSeek,
		Fallback: types.ProviderOpenAI,
	}, "system", nil)
	gt.NoError(t, err).Required()

	gt.Value(t, gen.Content).Equal("dạ có ạ")
	gt.Value(t, gen.Metadata.Provider).Equal(types.ProviderDeepSeek)
	gt.Value(t, deepseek.calls).Equal(1)
	gt.Value(t, fallback.calls).Equal(0)
}

func TestSendFallbackHop(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, err: goerr.New("quota exceeded")}
	openai := &spyProvider{name: types.ProviderOpenAI, reply: "dạ shop còn hàng ạ"}
	gw := llm.NewGateway(deepseek, openai)

	gen, err := gw.Send(context.Background(), model.GenerationConfig{
		Provider: types.ProviderDeepSeek,
		Fallback: types.ProviderOpenAI,
	}, "system", nil)
	gt.NoError(t, err).Required()

	gt.Value(t, gen.Content).Equal("dạ shop còn hàng ạ")
	gt.Value(t, gen.Metadata.Provider).Equal(types.ProviderOpenAI)
	gt.Value(t, deepseek.calls).Equal(1)
	gt.Value(t, openai.calls).Equal(1)
}

func TestSendFallbackAlsoFails(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, err: goerr.New("quota exceeded")}
	openai := &spyProvider{name: types.ProviderOpenAI, err: goerr.New("rate limited")}
	gw := llm.NewGateway(deepseek, openai)

	_, err := gw.Send(context.Background(), model.GenerationConfig{
		Provider: types.ProviderDeepSeek,
		Fallback: types.ProviderOpenAI,
	}, "system", nil)

	gt.Error(t, err)
	// exactly one hop each, no retries
	gt.Value(t, deepseek.calls).Equal(1)
	gt.Value(t, openai.calls).Equal(1)
}

func TestSendNoFallbackConfigured(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, err: goerr.New("quota exceeded")}
	gw := llm.NewGateway(deepseek)

	_, err := gw.Send(context.Background(), model.GenerationConfig{
		Provider: types.ProviderDeepSeek,
	}, "system", nil)

	gt.Error(t, err)
	gt.Value(t, deepseek.calls).Equal(1)
}

func TestSendFallbackSameAsPrimary(t *testing.T) {
	deepseek := &spyProvider{name: types.ProviderDeepSeek, err: goerr.New("quota exceeded")}
	gw := llm.NewGateway(deepseek)

	_, err := gw.Send(context.Background(), model.GenerationConfig{
		Provider: types.ProviderDeepSeek,
		Fallback: types.ProviderDeepSeek,
	}, "system", nil)

	gt.Error(t, err)
	gt.Value(t, deepseek.calls).Equal(1)
}
