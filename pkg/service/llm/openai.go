package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

const openaiDefaultModel = "gpt-4o-mini"

// OpenAI is the adapter for the OpenAI chat completion API
type OpenAI struct {
	apiKey string
}

var _ interfaces.Provider = &OpenAI{}

// NewOpenAI creates the OpenAI adapter. apiKey is the server-level
// default; a per-module key in the backend config takes precedence.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{apiKey: apiKey}
}

func (a *OpenAI) Name() types.ProviderName {
	return types.ProviderOpenAI
}

func (a *OpenAI) FreeTier() bool {
	return false
}

func (a *OpenAI) Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	key := cfg.APIKey
	if key == "" {
		key = a.apiKey
	}
	if key == "" {
		return nil, goerr.Wrap(types.ErrNoAPIKey, "openai API key missing",
			goerr.T(types.ErrTagProvider))
	}

	mdl := cfg.Model
	if mdl == "" {
		mdl = openaiDefaultModel
	}

	return chatComplete(ctx, chatBackend{
		name:   types.ProviderOpenAI,
		apiKey: key,
		model:  mdl,
	}, cfg, systemPrompt, history)
}
