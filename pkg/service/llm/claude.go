package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Claude is the adapter for Anthropic's Claude models via gollem
type Claude struct {
	client gollem.LLMClient
}

var _ interfaces.Provider = &Claude{}

// NewClaude wraps an existing gollem Claude client
func NewClaude(client gollem.LLMClient) *Claude {
	return &Claude{client: client}
}

func (a *Claude) Name() types.ProviderName {
	return types.ProviderClaude
}

func (a *Claude) FreeTier() bool {
	return false
}

func (a *Claude) Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	if a.client == nil {
		return nil, goerr.Wrap(types.ErrNoAPIKey, "claude client is not configured",
			goerr.T(types.ErrTagProvider))
	}

	return sessionGenerate(ctx, a.client, types.ProviderClaude, cfg, systemPrompt, history)
}
