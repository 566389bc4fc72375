package llm

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Gemini is the adapter for Google's Gemini models via gollem. The
// underlying client authenticates with Google Cloud credentials at
// construction; per-module API keys do not apply to this backend.
type Gemini struct {
	client gollem.LLMClient
}

var _ interfaces.Provider = &Gemini{}

// NewGemini wraps an existing gollem Gemini client
func NewGemini(client gollem.LLMClient) *Gemini {
	return &Gemini{client: client}
}

func (a *Gemini) Name() types.ProviderName {
	return types.ProviderGemini
}

func (a *Gemini) FreeTier() bool {
	return true
}

func (a *Gemini) Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	if a.client == nil {
		return nil, goerr.Wrap(types.ErrNoAPIKey, "gemini client is not configured",
			goerr.T(types.ErrTagProvider))
	}

	return sessionGenerate(ctx, a.client, types.ProviderGemini, cfg, systemPrompt, history)
}

// sessionGenerate runs one gollem session: the system prompt rides the
// session options and the conversation history is folded into a single
// transcript input.
func sessionGenerate(ctx context.Context, client gollem.LLMClient, name types.ProviderName, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	session, err := client.NewSession(ctx,
		gollem.WithSessionSystemPrompt(systemPrompt),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM session",
			goerr.V("provider", name),
			goerr.T(types.ErrTagProvider))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(foldHistory(history)))
	if err != nil {
		return nil, goerr.Wrap(err, "generation failed",
			goerr.V("provider", name),
			goerr.T(types.ErrTagProvider))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("generation returned no text",
			goerr.V("provider", name),
			goerr.T(types.ErrTagProvider))
	}

	return &model.Generation{
		Content: strings.Join(resp.Texts, "\n"),
		Metadata: model.GenerationMetadata{
			Provider:    name,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
		},
	}, nil
}
