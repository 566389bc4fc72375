package llm

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	openai "github.com/sashabaranov/go-openai"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

const (
	deepseekBaseURL      = "https://api.deepseek.com/v1"
	deepseekDefaultModel = "deepseek-chat"
)

// DeepSeek is the adapter for DeepSeek's OpenAI-compatible chat API
type DeepSeek struct {
	apiKey string
}

var _ interfaces.Provider = &DeepSeek{}

// NewDeepSeek creates the DeepSeek adapter. apiKey is the server-level
// default; a per-module key in the backend config takes precedence.
func NewDeepSeek(apiKey string) *DeepSeek {
	return &DeepSeek{apiKey: apiKey}
}

func (a *DeepSeek) Name() types.ProviderName {
	return types.ProviderDeepSeek
}

func (a *DeepSeek) FreeTier() bool {
	return true
}

func (a *DeepSeek) Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	key := cfg.APIKey
	if key == "" {
		key = a.apiKey
	}
	if key == "" {
		return nil, goerr.Wrap(types.ErrNoAPIKey, "deepseek API key missing",
			goerr.T(types.ErrTagProvider))
	}

	mdl := cfg.Model
	if mdl == "" {
		mdl = deepseekDefaultModel
	}

	return chatComplete(ctx, chatBackend{
		name:    types.ProviderDeepSeek,
		apiKey:  key,
		baseURL: deepseekBaseURL,
		model:   mdl,
	}, cfg, systemPrompt, history)
}

// chatBackend parameterizes the shared OpenAI-compatible completion call
type chatBackend struct {
	name    types.ProviderName
	apiKey  string
	baseURL string
	model   string
}

func chatComplete(ctx context.Context, backend chatBackend, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	clientCfg := openai.DefaultConfig(backend.apiKey)
	if backend.baseURL != "" {
		clientCfg.BaseURL = backend.baseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, h := range history {
		role := openai.ChatMessageRoleUser
		if h.Role == types.RoleAssistant.String() {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: h.Content,
		})
	}

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       backend.model,
		Messages:    messages,
		Temperature: float32(cfg.Temperature),
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "chat completion failed",
			goerr.V("provider", backend.name),
			goerr.V("model", backend.model),
			goerr.T(types.ErrTagProvider))
	}
	if len(resp.Choices) == 0 {
		return nil, goerr.New("chat completion returned no choices",
			goerr.V("provider", backend.name),
			goerr.T(types.ErrTagProvider))
	}

	return &model.Generation{
		Content: resp.Choices[0].Message.Content,
		Metadata: model.GenerationMetadata{
			Provider:    backend.name,
			Model:       backend.model,
			TokenCount:  resp.Usage.TotalTokens,
			Temperature: cfg.Temperature,
		},
	}, nil
}
