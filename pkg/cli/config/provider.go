package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/claude"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/llm"
)

// Provider holds CLI flags for the generation backend adapters. Each
// backend is registered only when its credential is configured; modules
// may still override keys per backend where the adapter supports it.
type Provider struct {
	deepseekAPIKey string
	openaiAPIKey   string
	claudeAPIKey   string
	geminiProject  string
	geminiLocation string
}

// Flags returns CLI flags for provider configuration
func (p *Provider) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "deepseek-api-key",
			Usage:       "DeepSeek API key (default backend)",
			Sources:     cli.EnvVars("DONHANG_DEEPSEEK_API_KEY"),
			Destination: &p.deepseekAPIKey,
		},
		&cli.StringFlag{
			Name:        "openai-api-key",
			Usage:       "OpenAI API key",
			Sources:     cli.EnvVars("DONHANG_OPENAI_API_KEY"),
			Destination: &p.openaiAPIKey,
		},
		&cli.StringFlag{
			Name:        "claude-api-key",
			Usage:       "Anthropic API key for the Claude backend",
			Sources:     cli.EnvVars("DONHANG_CLAUDE_API_KEY"),
			Destination: &p.claudeAPIKey,
		},
		&cli.StringFlag{
			Name:        "gemini-project",
			Usage:       "Google Cloud project ID for the Gemini backend",
			Sources:     cli.EnvVars("DONHANG_GEMINI_PROJECT"),
			Destination: &p.geminiProject,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for the Gemini backend",
			Value:       "us-central1",
			Sources:     cli.EnvVars("DONHANG_GEMINI_LOCATION"),
			Destination: &p.geminiLocation,
		},
	}
}

// LogAttrs returns log attributes describing which backends are enabled
func (p *Provider) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Bool("deepseek", p.deepseekAPIKey != ""),
		slog.Bool("openai", p.openaiAPIKey != ""),
		slog.Bool("claude", p.claudeAPIKey != ""),
		slog.Bool("gemini", p.geminiProject != ""),
	}
}

// Configure builds the adapter set for the provider gateway. DeepSeek
// and OpenAI are always registered (their adapters accept per-module
// keys); Gemini and Claude need server-level credentials to construct
// their clients.
func (p *Provider) Configure(ctx context.Context) ([]interfaces.Provider, error) {
	providers := []interfaces.Provider{
		llm.NewDeepSeek(p.deepseekAPIKey),
		llm.NewOpenAI(p.openaiAPIKey),
	}

	if p.geminiProject != "" {
		client, err := gemini.New(ctx, p.geminiProject, p.geminiLocation)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		providers = append(providers, llm.NewGemini(client))
	}

	if p.claudeAPIKey != "" {
		client, err := claude.New(ctx, p.claudeAPIKey)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Claude client")
		}
		providers = append(providers, llm.NewClaude(client))
	}

	return providers, nil
}
