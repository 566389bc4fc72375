package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
)

// autoPriority is the fixed order tried by free-tier auto-selection.
// DeepSeek is the distinguished default and wins ties.
var autoPriority = []types.ProviderName{
	types.ProviderDeepSeek,
	types.ProviderGemini,
	types.ProviderOpenAI,
	types.ProviderClaude,
}

// Gateway dispatches normalized generation requests to one of the
// registered backend adapters. The registry is caller-constructed
// (dependency injection), not a process-wide singleton.
type Gateway struct {
	order  []types.ProviderName
	byName map[types.ProviderName]interfaces.Provider
}

// NewGateway builds a gateway over the given adapters. Registration
// order is preserved; registering the same name twice keeps the last.
func NewGateway(providers ...interfaces.Provider) *Gateway {
	g := &Gateway{
		byName: make(map[types.ProviderName]interfaces.Provider, len(providers)),
	}
	for _, p := range providers {
		if _, exists := g.byName[p.Name()]; !exists {
			g.order = append(g.order, p.Name())
		}
		g.byName[p.Name()] = p
	}
	return g
}

// Providers returns the registered adapter names in registration order
func (g *Gateway) Providers() []types.ProviderName {
	out := make([]types.ProviderName, len(g.order))
	copy(out, g.order)
	return out
}

// Resolve picks the adapter for a generation config. A concrete provider
// name is looked up directly; "auto" with AutoSelect picks the first
// free-tier adapter in the fixed priority order, falling back to any
// free adapter and finally to the distinguished default.
func (g *Gateway) Resolve(cfg model.GenerationConfig) (interfaces.Provider, error) {
	if len(g.byName) == 0 {
		return nil, goerr.Wrap(types.ErrProviderNotFound, "gateway has no registered providers")
	}

	if !cfg.Provider.IsAuto() {
		p, ok := g.byName[cfg.Provider]
		if !ok {
			return nil, goerr.Wrap(types.ErrProviderNotFound, "provider not registered",
				goerr.V("provider", cfg.Provider))
		}
		return p, nil
	}

	if cfg.AutoSelect {
		for _, name := range autoPriority {
			if p, ok := g.byName[name]; ok && p.FreeTier() {
				return p, nil
			}
		}
		for _, name := range g.order {
			if p := g.byName[name]; p.FreeTier() {
				return p, nil
			}
		}
	}

	return g.defaultProvider(), nil
}

func (g *Gateway) defaultProvider() interfaces.Provider {
	if p, ok := g.byName[types.ProviderDeepSeek]; ok {
		return p
	}
	return g.byName[g.order[0]]
}

// Send resolves an adapter and dispatches the request. On failure, if a
// fallback provider is configured and differs from the resolved adapter,
// the fallback is invoked exactly once and its result (or failure) is
// returned. No retry beyond this single hop.
func (g *Gateway) Send(ctx context.Context, cfg model.GenerationConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error) {
	primary, err := g.Resolve(cfg)
	if err != nil {
		return nil, err
	}

	gen, err := primary.Generate(ctx, cfg.Backend(primary.Name()), systemPrompt, history)
	if err == nil {
		return gen, nil
	}

	fallback, ok := g.byName[cfg.Fallback]
	if !ok || cfg.Fallback == primary.Name() {
		return nil, goerr.Wrap(err, "generation failed with no usable fallback",
			goerr.V("provider", primary.Name()), goerr.T(types.ErrTagProvider))
	}

	logging.From(ctx).Warn("primary provider failed, trying fallback",
		"primary", primary.Name(),
		"fallback", fallback.Name(),
		"error", err.Error(),
	)

	gen, fbErr := fallback.Generate(ctx, cfg.Backend(fallback.Name()), systemPrompt, history)
	if fbErr != nil {
		return nil, goerr.Wrap(fbErr, "fallback provider failed",
			goerr.V("primary", primary.Name()),
			goerr.V("fallback", fallback.Name()),
			goerr.T(types.ErrTagProvider))
	}
	return gen, nil
}

// foldHistory renders role/content pairs into one transcript block for
// backends whose session API takes a single text input.
func foldHistory(history []model.HistoryEntry) string {
	var b strings.Builder
	for _, h := range history {
		label := "Khách"
		if h.Role == types.RoleAssistant.String() {
			label = "Trợ lý"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, h.Content)
	}
	return b.String()
}
