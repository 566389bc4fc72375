package interfaces

import (
	"context"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Provider is a generation backend adapter behind a normalized interface.
// Adapters translate the vendor-specific reply into model.Generation and
// return a provider-tagged error carrying the vendor's raw error text
// when the upstream call is not successful, including when a required
// credential is absent (a synchronous failure, no network call).
type Provider interface {
	// Name returns the backend's registry name
	Name() types.ProviderName

	// FreeTier reports whether this backend has a usable free tier,
	// which makes it eligible for auto-selection
	FreeTier() bool

	// Generate sends one normalized generation request
	Generate(ctx context.Context, cfg model.BackendConfig, systemPrompt string, history []model.HistoryEntry) (*model.Generation, error)
}
