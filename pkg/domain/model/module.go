package model

import (
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Module is one merchant's configured sales agent: channel binding,
// generation backends, product catalog, media catalog and training data.
type Module struct {
	ID     types.ModuleID
	Name   string
	Active bool

	// PageID binds the module to a Messenger page; inbound webhook
	// events resolve to a module through it
	PageID          string
	PageAccessToken string

	Generation GenerationConfig
	Products   []Product
	Media      []MediaItem
	Training   *TrainingData
}

// GenerationConfig selects which backend answers for a module and how
// failures cascade.
type GenerationConfig struct {
	// Provider pins a backend by name. Empty or "auto" delegates the
	// choice to the gateway's free-tier ordering.
	Provider   types.ProviderName
	AutoSelect bool

	// Fallback names the single retry backend used when the primary
	// attempt fails. Empty means the gateway picks one.
	Fallback types.ProviderName

	// Backends holds per-provider credentials and tuning
	Backends map[types.ProviderName]BackendConfig
}

// BackendConfig carries per-module credentials and sampling parameters
// for one provider.
type BackendConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Backend returns the configuration for a provider, zero-valued when
// the module has none.
func (c GenerationConfig) Backend(name types.ProviderName) BackendConfig {
	if c.Backends == nil {
		return BackendConfig{}
	}
	return c.Backends[name]
}

// Product is one catalog entry advertised through the system prompt
type Product struct {
	Name        string
	Description string
	Price       float64
	Currency    string
	Variants    []ProductVariant
	Features    []string
	Tags        []string
	Category    string
}

// ProductVariant is a named option of a product, optionally with its
// own price overriding the product's base price.
type ProductVariant struct {
	Name  string
	Value string
	Price *float64
}
