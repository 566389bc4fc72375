package model

import (
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Reply is the orchestrator's outbound response for one inbound message
type Reply struct {
	Text  string
	Media []MediaItem
}

// Generation is a backend's normalized reply to one generation request
type Generation struct {
	Content  string
	Metadata GenerationMetadata
}

// GenerationMetadata describes which backend produced a generation and how
type GenerationMetadata struct {
	Provider    types.ProviderName
	Model       string
	TokenCount  int
	Temperature float64
}
