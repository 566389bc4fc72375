package model

import (
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// MediaItem is one entry of a module's media catalog. Matching runs
// entirely over Meta; the URL is what gets sent to the customer.
type MediaItem struct {
	ID       types.MediaID
	Kind     types.MediaKind
	URL      string
	FileName string
	FileSize int64
	Meta     MediaMeta
}

// MediaMeta is the merchant- and AI-supplied annotation a media item is
// matched on.
type MediaMeta struct {
	Colors      []string
	ProductIDs  []string
	Variants    []string
	Features    []string
	Tags        []string
	Description string

	// AITags are labels produced by automated image analysis, matched
	// the same way as merchant tags
	AITags []string
}
