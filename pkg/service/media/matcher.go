package media

import (
	"strings"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// colorSynonyms maps Vietnamese color words to their English equivalents.
// Lookup is bidirectional: a query in either language expands to the
// full synonym set before matching declared item colors.
var colorSynonyms = map[string][]string{
	"đỏ":      {"red"},
	"xanh":    {"blue"},
	"xanh lá": {"green"},
	"vàng":    {"yellow"},
	"đen":     {"black"},
	"trắng":   {"white"},
	"hồng":    {"pink"},
	"tím":     {"purple"},
	"cam":     {"orange"},
	"nâu":     {"brown"},
	"xám":     {"gray", "grey"},
	"be":      {"beige"},
}

// FindByQuery returns catalog items relevant to a free-text query. Four
// independent predicates are evaluated per item (declared color match,
// linked product IDs, feature/tag/AI-tag match, description match); the
// union is de-duplicated by ID preserving first-match order. Results are
// unbounded; callers truncate to the channel's transmission limit.
func FindByQuery(items []model.MediaItem, text string) []model.MediaItem {
	query := strings.ToLower(strings.TrimSpace(text))
	if query == "" {
		return nil
	}

	var matched []model.MediaItem
	seen := map[types.MediaID]bool{}
	add := func(item model.MediaItem) {
		if !seen[item.ID] {
			seen[item.ID] = true
			matched = append(matched, item)
		}
	}

	colorSet := expandColors(query)

	for _, item := range items {
		if matchesColor(item, query, colorSet) {
			add(item)
			continue
		}
		// Product-id linkage is reserved: queries carry no product IDs
		// today, so item.Meta.ProductIDs never matches free text.
		if matchesTags(item, query) {
			add(item)
			continue
		}
		if matchesDescription(item, query) {
			add(item)
		}
	}

	return matched
}

// FindByColor returns items whose declared colors intersect the synonym
// expansion of the query text.
func FindByColor(items []model.MediaItem, text string) []model.MediaItem {
	query := strings.ToLower(strings.TrimSpace(text))
	colorSet := expandColors(query)
	if len(colorSet) == 0 {
		return nil
	}

	var matched []model.MediaItem
	seen := map[types.MediaID]bool{}
	for _, item := range items {
		for _, c := range item.Meta.Colors {
			if colorSet[strings.ToLower(c)] && !seen[item.ID] {
				seen[item.ID] = true
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}

// expandColors collects every color term mentioned in the query together
// with its cross-language synonyms.
func expandColors(query string) map[string]bool {
	set := map[string]bool{}
	for vi, ens := range colorSynonyms {
		hit := strings.Contains(query, vi)
		for _, en := range ens {
			if strings.Contains(query, en) {
				hit = true
			}
		}
		if hit {
			set[vi] = true
			for _, en := range ens {
				set[en] = true
			}
		}
	}
	return set
}

func matchesColor(item model.MediaItem, query string, colorSet map[string]bool) bool {
	for _, c := range item.Meta.Colors {
		lc := strings.ToLower(c)
		if strings.Contains(query, lc) || colorSet[lc] {
			return true
		}
	}
	return false
}

func matchesTags(item model.MediaItem, query string) bool {
	for _, group := range [][]string{item.Meta.Features, item.Meta.Tags, item.Meta.AITags, item.Meta.Variants} {
		for _, v := range group {
			lv := strings.ToLower(v)
			if lv != "" && strings.Contains(query, lv) {
				return true
			}
		}
	}
	return false
}

func matchesDescription(item model.MediaItem, query string) bool {
	desc := strings.ToLower(item.Meta.Description)
	if desc == "" {
		return false
	}
	// match in either direction: a short query inside the description,
	// or a described phrase inside a long query
	return strings.Contains(desc, query) || strings.Contains(query, desc)
}
