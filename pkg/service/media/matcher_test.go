package media_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/media"
)

func item(id string, meta model.MediaMeta) model.MediaItem {
	return model.MediaItem{
		ID:   types.MediaID(id),
		Kind: types.MediaKindImage,
		URL:  "https://cdn.example.com/" + id + ".jpg",
		Meta: meta,
	}
}

func TestFindByQueryColorSynonym(t *testing.T) {
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{Colors: []string{"blue"}}),
		item("m2", model.MediaMeta{Colors: []string{"đỏ"}}),
	}

	// "xanh" must reach the English-declared blue item and nothing else
	got := media.FindByQuery(catalog, "có màu xanh không shop")
	gt.Array(t, got).Length(1).Required()
	gt.Value(t, got[0].ID).Equal(types.MediaID("m1"))
}

func TestFindByQueryNoDuplicates(t *testing.T) {
	// one item matching color, tags and description at once
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{
			Colors:      []string{"đen"},
			Tags:        []string{"áo thun"},
			Description: "áo thun đen",
		}),
	}

	got := media.FindByQuery(catalog, "áo thun đen còn không")
	gt.Array(t, got).Length(1)
}

func TestFindByQueryTags(t *testing.T) {
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{Features: []string{"cổ tròn"}}),
		item("m2", model.MediaMeta{AITags: []string{"sneaker"}}),
		item("m3", model.MediaMeta{Variants: []string{"size L"}}),
	}

	gt.Array(t, media.FindByQuery(catalog, "mẫu cổ tròn")).Length(1)
	gt.Array(t, media.FindByQuery(catalog, "đôi sneaker trong hình")).Length(1)
	gt.Array(t, media.FindByQuery(catalog, "còn size l không")).Length(1)
}

func TestFindByQueryEmpty(t *testing.T) {
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{Colors: []string{"red"}}),
	}

	gt.Array(t, media.FindByQuery(catalog, "")).Length(0)
	gt.Array(t, media.FindByQuery(catalog, "   ")).Length(0)
}

func TestFindByQueryOrderStable(t *testing.T) {
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{Tags: []string{"váy"}}),
		item("m2", model.MediaMeta{Tags: []string{"váy"}}),
		item("m3", model.MediaMeta{Tags: []string{"váy"}}),
	}

	got := media.FindByQuery(catalog, "có váy không")
	gt.Array(t, got).Length(3).Required()
	gt.Value(t, got[0].ID).Equal(types.MediaID("m1"))
	gt.Value(t, got[1].ID).Equal(types.MediaID("m2"))
	gt.Value(t, got[2].ID).Equal(types.MediaID("m3"))
}

func TestFindByColor(t *testing.T) {
	catalog := []model.MediaItem{
		item("m1", model.MediaMeta{Colors: []string{"gray"}}),
		item("m2", model.MediaMeta{Colors: []string{"grey"}}),
		item("m3", model.MediaMeta{Colors: []string{"pink"}}),
	}

	// both spellings sit behind the same Vietnamese word
	got := media.FindByColor(catalog, "màu xám")
	gt.Array(t, got).Length(2)

	gt.Array(t, media.FindByColor(catalog, "không nói màu gì")).Length(0)
}
