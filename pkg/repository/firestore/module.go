package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

type moduleRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ModuleRepository = &moduleRepository{}

func newModuleRepository(client *firestore.Client) *moduleRepository {
	return &moduleRepository{client: client}
}

func (r *moduleRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_modules"
	}
	return "modules"
}

type moduleDoc struct {
	ID              string                `firestore:"ID"`
	Name            string                `firestore:"Name"`
	Active          bool                  `firestore:"Active"`
	PageID          string                `firestore:"PageID"`
	PageAccessToken string                `firestore:"PageAccessToken"`
	Provider        string                `firestore:"Provider"`
	AutoSelect      bool                  `firestore:"AutoSelect"`
	Fallback        string                `firestore:"Fallback"`
	Backends        map[string]backendDoc `firestore:"Backends"`
	Products        []productDoc          `firestore:"Products"`
	Media           []mediaDoc            `firestore:"Media"`
	Training        *trainingDoc          `firestore:"Training"`
}

type backendDoc struct {
	APIKey      string  `firestore:"APIKey"`
	Model       string  `firestore:"Model"`
	Temperature float64 `firestore:"Temperature"`
	MaxTokens   int     `firestore:"MaxTokens"`
}

type productDoc struct {
	Name        string       `firestore:"Name"`
	Description string       `firestore:"Description"`
	Price       float64      `firestore:"Price"`
	Currency    string       `firestore:"Currency"`
	Variants    []variantDoc `firestore:"Variants"`
	Features    []string     `firestore:"Features"`
	Tags        []string     `firestore:"Tags"`
	Category    string       `firestore:"Category"`
}

type variantDoc struct {
	Name  string   `firestore:"Name"`
	Value string   `firestore:"Value"`
	Price *float64 `firestore:"Price"`
}

type mediaDoc struct {
	ID          string   `firestore:"ID"`
	Kind        string   `firestore:"Kind"`
	URL         string   `firestore:"URL"`
	FileName    string   `firestore:"FileName"`
	FileSize    int64    `firestore:"FileSize"`
	Colors      []string `firestore:"Colors"`
	ProductIDs  []string `firestore:"ProductIDs"`
	Variants    []string `firestore:"Variants"`
	Features    []string `firestore:"Features"`
	Tags        []string `firestore:"Tags"`
	Description string   `firestore:"Description"`
	AITags      []string `firestore:"AITags"`
}

type trainingDoc struct {
	ProductInfo   string    `firestore:"ProductInfo"`
	SalesFlow     []stepDoc `firestore:"SalesFlow"`
	Tone          string    `firestore:"Tone"`
	Language      string    `firestore:"Language"`
	UseEmoji      bool      `firestore:"UseEmoji"`
	Abbreviations []string  `firestore:"Abbreviations"`
	FAQs          []faqDoc  `firestore:"FAQs"`
	RawText       string    `firestore:"RawText"`
}

type stepDoc struct {
	Step        int      `firestore:"Step"`
	Name        string   `firestore:"Name"`
	Description string   `firestore:"Description"`
	Triggers    []string `firestore:"Triggers"`
}

type faqDoc struct {
	Question string `firestore:"Question"`
	Answer   string `firestore:"Answer"`
}

func toModuleDoc(m *model.Module) *moduleDoc {
	doc := &moduleDoc{
		ID:              m.ID.String(),
		Name:            m.Name,
		Active:          m.Active,
		PageID:          m.PageID,
		PageAccessToken: m.PageAccessToken,
		Provider:        m.Generation.Provider.String(),
		AutoSelect:      m.Generation.AutoSelect,
		Fallback:        m.Generation.Fallback.String(),
	}
	if m.Generation.Backends != nil {
		doc.Backends = make(map[string]backendDoc, len(m.Generation.Backends))
		for name, b := range m.Generation.Backends {
			doc.Backends[name.String()] = backendDoc(b)
		}
	}
	for _, p := range m.Products {
		pd := productDoc{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			Features:    p.Features,
			Tags:        p.Tags,
			Category:    p.Category,
		}
		for _, v := range p.Variants {
			pd.Variants = append(pd.Variants, variantDoc(v))
		}
		doc.Products = append(doc.Products, pd)
	}
	for _, item := range m.Media {
		doc.Media = append(doc.Media, mediaDoc{
			ID:          item.ID.String(),
			Kind:        item.Kind.String(),
			URL:         item.URL,
			FileName:    item.FileName,
			FileSize:    item.FileSize,
			Colors:      item.Meta.Colors,
			ProductIDs:  item.Meta.ProductIDs,
			Variants:    item.Meta.Variants,
			Features:    item.Meta.Features,
			Tags:        item.Meta.Tags,
			Description: item.Meta.Description,
			AITags:      item.Meta.AITags,
		})
	}
	if m.Training != nil {
		td := &trainingDoc{
			ProductInfo:   m.Training.ProductInfo,
			Tone:          m.Training.Style.Tone,
			Language:      m.Training.Style.Language,
			UseEmoji:      m.Training.Style.UseEmoji,
			Abbreviations: m.Training.Style.Abbreviations,
			RawText:       m.Training.RawText,
		}
		for _, s := range m.Training.SalesFlow {
			td.SalesFlow = append(td.SalesFlow, stepDoc(s))
		}
		for _, f := range m.Training.FAQs {
			td.FAQs = append(td.FAQs, faqDoc(f))
		}
		doc.Training = td
	}
	return doc
}

func (d *moduleDoc) toModel() *model.Module {
	m := &model.Module{
		ID:              types.ModuleID(d.ID),
		Name:            d.Name,
		Active:          d.Active,
		PageID:          d.PageID,
		PageAccessToken: d.PageAccessToken,
		Generation: model.GenerationConfig{
			Provider:   types.ProviderName(d.Provider),
			AutoSelect: d.AutoSelect,
			Fallback:   types.ProviderName(d.Fallback),
		},
	}
	if d.Backends != nil {
		m.Generation.Backends = make(map[types.ProviderName]model.BackendConfig, len(d.Backends))
		for name, b := range d.Backends {
			m.Generation.Backends[types.ProviderName(name)] = model.BackendConfig(b)
		}
	}
	for _, pd := range d.Products {
		p := model.Product{
			Name:        pd.Name,
			Description: pd.Description,
			Price:       pd.Price,
			Currency:    pd.Currency,
			Features:    pd.Features,
			Tags:        pd.Tags,
			Category:    pd.Category,
		}
		for _, v := range pd.Variants {
			p.Variants = append(p.Variants, model.ProductVariant(v))
		}
		m.Products = append(m.Products, p)
	}
	for _, md := range d.Media {
		m.Media = append(m.Media, model.MediaItem{
			ID:       types.MediaID(md.ID),
			Kind:     types.MediaKind(md.Kind),
			URL:      md.URL,
			FileName: md.FileName,
			FileSize: md.FileSize,
			Meta: model.MediaMeta{
				Colors:      md.Colors,
				ProductIDs:  md.ProductIDs,
				Variants:    md.Variants,
				Features:    md.Features,
				Tags:        md.Tags,
				Description: md.Description,
				AITags:      md.AITags,
			},
		})
	}
	if d.Training != nil {
		td := &model.TrainingData{
			ProductInfo: d.Training.ProductInfo,
			Style: model.CommunicationProfile{
				Tone:          d.Training.Tone,
				Language:      d.Training.Language,
				UseEmoji:      d.Training.UseEmoji,
				Abbreviations: d.Training.Abbreviations,
			},
			RawText: d.Training.RawText,
		}
		for _, s := range d.Training.SalesFlow {
			td.SalesFlow = append(td.SalesFlow, model.SalesStep(s))
		}
		for _, f := range d.Training.FAQs {
			td.FAQs = append(td.FAQs, model.FAQ(f))
		}
		m.Training = td
	}
	return m
}

func (r *moduleRepository) Get(ctx context.Context, id types.ModuleID) (*model.Module, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get module",
			goerr.V("id", id), goerr.T(types.ErrTagPersistence))
	}

	var data moduleDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal module",
			goerr.V("id", id), goerr.T(types.ErrTagPersistence))
	}
	return data.toModel(), nil
}

func (r *moduleRepository) GetAll(ctx context.Context) ([]*model.Module, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var result []*model.Module
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate modules",
				goerr.T(types.ErrTagPersistence))
		}

		var data moduleDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal module",
				goerr.V("doc_id", doc.Ref.ID), goerr.T(types.ErrTagPersistence))
		}
		result = append(result, data.toModel())
	}
	return result, nil
}

func (r *moduleRepository) Save(ctx context.Context, m *model.Module) error {
	if m == nil {
		return goerr.New("module is nil")
	}
	if m.ID == "" {
		return goerr.New("module ID is empty")
	}

	ref := r.client.Collection(r.collection()).Doc(m.ID.String())
	if _, err := ref.Set(ctx, toModuleDoc(m)); err != nil {
		return goerr.Wrap(err, "failed to save module",
			goerr.V("id", m.ID), goerr.T(types.ErrTagPersistence))
	}
	return nil
}

func (r *moduleRepository) Delete(ctx context.Context, id types.ModuleID) error {
	ref := r.client.Collection(r.collection()).Doc(id.String())
	if _, err := ref.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete module",
			goerr.V("id", id), goerr.T(types.ErrTagPersistence))
	}
	return nil
}
