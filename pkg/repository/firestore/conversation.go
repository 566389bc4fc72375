package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

type conversationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository(client *firestore.Client) *conversationRepository {
	return &conversationRepository{client: client}
}

func (r *conversationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_conversations"
	}
	return "conversations"
}

type conversationDoc struct {
	ID            string          `firestore:"ID"`
	ModuleID      string          `firestore:"ModuleID"`
	CustomerID    string          `firestore:"CustomerID"`
	CustomerName  string          `firestore:"CustomerName"`
	Status        string          `firestore:"Status"`
	Messages      []messageDoc    `firestore:"Messages"`
	Personality   *personalityDoc `firestore:"Personality"`
	StartedAt     time.Time       `firestore:"StartedAt"`
	LastMessageAt time.Time       `firestore:"LastMessageAt"`
	UpdatedAt     time.Time       `firestore:"UpdatedAt"`
}

type messageDoc struct {
	ID          string          `firestore:"ID"`
	Role        string          `firestore:"Role"`
	Content     string          `firestore:"Content"`
	Attachments []attachmentDoc `firestore:"Attachments"`
	CreatedAt   time.Time       `firestore:"CreatedAt"`
	Read        bool            `firestore:"Read"`
}

type attachmentDoc struct {
	Kind string `firestore:"Kind"`
	URL  string `firestore:"URL"`
}

type personalityDoc struct {
	Style          string  `firestore:"Style"`
	Tone           string  `firestore:"Tone"`
	Price          float64 `firestore:"Price"`
	Quality        float64 `firestore:"Quality"`
	Speed          float64 `firestore:"Speed"`
	Service        float64 `firestore:"Service"`
	Decisive       float64 `firestore:"Decisive"`
	DetailOriented float64 `firestore:"DetailOriented"`
	PriceSensitive float64 `firestore:"PriceSensitive"`
	BrandLoyal     float64 `firestore:"BrandLoyal"`
	Confidence     float64 `firestore:"Confidence"`
}

func toConversationDoc(c *model.Conversation) *conversationDoc {
	doc := &conversationDoc{
		ID:            c.ID.String(),
		ModuleID:      c.ModuleID.String(),
		CustomerID:    c.CustomerID.String(),
		CustomerName:  c.CustomerName,
		Status:        c.Status.Normalize().String(),
		StartedAt:     c.StartedAt,
		LastMessageAt: c.LastMessageAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, m := range c.Messages {
		md := messageDoc{
			ID:        m.ID.String(),
			Role:      m.Role.String(),
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
			Read:      m.Read,
		}
		for _, a := range m.Attachments {
			md.Attachments = append(md.Attachments, attachmentDoc{
				Kind: a.Kind.String(),
				URL:  a.URL,
			})
		}
		doc.Messages = append(doc.Messages, md)
	}
	if p := c.Personality; p != nil {
		doc.Personality = &personalityDoc{
			Style:          p.Style.String(),
			Tone:           p.Tone.String(),
			Price:          p.Priorities.Price,
			Quality:        p.Priorities.Quality,
			Speed:          p.Priorities.Speed,
			Service:        p.Priorities.Service,
			Decisive:       p.Traits.Decisive,
			DetailOriented: p.Traits.DetailOriented,
			PriceSensitive: p.Traits.PriceSensitive,
			BrandLoyal:     p.Traits.BrandLoyal,
			Confidence:     p.Confidence,
		}
	}
	return doc
}

func (d *conversationDoc) toModel() *model.Conversation {
	c := &model.Conversation{
		ID:            types.ConversationID(d.ID),
		ModuleID:      types.ModuleID(d.ModuleID),
		CustomerID:    types.CustomerID(d.CustomerID),
		CustomerName:  d.CustomerName,
		Status:        types.ConversationStatus(d.Status).Normalize(),
		StartedAt:     d.StartedAt,
		LastMessageAt: d.LastMessageAt,
		UpdatedAt:     d.UpdatedAt,
	}
	for _, md := range d.Messages {
		m := model.Message{
			ID:             types.MessageID(md.ID),
			ConversationID: c.ID,
			Role:           types.Role(md.Role),
			Content:        md.Content,
			CreatedAt:      md.CreatedAt,
			Read:           md.Read,
		}
		for _, a := range md.Attachments {
			m.Attachments = append(m.Attachments, model.Attachment{
				Kind: types.MediaKind(a.Kind),
				URL:  a.URL,
			})
		}
		c.Messages = append(c.Messages, m)
	}
	if pd := d.Personality; pd != nil {
		c.Personality = &model.CustomerPersonality{
			Style: types.CommunicationStyle(pd.Style),
			Tone:  types.Tone(pd.Tone),
			Priorities: model.Priorities{
				Price:   pd.Price,
				Quality: pd.Quality,
				Speed:   pd.Speed,
				Service: pd.Service,
			},
			Traits: model.Traits{
				Decisive:       pd.Decisive,
				DetailOriented: pd.DetailOriented,
				PriceSensitive: pd.PriceSensitive,
				BrandLoyal:     pd.BrandLoyal,
			},
			Confidence: pd.Confidence,
		}
	}
	return c
}

func (r *conversationRepository) Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get conversation",
			goerr.V("id", id), goerr.T(types.ErrTagPersistence))
	}

	var data conversationDoc
	if err := doc.DataTo(&data); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal conversation",
			goerr.V("id", id), goerr.T(types.ErrTagPersistence))
	}
	return data.toModel(), nil
}

func (r *conversationRepository) GetAllForModule(ctx context.Context, moduleID types.ModuleID) ([]*model.Conversation, error) {
	query := r.client.Collection(r.collection()).
		Where("ModuleID", "==", moduleID.String()).
		OrderBy("LastMessageAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var result []*model.Conversation
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate conversations",
				goerr.V("moduleID", moduleID), goerr.T(types.ErrTagPersistence))
		}

		var data conversationDoc
		if err := doc.DataTo(&data); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal conversation",
				goerr.V("doc_id", doc.Ref.ID), goerr.T(types.ErrTagPersistence))
		}
		result = append(result, data.toModel())
	}
	return result, nil
}

func (r *conversationRepository) Save(ctx context.Context, c *model.Conversation) error {
	if c == nil {
		return goerr.New("conversation is nil")
	}
	if c.ID == "" {
		return goerr.New("conversation ID is empty")
	}

	ref := r.client.Collection(r.collection()).Doc(c.ID.String())
	if _, err := ref.Set(ctx, toConversationDoc(c)); err != nil {
		return goerr.Wrap(err, "failed to save conversation",
			goerr.V("id", c.ID), goerr.T(types.ErrTagPersistence))
	}
	return nil
}
