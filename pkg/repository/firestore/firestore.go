package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
)

// Firestore is the production repository backend
type Firestore struct {
	client       *firestore.Client
	module       *moduleRepository
	conversation *conversationRepository
}

var _ interfaces.Repository = &Firestore{}

// Option configures the Firestore repository
type Option func(*Firestore)

// WithCollectionPrefix namespaces all collections (used by tests against
// a shared project)
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.module.collectionPrefix = prefix
		f.conversation.collectionPrefix = prefix
	}
}

// New creates a Firestore-backed repository
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		module:       newModuleRepository(client),
		conversation: newConversationRepository(client),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *Firestore) Module() interfaces.ModuleRepository {
	return f.module
}

func (f *Firestore) Conversation() interfaces.ConversationRepository {
	return f.conversation
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
