package interfaces

import (
	"context"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

// Repository aggregates the two capability stores the core consumes
type Repository interface {
	Module() ModuleRepository
	Conversation() ConversationRepository
	Close() error
}

// ModuleRepository defines persistence for merchant sales-agent modules.
// The core only reads modules; Save/Delete exist for the management
// surface and for seeding from configuration files.
type ModuleRepository interface {
	// Get retrieves a module by ID. Returns nil without error when the
	// module does not exist.
	Get(ctx context.Context, id types.ModuleID) (*model.Module, error)

	// GetAll retrieves all modules
	GetAll(ctx context.Context) ([]*model.Module, error)

	// Save creates or replaces a module
	Save(ctx context.Context, m *model.Module) error

	// Delete removes a module by ID
	Delete(ctx context.Context, id types.ModuleID) error
}

// ConversationRepository defines persistence for conversations. Message
// records are embedded in the conversation document. Every read returns
// a fresh copy and every write is a full replace: no two callers ever
// share a live conversation instance.
type ConversationRepository interface {
	// Get retrieves a conversation by ID. Returns nil without error when
	// the conversation does not exist.
	Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error)

	// GetAllForModule retrieves all conversations owned by a module
	GetAllForModule(ctx context.Context, moduleID types.ModuleID) ([]*model.Conversation, error)

	// Save creates or replaces a conversation including its messages
	Save(ctx context.Context, c *model.Conversation) error
}
