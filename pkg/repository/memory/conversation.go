package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
)

type conversationRepository struct {
	mu            sync.RWMutex
	conversations map[types.ConversationID]*model.Conversation
}

var _ interfaces.ConversationRepository = &conversationRepository{}

func newConversationRepository() *conversationRepository {
	return &conversationRepository{
		conversations: make(map[types.ConversationID]*model.Conversation),
	}
}

func (r *conversationRepository) Get(ctx context.Context, id types.ConversationID) (*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.conversations[id]
	if !exists {
		return nil, nil
	}
	return c.Clone(), nil
}

func (r *conversationRepository) GetAllForModule(ctx context.Context, moduleID types.ModuleID) ([]*model.Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*model.Conversation
	for _, c := range r.conversations {
		if c.ModuleID == moduleID {
			result = append(result, c.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastMessageAt.After(result[j].LastMessageAt)
	})
	return result, nil
}

func (r *conversationRepository) Save(ctx context.Context, c *model.Conversation) error {
	if c == nil {
		return goerr.New("conversation is nil")
	}
	if c.ID == "" {
		return goerr.New("conversation ID is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.conversations[c.ID] = c.Clone()
	return nil
}
