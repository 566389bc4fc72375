package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	memsvc "github.com/keytration7-star/DonHang-360-sub001/pkg/service/memory"
)

// GetMemory compiles the tiered memory view for a conversation. Fails
// with a not-found error when the conversation does not exist.
func (uc *UseCases) GetMemory(ctx context.Context, conversationID types.ConversationID, immediateSize int) (*model.ConversationMemory, error) {
	conv, err := uc.repo.Conversation().Get(ctx, conversationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversationID", conversationID))
	}
	if conv == nil {
		return nil, goerr.Wrap(types.ErrConversationNotFound, "cannot compile memory",
			goerr.V("conversationID", conversationID))
	}

	return memsvc.Compile(conv, conv.Personality, immediateSize), nil
}
