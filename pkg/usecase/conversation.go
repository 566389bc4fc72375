package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/personality"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
)

// GetOrCreate returns the customer's current conversation with a module,
// reusing the most recent one while it is active and within the reuse
// window, otherwise starting a fresh one. Concurrent calls for the same
// module/customer pair collapse into a single lookup so a burst of
// messages cannot spawn duplicate conversations.
func (uc *UseCases) GetOrCreate(ctx context.Context, moduleID types.ModuleID, customerID types.CustomerID, customerName string) (*model.Conversation, error) {
	key := moduleID.String() + "/" + customerID.String()

	v, err, _ := uc.getGroup.Do(key, func() (any, error) {
		return uc.getOrCreate(ctx, moduleID, customerID, customerName)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Conversation), nil
}

func (uc *UseCases) getOrCreate(ctx context.Context, moduleID types.ModuleID, customerID types.CustomerID, customerName string) (*model.Conversation, error) {
	conversations, err := uc.repo.Conversation().GetAllForModule(ctx, moduleID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list conversations",
			goerr.V("moduleID", moduleID))
	}

	now := time.Now()
	for _, c := range conversations {
		if c.CustomerID != customerID {
			continue
		}
		if c.IsReusable(now) {
			return c, nil
		}
		// conversations are sorted by last activity; the newest one
		// decides, older threads are never revisited
		break
	}

	conv := model.NewConversation(moduleID, customerID, customerName)
	if err := uc.repo.Conversation().Save(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to save new conversation",
			goerr.V("moduleID", moduleID), goerr.V("customerID", customerID))
	}

	logging.From(ctx).Info("started conversation",
		"conversationID", conv.ID,
		"moduleID", moduleID,
		"customerID", customerID,
	)
	return conv, nil
}

// AddMessage appends a message to a conversation and persists it. User
// messages also refine the personality profile; assistant messages leave
// it untouched. Appends to the same conversation are serialized.
func (uc *UseCases) AddMessage(ctx context.Context, conversationID types.ConversationID, role types.Role, content string, attachments ...model.Attachment) (*model.Conversation, error) {
	mu := uc.lockConversation(conversationID.String())
	mu.Lock()
	defer mu.Unlock()

	conv, err := uc.repo.Conversation().Get(ctx, conversationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversationID", conversationID))
	}
	if conv == nil {
		return nil, goerr.Wrap(types.ErrConversationNotFound, "cannot append message",
			goerr.V("conversationID", conversationID))
	}

	msg := model.NewMessage(conversationID, role, content, attachments...)
	conv.Append(msg)

	if role == types.RoleUser {
		if conv.Personality == nil {
			p := personality.Analyze(conv.Messages)
			conv.Personality = &p
		} else {
			p := personality.Update(*conv.Personality, msg)
			conv.Personality = &p
		}
	}

	if err := uc.repo.Conversation().Save(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to save conversation",
			goerr.V("conversationID", conversationID))
	}
	return conv, nil
}

// Close marks a conversation closed. Closing a missing or already
// closed conversation is a silent no-op.
func (uc *UseCases) Close(ctx context.Context, conversationID types.ConversationID) error {
	mu := uc.lockConversation(conversationID.String())
	mu.Lock()
	defer mu.Unlock()

	conv, err := uc.repo.Conversation().Get(ctx, conversationID)
	if err != nil {
		return goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversationID", conversationID))
	}
	if conv == nil || conv.Status.Normalize() == types.ConversationStatusClosed {
		return nil
	}

	conv.Status = types.ConversationStatusClosed
	conv.UpdatedAt = time.Now()

	if err := uc.repo.Conversation().Save(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to save closed conversation",
			goerr.V("conversationID", conversationID))
	}
	return nil
}

// CloseStale closes every active conversation whose last activity falls
// outside the reuse window. Run periodically so abandoned threads do not
// linger as active.
func (uc *UseCases) CloseStale(ctx context.Context) (int, error) {
	modules, err := uc.repo.Module().GetAll(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to list modules")
	}

	now := time.Now()
	var closed int
	for _, m := range modules {
		conversations, err := uc.repo.Conversation().GetAllForModule(ctx, m.ID)
		if err != nil {
			return closed, goerr.Wrap(err, "failed to list conversations",
				goerr.V("moduleID", m.ID))
		}
		for _, c := range conversations {
			if c.Status.Normalize() != types.ConversationStatusActive {
				continue
			}
			if now.Sub(c.LastMessageAt) < model.ReuseWindow {
				continue
			}
			if err := uc.Close(ctx, c.ID); err != nil {
				return closed, err
			}
			closed++
		}
	}

	if closed > 0 {
		logging.From(ctx).Info("closed stale conversations", "count", closed)
	}
	return closed, nil
}

// MarkRead flags every customer message in a conversation as seen
func (uc *UseCases) MarkRead(ctx context.Context, conversationID types.ConversationID) error {
	mu := uc.lockConversation(conversationID.String())
	mu.Lock()
	defer mu.Unlock()

	conv, err := uc.repo.Conversation().Get(ctx, conversationID)
	if err != nil {
		return goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversationID", conversationID))
	}
	if conv == nil {
		return goerr.Wrap(types.ErrConversationNotFound, "cannot mark read",
			goerr.V("conversationID", conversationID))
	}

	var dirty bool
	for i := range conv.Messages {
		if conv.Messages[i].Role == types.RoleUser && !conv.Messages[i].Read {
			conv.Messages[i].Read = true
			dirty = true
		}
	}
	if !dirty {
		return nil
	}

	conv.UpdatedAt = time.Now()
	if err := uc.repo.Conversation().Save(ctx, conv); err != nil {
		return goerr.Wrap(err, "failed to save conversation",
			goerr.V("conversationID", conversationID))
	}
	return nil
}
