package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/messenger"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/errutil"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
)

// HandleMessengerEvent processes one webhook delivery: resolves each
// entry's page to a module, runs the chat turn for every message or
// postback and transmits the reply. Echoes of our own sends are skipped.
func (uc *UseCases) HandleMessengerEvent(ctx context.Context, event *messenger.Event) error {
	logger := logging.From(ctx)

	if event.Object != "page" {
		logger.Warn("unsupported webhook object", "object", event.Object)
		return nil
	}

	for _, entry := range event.Entries {
		module, err := uc.resolvePage(ctx, entry.PageID)
		if err != nil {
			return err
		}
		if module == nil {
			logger.Warn("no active module for page", "pageID", entry.PageID)
			continue
		}

		for _, ev := range entry.Messaging {
			if err := uc.handleMessaging(ctx, module, ev); err != nil {
				// one bad event must not poison the rest of the batch
				_ = errutil.Handle(ctx, err, "failed to handle messaging event")
			}
		}
	}
	return nil
}

// resolvePage finds the first active module bound to a Messenger page
func (uc *UseCases) resolvePage(ctx context.Context, pageID string) (*model.Module, error) {
	modules, err := uc.repo.Module().GetAll(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list modules", goerr.V("pageID", pageID))
	}
	for _, m := range modules {
		if m.Active && m.PageID == pageID {
			return m, nil
		}
	}
	return nil, nil
}

func (uc *UseCases) handleMessaging(ctx context.Context, module *model.Module, ev messenger.MessagingEvent) error {
	text := inboundText(ev)
	if text == "" {
		return nil
	}

	customerID := types.CustomerID(ev.Sender.ID)

	if uc.messenger != nil {
		// best effort; a failed typing indicator never blocks the turn
		if err := uc.messenger.SendTypingOn(ctx, module.PageAccessToken, customerID); err != nil {
			logging.From(ctx).Warn("typing indicator failed", "error", err.Error())
		}
	}

	reply, err := uc.Chat(ctx, module.ID, customerID, "", text)
	if err != nil {
		_ = errutil.Handle(ctx, err, "chat turn unavailable")
		return uc.sendReply(ctx, module, customerID, &model.Reply{Text: ApologyText})
	}

	return uc.sendReply(ctx, module, customerID, reply)
}

// sendReply transmits media items as individual attachment sends
// followed by one text send.
func (uc *UseCases) sendReply(ctx context.Context, module *model.Module, customerID types.CustomerID, reply *model.Reply) error {
	if uc.messenger == nil {
		return goerr.New("no messenger service configured", goerr.T(types.ErrTagConfiguration))
	}

	for _, item := range reply.Media {
		if err := uc.messenger.SendAttachment(ctx, module.PageAccessToken, customerID, item.Kind, item.URL); err != nil {
			// keep going: a dropped image should not swallow the text
			_ = errutil.Handle(ctx, err, "failed to send attachment")
		}
	}

	if reply.Text == "" {
		return nil
	}
	if err := uc.messenger.SendText(ctx, module.PageAccessToken, customerID, reply.Text); err != nil {
		return goerr.Wrap(err, "failed to send text reply",
			goerr.V("moduleID", module.ID), goerr.V("customerID", customerID))
	}
	return nil
}

// inboundText extracts the conversational text of an event. Echoes and
// attachment-only messages yield nothing; postbacks use their payload,
// falling back to the button title.
func inboundText(ev messenger.MessagingEvent) string {
	if ev.Message != nil {
		if ev.Message.IsEcho {
			return ""
		}
		return ev.Message.Text
	}
	if ev.Postback != nil {
		if ev.Postback.Payload != "" {
			return ev.Postback.Payload
		}
		return ev.Postback.Title
	}
	return ""
}
