package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/model"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/media"
	memsvc "github.com/keytration7-star/DonHang-360-sub001/pkg/service/memory"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/prompt"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/errutil"
)

// Canned customer-facing replies. Failures never surface raw errors to
// the end customer.
const (
	ApologyText = "Xin lỗi anh/chị, shop đang gặp chút trục trặc. Anh/chị vui lòng nhắn lại sau ít phút hoặc chờ nhân viên hỗ trợ ạ."

	NotConfiguredText = "Dạ shop chưa cập nhật đầy đủ thông tin tư vấn. Anh/chị vui lòng chờ nhân viên phản hồi trực tiếp ạ."
)

// introMediaLimit bounds how many catalog items accompany the intro turn
const introMediaLimit = 3

// replyMediaLimit truncates matcher results to the channel's practical
// transmission limit
const replyMediaLimit = 5

// Chat runs one full turn: records the inbound user message, decides
// between the deterministic intro, the not-configured notice and a
// generated reply, records the assistant turn and returns it.
//
// Failures before the user message is persisted propagate to the caller.
// Everything after is caught here and converted into a fixed apology;
// the user's turn is never lost, only the assistant's reply for it.
func (uc *UseCases) Chat(ctx context.Context, moduleID types.ModuleID, customerID types.CustomerID, customerName, text string) (*model.Reply, error) {
	module, err := uc.repo.Module().Get(ctx, moduleID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get module", goerr.V("moduleID", moduleID))
	}
	if module == nil {
		return nil, goerr.Wrap(types.ErrModuleNotFound, "cannot chat", goerr.V("moduleID", moduleID))
	}

	conv, err := uc.GetOrCreate(ctx, moduleID, customerID, customerName)
	if err != nil {
		return nil, err
	}

	conv, err = uc.AddMessage(ctx, conv.ID, types.RoleUser, text)
	if err != nil {
		return nil, err
	}

	reply, err := uc.respond(ctx, module, conv, text)
	if err != nil {
		uc.report(ctx, err, conv.ID)
		reply = &model.Reply{Text: ApologyText}
	}

	assistant := model.NewMessage(conv.ID, types.RoleAssistant, reply.Text, mediaAttachments(reply.Media)...)
	if _, err := uc.appendAssistant(ctx, conv.ID, assistant); err != nil {
		uc.report(ctx, err, conv.ID)
	}

	return reply, nil
}

// respond produces the assistant's reply for one turn. Any error here is
// converted by Chat into the fixed apology.
func (uc *UseCases) respond(ctx context.Context, module *model.Module, conv *model.Conversation, text string) (*model.Reply, error) {
	// First turn of a fresh conversation: deterministic intro, the
	// gateway is never invoked.
	if len(conv.Messages) == 1 {
		return uc.intro(module), nil
	}

	if module.Training == nil {
		return &model.Reply{Text: NotConfiguredText}, nil
	}

	if uc.gateway == nil {
		return nil, goerr.New("no generation gateway configured",
			goerr.T(types.ErrTagConfiguration))
	}

	mem := memsvc.Compile(conv, conv.Personality, memsvc.DefaultImmediateSize)
	systemPrompt := prompt.Compile(module, conv.Personality)
	if block := mem.ContextBlock(); block != "" {
		systemPrompt += "\n\n" + block
	}
	matched := media.FindByQuery(module.Media, text)
	if len(matched) > replyMediaLimit {
		matched = matched[:replyMediaLimit]
	}

	gen, err := uc.gateway.Send(ctx, module.Generation, systemPrompt, mem.History())
	if err != nil {
		return nil, goerr.Wrap(err, "generation failed",
			goerr.V("moduleID", module.ID), goerr.V("conversationID", conv.ID))
	}

	return &model.Reply{Text: gen.Content, Media: matched}, nil
}

// intro synthesizes the first-turn greeting from the module's product
// catalog and the first few media items. Deterministic for a given
// module configuration.
func (uc *UseCases) intro(module *model.Module) *model.Reply {
	var b strings.Builder
	fmt.Fprintf(&b, "Xin chào anh/chị! Em là trợ lý của %s ạ.", module.Name)

	if len(module.Products) > 0 {
		b.WriteString(" Shop hiện có:")
		for _, p := range module.Products {
			fmt.Fprintf(&b, "\n- %s", p.Name)
			if p.Price > 0 {
				fmt.Fprintf(&b, ": %s %s", formatAmount(p.Price), p.Currency)
			}
		}
		b.WriteString("\nAnh/chị đang quan tâm sản phẩm nào ạ?")
	} else if module.Training != nil && strings.TrimSpace(module.Training.ProductInfo) != "" {
		fmt.Fprintf(&b, " %s", strings.TrimSpace(module.Training.ProductInfo))
		b.WriteString("\nAnh/chị cần em tư vấn gì ạ?")
	} else {
		b.WriteString(" Anh/chị cần em tư vấn gì ạ?")
	}

	items := module.Media
	if len(items) > introMediaLimit {
		items = items[:introMediaLimit]
	}
	out := make([]model.MediaItem, len(items))
	copy(out, items)

	return &model.Reply{Text: b.String(), Media: out}
}

// appendAssistant persists an already-constructed assistant message
// under the per-conversation lock.
func (uc *UseCases) appendAssistant(ctx context.Context, conversationID types.ConversationID, msg model.Message) (*model.Conversation, error) {
	mu := uc.lockConversation(conversationID.String())
	mu.Lock()
	defer mu.Unlock()

	conv, err := uc.repo.Conversation().Get(ctx, conversationID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get conversation",
			goerr.V("conversationID", conversationID))
	}
	if conv == nil {
		return nil, goerr.Wrap(types.ErrConversationNotFound, "cannot append assistant message",
			goerr.V("conversationID", conversationID))
	}

	conv.Append(msg)
	if err := uc.repo.Conversation().Save(ctx, conv); err != nil {
		return nil, goerr.Wrap(err, "failed to save conversation",
			goerr.V("conversationID", conversationID))
	}
	return conv, nil
}

// report logs a turn failure and forwards it to Sentry when enabled
func (uc *UseCases) report(ctx context.Context, err error, conversationID types.ConversationID) {
	_ = errutil.Handle(ctx, err, "chat turn failed")
	if uc.sentryEnabled {
		sentry.WithScope(func(scope *sentry.Scope) {
			scope.SetTag("conversation_id", conversationID.String())
			sentry.CaptureException(err)
		})
	}
}

func mediaAttachments(items []model.MediaItem) []model.Attachment {
	out := make([]model.Attachment, 0, len(items))
	for _, item := range items {
		out = append(out, model.Attachment{Kind: item.Kind, URL: item.URL})
	}
	return out
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
