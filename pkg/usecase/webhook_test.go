package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/repository/memory"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/llm"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/messenger"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/usecase"
)

type spyMessenger struct {
	texts       []string
	attachments []string
	typing      int
	textErr     error
}

func (s *spyMessenger) SendText(ctx context.Context, pageToken string, recipientID types.CustomerID, text string) error {
	if s.textErr != nil {
		return s.textErr
	}
	s.texts = append(s.texts, text)
	return nil
}

func (s *spyMessenger) SendAttachment(ctx context.Context, pageToken string, recipientID types.CustomerID, kind types.MediaKind, mediaURL string) error {
	s.attachments = append(s.attachments, mediaURL)
	return nil
}

func (s *spyMessenger) SendTypingOn(ctx context.Context, pageToken string, recipientID types.CustomerID) error {
	s.typing++
	return nil
}

func textEvent(pageID, senderID, text string) *messenger.Event {
	return &messenger.Event{
		Object: "page",
		Entries: []messenger.Entry{{
			PageID: pageID,
			Messaging: []messenger.MessagingEvent{{
				Sender:  messenger.Principal{ID: senderID},
				Message: &messenger.InboundMessage{MID: "m1", Text: text},
			}},
		}},
	}
}

func setupWebhook(t *testing.T) (*usecase.UseCases, *spyMessenger) {
	t.Helper()

	repo := memory.New()
	gt.NoError(t, repo.Module().Save(context.Background(), testModule())).Required()

	spy := &spyMessenger{}
	gw := llm.NewGateway(&spyProvider{name: types.ProviderDeepSeek, reply: "dạ còn ạ"})
	uc := usecase.New(repo, usecase.WithGateway(gw), usecase.WithMessenger(spy))
	return uc, spy
}

func TestHandleMessengerEvent(t *testing.T) {
	uc, spy := setupWebhook(t)

	err := uc.HandleMessengerEvent(context.Background(), textEvent("page-1", "psid-1", "chào shop"))
	gt.NoError(t, err).Required()

	gt.Value(t, spy.typing).Equal(1)
	// intro reply: capped media first, then one text
	gt.Array(t, spy.attachments).Length(3)
	gt.Array(t, spy.texts).Length(1).Required()
	gt.Value(t, len(spy.texts[0]) > 0).Equal(true)
}

func TestHandleMessengerEventNonPage(t *testing.T) {
	uc, spy := setupWebhook(t)

	event := &messenger.Event{Object: "instagram"}
	gt.NoError(t, uc.HandleMessengerEvent(context.Background(), event)).Required()
	gt.Array(t, spy.texts).Length(0)
}

func TestHandleMessengerEventUnknownPage(t *testing.T) {
	uc, spy := setupWebhook(t)

	err := uc.HandleMessengerEvent(context.Background(), textEvent("page-unknown", "psid-1", "chào shop"))
	gt.NoError(t, err).Required()
	gt.Array(t, spy.texts).Length(0)
}

func TestHandleMessengerEventEcho(t *testing.T) {
	uc, spy := setupWebhook(t)

	event := textEvent("page-1", "psid-1", "echo của chính shop")
	event.Entries[0].Messaging[0].Message.IsEcho = true

	gt.NoError(t, uc.HandleMessengerEvent(context.Background(), event)).Required()
	gt.Value(t, spy.typing).Equal(0)
	gt.Array(t, spy.texts).Length(0)
}

func TestHandleMessengerEventPostback(t *testing.T) {
	uc, spy := setupWebhook(t)

	event := &messenger.Event{
		Object: "page",
		Entries: []messenger.Entry{{
			PageID: "page-1",
			Messaging: []messenger.MessagingEvent{{
				Sender:   messenger.Principal{ID: "psid-1"},
				Postback: &messenger.InboundPostback{Title: "Xem sản phẩm", Payload: "VIEW_PRODUCTS"},
			}},
		}},
	}

	gt.NoError(t, uc.HandleMessengerEvent(context.Background(), event)).Required()
	gt.Array(t, spy.texts).Length(1)
}

func TestHandleMessengerEventSendFailureIsolated(t *testing.T) {
	uc, spy := setupWebhook(t)
	spy.textErr = goerr.New("graph api down")

	// a failed delivery is contained per event, the batch still succeeds
	err := uc.HandleMessengerEvent(context.Background(), textEvent("page-1", "psid-1", "chào shop"))
	gt.NoError(t, err).Required()
}
