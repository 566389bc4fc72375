package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/types"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/safe"
)

const defaultGraphAPIURL = "https://graph.facebook.com/v19.0"

// Service sends messages out through the Messenger Send API
type Service interface {
	SendText(ctx context.Context, pageToken string, recipientID types.CustomerID, text string) error
	SendAttachment(ctx context.Context, pageToken string, recipientID types.CustomerID, kind types.MediaKind, mediaURL string) error
	SendTypingOn(ctx context.Context, pageToken string, recipientID types.CustomerID) error
}

// client implements Service against the Graph API. No maintained Go
// client library covers the Messenger Send API, so this is a thin HTTP
// wrapper.
type client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures the Messenger client
type Option func(*client)

// WithBaseURL overrides the Graph API endpoint (used by tests)
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// New creates a Messenger Send API client
func New(opts ...Option) Service {
	c := &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultGraphAPIURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) SendText(ctx context.Context, pageToken string, recipientID types.CustomerID, text string) error {
	return c.send(ctx, pageToken, sendRequest{
		Recipient: Principal{ID: recipientID.String()},
		Message:   &outboundMessage{Text: text},
	})
}

func (c *client) SendAttachment(ctx context.Context, pageToken string, recipientID types.CustomerID, kind types.MediaKind, mediaURL string) error {
	att := &outboundAttachment{Type: attachmentType(kind)}
	att.Payload.URL = mediaURL
	att.Payload.IsReusable = true

	return c.send(ctx, pageToken, sendRequest{
		Recipient: Principal{ID: recipientID.String()},
		Message:   &outboundMessage{Attachment: att},
	})
}

func (c *client) SendTypingOn(ctx context.Context, pageToken string, recipientID types.CustomerID) error {
	return c.send(ctx, pageToken, sendRequest{
		Recipient:    Principal{ID: recipientID.String()},
		SenderAction: "typing_on",
	})
}

func (c *client) send(ctx context.Context, pageToken string, req sendRequest) error {
	if pageToken == "" {
		return goerr.New("page access token is missing", goerr.T(types.ErrTagConfiguration))
	}

	body, err := json.Marshal(req)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal send request")
	}

	endpoint := c.baseURL + "/me/messages?access_token=" + url.QueryEscape(pageToken)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to build send request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return goerr.Wrap(err, "messenger send failed")
	}
	defer safe.Close(ctx, resp.Body)

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return goerr.Wrap(err, "failed to decode send response",
			goerr.V("status", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK || result.Error != nil {
		msg := ""
		if result.Error != nil {
			msg = result.Error.Message
		}
		return goerr.New("messenger send rejected",
			goerr.V("status", resp.StatusCode),
			goerr.V("message", msg))
	}

	return nil
}

func attachmentType(kind types.MediaKind) string {
	if kind == types.MediaKindVideo {
		return "video"
	}
	return "image"
}
