package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/messenger"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/async"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/errutil"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/safe"
)

// verifyHandler answers the Messenger Platform's setup handshake: echo
// back hub.challenge when the verify token matches.
func (s *Server) verifyHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	mode := q.Get("hub.mode")
	token := q.Get("hub.verify_token")
	challenge := q.Get("hub.challenge")

	if mode != "subscribe" || s.verifyToken == "" || token != s.verifyToken {
		errutil.HandleHTTP(ctx, w, goerr.New("webhook verification rejected",
			goerr.V("mode", mode)), http.StatusForbidden)
		return
	}

	logging.From(ctx).Info("webhook verified")
	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, []byte(challenge))
}

// SignatureMiddleware verifies the X-Hub-Signature-256 HMAC of the raw
// payload. An empty secret disables verification.
func SignatureMiddleware(appSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			defer func() {
				if err := r.Body.Close(); err != nil {
					logging.From(ctx).Error("failed to close request body", "error", err)
				}
			}()

			if appSecret != "" {
				signature := r.Header.Get("X-Hub-Signature-256")
				if err := verifySignature(appSecret, signature, body); err != nil {
					errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "signature verification failed"), http.StatusUnauthorized)
					return
				}
			}

			r.Body = io.NopCloser(bytes.NewBuffer(body))
			next.ServeHTTP(w, r)
		})
	}
}

// verifySignature checks a "sha256=<hex>" header value against the HMAC
// of the payload.
func verifySignature(appSecret, signature string, body []byte) error {
	const prefix = "sha256="
	if !strings.HasPrefix(signature, prefix) {
		return goerr.New("missing or malformed signature header")
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(strings.TrimPrefix(signature, prefix))) {
		return goerr.New("signature mismatch")
	}
	return nil
}

// webhookHandler decodes the event and acknowledges immediately; the
// chat turns run in the background so the platform's delivery timeout is
// never hit.
func (s *Server) webhookHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var event messenger.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to decode webhook event"), http.StatusBadRequest)
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		return s.uc.HandleMessengerEvent(ctx, &event)
	})

	w.WriteHeader(http.StatusOK)
	safe.Write(ctx, w, []byte("EVENT_RECEIVED"))
}
