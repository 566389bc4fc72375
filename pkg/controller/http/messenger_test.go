package http_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpctrl "github.com/keytration7-star/DonHang-360-sub001/pkg/controller/http"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/repository/memory"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/usecase"
)

// computeSignature builds the X-Hub-Signature-256 header value
func computeSignature(appSecret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(appSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newTestServer(opts ...httpctrl.Options) *httpctrl.Server {
	uc := usecase.New(memory.New())
	return httpctrl.New(uc, opts...)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestVerifyHandler(t *testing.T) {
	srv := newTestServer(httpctrl.WithVerifyToken("my-verify-token"))

	t.Run("echoes challenge on valid handshake", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/messenger/?hub.mode=subscribe&hub.verify_token=my-verify-token&hub.challenge=1158201444", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if rec.Body.String() != "1158201444" {
			t.Errorf("expected challenge echo, got %q", rec.Body.String())
		}
	})

	t.Run("rejects wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/messenger/?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=123", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
		}
	})

	t.Run("rejects wrong mode", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/messenger/?hub.mode=unsubscribe&hub.verify_token=my-verify-token&hub.challenge=123", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
		}
	})

	t.Run("rejects when no token configured", func(t *testing.T) {
		bare := newTestServer()
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/messenger/?hub.mode=subscribe&hub.verify_token=&hub.challenge=123", nil)
		rec := httptest.NewRecorder()
		bare.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
		}
	})
}

func TestSignatureMiddleware(t *testing.T) {
	appSecret := "test-app-secret"
	body := []byte(`{"object":"page","entry":[]}`)

	t.Run("calls next handler when signature is valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", computeSignature(appSecret, body))
		rec := httptest.NewRecorder()

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		})

		httpctrl.SignatureMiddleware(appSecret)(next).ServeHTTP(rec, req)

		if !nextCalled {
			t.Error("expected next handler to be called, but it wasn't")
		}
	})

	t.Run("rejects invalid signature", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
		rec := httptest.NewRecorder()

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		})

		httpctrl.SignatureMiddleware(appSecret)(next).ServeHTTP(rec, req)

		if nextCalled {
			t.Error("expected next handler NOT to be called, but it was")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
		}
	})

	t.Run("rejects missing signature header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		httpctrl.SignatureMiddleware(appSecret)(http.NotFoundHandler()).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
		}
	})

	t.Run("restores request body for next handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", computeSignature(appSecret, body))
		rec := httptest.NewRecorder()

		var receivedBody []byte
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var err error
			receivedBody, err = io.ReadAll(r.Body)
			if err != nil {
				t.Fatalf("failed to read body in next handler: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		})

		httpctrl.SignatureMiddleware(appSecret)(next).ServeHTTP(rec, req)

		if string(receivedBody) != string(body) {
			t.Errorf("expected body %s, got %s", string(body), string(receivedBody))
		}
	})

	t.Run("empty secret disables verification", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		nextCalled := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
			w.WriteHeader(http.StatusOK)
		})

		httpctrl.SignatureMiddleware("")(next).ServeHTTP(rec, req)

		if !nextCalled {
			t.Error("expected next handler to be called, but it wasn't")
		}
	})
}

func TestWebhookHandler(t *testing.T) {
	srv := newTestServer()

	t.Run("acknowledges a valid delivery", func(t *testing.T) {
		body := []byte(`{"object":"page","entry":[]}`)
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader(body))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		if rec.Body.String() != "EVENT_RECEIVED" {
			t.Errorf("expected acknowledgement body, got %q", rec.Body.String())
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/hooks/messenger/", bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
		}
	})
}
