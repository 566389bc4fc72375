package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/usecase"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/safe"
)

type Server struct {
	router      *chi.Mux
	uc          *usecase.UseCases
	verifyToken string
	appSecret   string
}

type Options func(*Server)

// WithVerifyToken sets the webhook setup handshake token
func WithVerifyToken(token string) Options {
	return func(s *Server) {
		s.verifyToken = token
	}
}

// WithAppSecret enables payload signature verification with the given
// Messenger app secret. Empty disables verification.
func WithAppSecret(secret string) Options {
	return func(s *Server) {
		s.appSecret = secret
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, []byte("OK"))
	})

	r.Route("/hooks/messenger", func(r chi.Router) {
		r.Get("/", s.verifyHandler)
		r.With(SignatureMiddleware(s.appSecret)).Post("/", s.webhookHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
