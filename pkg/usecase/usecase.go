package usecase

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/domain/interfaces"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/llm"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/messenger"
)

type UseCases struct {
	repo      interfaces.Repository
	gateway   *llm.Gateway
	messenger messenger.Service

	// sentryEnabled routes orchestrator boundary errors to Sentry in
	// addition to the log
	sentryEnabled bool

	// getGroup collapses concurrent GetOrCreate calls for the same
	// module/customer pair into one lookup
	getGroup singleflight.Group

	// convMu serializes message appends per conversation so concurrent
	// turns cannot overwrite each other's read-modify-write cycle
	convMu   sync.Mutex
	convLock map[string]*sync.Mutex
}

type Option func(*UseCases)

func WithGateway(g *llm.Gateway) Option {
	return func(uc *UseCases) {
		uc.gateway = g
	}
}

func WithMessenger(svc messenger.Service) Option {
	return func(uc *UseCases) {
		uc.messenger = svc
	}
}

func WithSentry(enabled bool) Option {
	return func(uc *UseCases) {
		uc.sentryEnabled = enabled
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:     repo,
		convLock: make(map[string]*sync.Mutex),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// lockConversation returns the mutex guarding one conversation's
// read-modify-write cycle, creating it on first use.
func (uc *UseCases) lockConversation(key string) *sync.Mutex {
	uc.convMu.Lock()
	defer uc.convMu.Unlock()

	mu, ok := uc.convLock[key]
	if !ok {
		mu = &sync.Mutex{}
		uc.convLock[key] = mu
	}
	return mu
}
