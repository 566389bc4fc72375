package types

import "github.com/m-mizutani/goerr/v2"

// Error tags classify failures for propagation policy decisions.
// Lower layers attach a tag; only the chat orchestrator converts tagged
// errors into user-facing apology replies.
var (
	ErrTagConfiguration = goerr.NewTag("configuration")
	ErrTagNotFound      = goerr.NewTag("not_found")
	ErrTagProvider      = goerr.NewTag("provider")
	ErrTagParsing       = goerr.NewTag("parsing")
	ErrTagPersistence   = goerr.NewTag("persistence")
)

// Sentinel errors shared across repository backends
var (
	ErrModuleNotFound       = goerr.New("module not found", goerr.T(ErrTagNotFound))
	ErrConversationNotFound = goerr.New("conversation not found", goerr.T(ErrTagNotFound))
	ErrProviderNotFound     = goerr.New("provider not registered", goerr.T(ErrTagConfiguration))
	ErrNoAPIKey             = goerr.New("required API key is not configured", goerr.T(ErrTagConfiguration))
)
