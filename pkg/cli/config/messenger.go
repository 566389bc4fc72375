package config

import (
	"github.com/urfave/cli/v3"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/messenger"
)

// Messenger holds CLI flags for the Messenger channel binding
type Messenger struct {
	verifyToken string
	appSecret   string
	graphAPIURL string
}

// Flags returns CLI flags for Messenger configuration
func (m *Messenger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "messenger-verify-token",
			Usage:       "Webhook setup verification token",
			Sources:     cli.EnvVars("DONHANG_MESSENGER_VERIFY_TOKEN"),
			Destination: &m.verifyToken,
		},
		&cli.StringFlag{
			Name:        "messenger-app-secret",
			Usage:       "App secret for webhook payload signature verification (empty disables verification)",
			Sources:     cli.EnvVars("DONHANG_MESSENGER_APP_SECRET"),
			Destination: &m.appSecret,
		},
		&cli.StringFlag{
			Name:        "messenger-graph-api-url",
			Usage:       "Graph API base URL override (used by tests)",
			Sources:     cli.EnvVars("DONHANG_MESSENGER_GRAPH_API_URL"),
			Destination: &m.graphAPIURL,
		},
	}
}

// VerifyToken returns the webhook verification token
func (m *Messenger) VerifyToken() string {
	return m.verifyToken
}

// AppSecret returns the webhook signature secret
func (m *Messenger) AppSecret() string {
	return m.appSecret
}

// Configure builds the Messenger Send API client
func (m *Messenger) Configure() messenger.Service {
	var opts []messenger.Option
	if m.graphAPIURL != "" {
		opts = append(opts, messenger.WithBaseURL(m.graphAPIURL))
	}
	return messenger.New(opts...)
}
