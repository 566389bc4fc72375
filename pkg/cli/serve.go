package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/keytration7-star/DonHang-360-sub001/pkg/cli/config"
	httpctrl "github.com/keytration7-star/DonHang-360-sub001/pkg/controller/http"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/service/llm"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/usecase"
	"github.com/keytration7-star/DonHang-360-sub001/pkg/utils/logging"
)

// closeStaleInterval is how often abandoned conversations get swept
const closeStaleInterval = 1 * time.Hour

func cmdServe(version string) *cli.Command {
	var addr string
	var repoCfg config.Repository
	var messengerCfg config.Messenger
	var providerCfg config.Provider
	var modulesCfg config.Modules
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("DONHANG_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, messengerCfg.Flags()...)
	flags = append(flags, providerCfg.Flags()...)
	flags = append(flags, modulesCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			if err := modulesCfg.Configure(ctx, repo); err != nil {
				return goerr.Wrap(err, "failed to seed modules")
			}

			providers, err := providerCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure providers")
			}
			gateway := llm.NewGateway(providers...)
			logger.Info("provider gateway ready", "providers", gateway.Providers())

			sentryEnabled, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}

			uc := usecase.New(repo,
				usecase.WithGateway(gateway),
				usecase.WithMessenger(messengerCfg.Configure()),
				usecase.WithSentry(sentryEnabled),
			)

			server := httpctrl.New(uc,
				httpctrl.WithVerifyToken(messengerCfg.VerifyToken()),
				httpctrl.WithAppSecret(messengerCfg.AppSecret()),
			)

			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			go sweepStale(ctx, uc)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("HTTP server listening", "addr", addr)
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed")
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shut down HTTP server")
			}
			return nil
		},
	}
}

// sweepStale periodically closes conversations past the reuse window
func sweepStale(ctx context.Context, uc *usecase.UseCases) {
	ticker := time.NewTicker(closeStaleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := uc.CloseStale(ctx); err != nil {
				logging.Default().Error("failed to close stale conversations", "error", err.Error())
			}
		}
	}
}
