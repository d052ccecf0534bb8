package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/pkgship/courier/pkg/cli/config"
	controller "github.com/pkgship/courier/pkg/controller/http"
	"github.com/pkgship/courier/pkg/domain/interfaces"
	githubinfra "github.com/pkgship/courier/pkg/infra/github"
	"github.com/pkgship/courier/pkg/infra/python"
	slackinfra "github.com/pkgship/courier/pkg/infra/slack"
	"github.com/pkgship/courier/pkg/usecase"
	"github.com/pkgship/courier/pkg/utils/async"
)

func cmdServe() *cli.Command {
	var (
		serverCfg    config.Server
		githubCfg    config.GitHub
		indexCfg     config.Index
		toolchainCfg config.Toolchain
		sentryCfg    config.Sentry
		slackCfg     config.Slack
	)

	flags := serverCfg.Flags()
	flags = append(flags, githubCfg.Flags()...)
	flags = append(flags, indexCfg.Flags()...)
	flags = append(flags, toolchainCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the webhook trigger server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting courier server",
				slog.String("addr", serverCfg.Addr),
				slog.String("index_url", indexCfg.URL),
			)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}
			defer sentry.Flush(2 * time.Second)

			privateKey, err := os.ReadFile(githubCfg.PrivateKey)
			if err != nil {
				return goerr.Wrap(err, "failed to read GitHub App private key")
			}

			sourceClient, err := githubinfra.NewClient(githubCfg.AppID, githubCfg.InstallationID, privateKey)
			if err != nil {
				return goerr.Wrap(err, "failed to create GitHub client")
			}

			toolchain := newToolchain(&toolchainCfg)

			var publishOpts []usecase.PublishOption
			if slackCfg.Enabled() {
				publishOpts = append(publishOpts, usecase.WithNotifier(
					slackinfra.NewNotifier(slackCfg.Token, slackCfg.Channel),
				))
			}

			publishUC := usecase.NewPublish(sourceClient, toolchain, indexCfg.Target(), publishOpts...)
			webhookUC := usecase.NewWebhook(publishUC, async.Dispatch)

			server, err := controller.NewServer(
				ctx,
				webhookUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithWebhookSecret(githubCfg.WebhookSecret),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

func newToolchain(cfg *config.Toolchain) interfaces.Toolchain {
	var opts []python.Option
	if cfg.Python != "" {
		opts = append(opts, python.WithPython(cfg.Python))
	}
	if len(cfg.Tools) > 0 {
		opts = append(opts, python.WithTools(cfg.Tools...))
	}
	return python.New(opts...)
}
