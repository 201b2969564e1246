package admin

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/relicguide/internal/api/handlers"
	"github.com/cloo-solutions/relicguide/internal/domain"
	"github.com/cloo-solutions/relicguide/internal/jobs"
	"github.com/cloo-solutions/relicguide/internal/server"
	"github.com/cloo-solutions/relicguide/internal/telemetry"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the relic guide API server, serving the chat, video and static endpoints",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides RELIC_PORT)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := loadApp(ctx, appOptions{logOutput: os.Stderr, withMetrics: true})
	if err != nil {
		return err
	}
	cfg, logger := a.cfg, a.logger

	if cfg.HasSentry() {
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: cfg.TracesSampleRate(),
		}, logger)
		if err != nil {
			logger.WithError(err).Warn("telemetry init failed (continuing without tracing)")
		} else {
			defer shutdownTelemetry()
		}
	}

	if portFlag, _ := cmd.Flags().GetString("port"); portFlag != "" {
		cfg.Port = portFlag
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:          logger,
		Metrics:         a.metrics,
		MaxBodyBytes:    cfg.MaxBodyBytes,
		OutputDir:       cfg.OutputDir,
		ImagesDir:       cfg.ImagesDir,
		ChatHandler:     handlers.NewChatHandler(a.chat),
		VideoHandler:    handlers.NewVideoHandler(a.video),
		RelicHandler:    handlers.NewRelicHandler(a.relics),
		TeamHandler:     handlers.NewTeamHandler(domain.DefaultTeam()),
		FrontendHandler: handlers.NewFrontendHandler(cfg.FrontendPath, logger),
	})

	var libraryWorker *jobs.Worker
	if cfg.LibraryScanInterval > 0 {
		scan := jobs.NewLibraryScan(a.store, cfg.VideoExt, a.metrics, logger)
		libraryWorker = jobs.NewWorker(scan, cfg.LibraryScanInterval, logger)
		go libraryWorker.Start(ctx)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("port", cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	logger.Info("shutting down...")

	if libraryWorker != nil {
		libraryWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}
