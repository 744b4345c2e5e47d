package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/kirillkom/docqa-client/internal/adapters/http"
	"github.com/kirillkom/docqa-client/internal/adapters/terminal"
	"github.com/kirillkom/docqa-client/internal/bootstrap"
	"github.com/kirillkom/docqa-client/internal/config"
	"github.com/kirillkom/docqa-client/internal/observability/logging"
)

const serviceName = "docqa"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSONLogger(os.Stderr, serviceName, "info").Error("config_error", "error", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger(os.Stderr, serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// A second signal during shutdown terminates immediately.
	context.AfterFunc(ctx, stop)

	display := terminal.NewDisplay(os.Stdout)
	app, err := bootstrap.New(ctx, cfg, serviceName, logger, terminal.NewNotifier(os.Stdout), display)
	if err != nil {
		logger.Error("bootstrap_error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	if cfg.HTTPAddr != "" {
		router := httpadapter.NewRouter(app.Session, app.Uploader, app.Asker, app.Metrics.Handler(), logger, int64(cfg.MaxFileBytes)).Handler()
		server := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: cfg.HTTPTimeout() + 30*time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Info("http_listening", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http_server_error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http_shutdown_error", "error", err)
			}
		}()
	}

	logger.Info("session_started", "session_id", app.Session.ID(), "api_url", cfg.APIBaseURL)
	console := terminal.NewConsole(app.Session, app.Files, app.Uploader, app.Asker, os.Stdout, logger)
	if err := console.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("console_error", "error", err)
	}
}
