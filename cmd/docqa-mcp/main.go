package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/kirillkom/docqa-client/internal/adapters/mcp"
	"github.com/kirillkom/docqa-client/internal/bootstrap"
	"github.com/kirillkom/docqa-client/internal/config"
	"github.com/kirillkom/docqa-client/internal/infrastructure/notify"
	"github.com/kirillkom/docqa-client/internal/observability/logging"
)

const serviceName = "docqa-mcp"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.NewJSONLogger(os.Stderr, serviceName, "info").Error("config_error", "error", err)
		os.Exit(1)
	}
	logger := logging.NewJSONLogger(os.Stderr, serviceName, cfg.LogLevel)

	// stdout carries the MCP protocol, so notifications only go to the log.
	app, err := bootstrap.New(context.Background(), cfg, serviceName, logger, notify.NewLogNotifier(logger), nil)
	if err != nil {
		logger.Error("bootstrap_error", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	mcpServer := server.NewMCPServer(serviceName, "1.0.0", server.WithToolCapabilities(false))
	mcpadapter.NewTools(app.Session, app.Files, app.Uploader, app.Asker, logger).Register(mcpServer)

	logger.Info("mcp_stdio_started", "session_id", app.Session.ID())
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Error("mcp_server_error", "error", err)
	}
}
