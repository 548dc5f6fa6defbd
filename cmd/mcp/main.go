package main

import (
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"

	appfantasy "github.com/preston-bernstein/fantasy-data-service/internal/app/fantasy"
	"github.com/preston-bernstein/fantasy-data-service/internal/config"
	"github.com/preston-bernstein/fantasy-data-service/internal/logging"
	"github.com/preston-bernstein/fantasy-data-service/internal/mcp"
	"github.com/preston-bernstein/fantasy-data-service/internal/metrics"
	"github.com/preston-bernstein/fantasy-data-service/internal/server"
)

const (
	appName    = "fantasy-data-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}

	dotEnvErr := config.LoadDotEnv()
	cfg := config.Load()
	// stdout carries the protocol.
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  "json",
		Service: appName + "-mcp",
		Version: appVersion,
		Output:  os.Stderr,
	})
	if dotEnvErr != nil {
		logger.Warn("failed to load .env", "error", dotEnvErr)
	}

	recorder := metrics.NewRecorder()
	provider, release := server.BuildProvider(cfg, logger, recorder)
	defer release()

	tools := mcp.NewTools(appfantasy.NewService(provider, logger, recorder), logger)
	logger.Info("mcp server starting", "tools", len(tools.List()))
	if err := mcpserver.ServeStdio(mcp.NewServer(tools, appName, appVersion)); err != nil {
		logging.Error(logger, "mcp server failed", err)
		release()
		os.Exit(1)
	}
}
