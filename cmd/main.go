package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/thekoushikdurgas/windowsportfoillo/internal/app"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/config"
	"github.com/thekoushikdurgas/windowsportfoillo/internal/logging"
)

func main() {
	configPath := flag.String("config", "", "optional config file path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	srv, err := app.NewServer(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("server init failed", zap.Error(err))
	}
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
