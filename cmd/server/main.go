package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/DrOksusu/email-automation/internal/app/server"
	"github.com/DrOksusu/email-automation/internal/platform/config"
	"github.com/DrOksusu/email-automation/internal/platform/logging"
)

func main() {
	cfg := config.Load()
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr); err != nil {
		log.Fatalf("logging setup failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Run(ctx, cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
