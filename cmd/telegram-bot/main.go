package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/futig/idea-validator/internal/builder"
	"go.uber.org/zap"
)

func main() {
	bot, logger, cleanup, err := builder.BuildTelegramBot()
	if err != nil {
		log.Fatal("Failed to build telegram bot:", err)
	}
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	if err := bot.Start(ctx); err != nil {
		logger.Error("telegram bot error", zap.Error(err))
		return
	}

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	cancel()
	if err := bot.Stop(); err != nil {
		logger.Error("error stopping bot", zap.Error(err))
	}
	logger.Info("telegram bot stopped gracefully")
}
