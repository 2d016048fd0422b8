package telegram

import (
	"context"
	"fmt"

	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/telegram/bot"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	usecase bot.EvaluationUsecase,
	formatters bot.FormatterFactory,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, usecase, formatters, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	logger.Info("telegram bot initialized successfully",
		zap.String("report_format", cfg.ReportFormat),
	)

	return b, nil
}
