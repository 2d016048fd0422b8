package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/entity"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/futig/idea-validator/internal/pkg/logger"
	"github.com/futig/idea-validator/internal/telegram/middleware"
	"github.com/futig/idea-validator/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// BotAPI is the part of the Telegram client the bot uses
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type EvaluationUsecase interface {
	Evaluate(ctx context.Context, rawIdea string) (*entity.Evaluation, error)
}

type FormatterFactory interface {
	Create(format entity.ReportFormat) (formatter.Formatter, error)
}

// Bot evaluates every text message it receives. It keeps no per-user state.
type Bot struct {
	api        BotAPI
	cfg        *config.TelegramConfig
	usecase    EvaluationUsecase
	formatters FormatterFactory
	logger     *zap.Logger

	loggingMW  *middleware.LoggingMiddleware
	recoveryMW *middleware.RecoveryMiddleware

	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New authorizes against the Telegram API and creates the bot
func New(
	cfg *config.TelegramConfig,
	usecase EvaluationUsecase,
	formatters FormatterFactory,
	logger *zap.Logger,
) (*Bot, error) {
	if cfg.BotToken == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN is not set")
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}
	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(api, cfg, usecase, formatters, logger), nil
}

func newBot(
	api BotAPI,
	cfg *config.TelegramConfig,
	usecase EvaluationUsecase,
	formatters FormatterFactory,
	logger *zap.Logger,
) *Bot {
	return &Bot{
		api:        api,
		cfg:        cfg,
		usecase:    usecase,
		formatters: formatters,
		logger:     logger,
		loggingMW:  middleware.NewLoggingMiddleware(logger),
		recoveryMW: middleware.NewRecoveryMiddleware(logger, api),
		stopChan:   make(chan struct{}),
	}
}

// Start begins receiving updates. It returns immediately.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops receiving updates and waits for running evaluations
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				ctxzap.Info(ctx, "updates channel closed")
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware runs logging and recovery around handleUpdate
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.loggingMW.Handle(update, func(u tgbotapi.Update) {
		b.recoveryMW.Handle(u, func(u2 tgbotapi.Update) {
			b.handleUpdate(ctx, u2)
		})
	})
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.Chat == nil {
		return
	}

	ctx = logger.AddFields(ctx,
		zap.Int("update_id", update.UpdateID),
		zap.Int64("chat_id", message.Chat.ID),
	)

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	if message.Text == "" {
		b.sendText(ctx, message.Chat.ID, render.ErrTextOnly)
		return
	}

	b.handleIdea(ctx, message)
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	ctxzap.Info(ctx, "command received", zap.String("command", command))

	switch command {
	case "start":
		b.sendText(ctx, message.Chat.ID, render.MsgWelcome)
	case "help":
		b.sendText(ctx, message.Chat.ID, render.MsgHelp)
	default:
		b.sendText(ctx, message.Chat.ID, render.ErrUnknownCommand)
	}
}

// handleIdea evaluates the message text and replies with the result and a report
func (b *Bot) handleIdea(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	typing := NewTypingNotifier(b.api, chatID, b.logger)
	typing.Start(ctx)
	ev, err := func() (*entity.Evaluation, error) {
		defer typing.Stop()
		return b.usecase.Evaluate(ctx, message.Text)
	}()

	if err != nil {
		fields := []zap.Field{zap.Error(err), zap.String("kind", entity.KindOf(err).String())}
		if errors.Is(err, entity.ErrValidation) {
			ctxzap.Info(ctx, "idea rejected", fields...)
		} else {
			ctxzap.Error(ctx, "evaluation failed", fields...)
		}
		b.sendText(ctx, chatID, render.RenderError(err))
		return
	}

	msg := tgbotapi.NewMessage(chatID, render.RenderEvaluation(ev))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyToMessageID = message.MessageID
	if _, err := b.api.Send(msg); err != nil {
		ctxzap.Error(ctx, "failed to send evaluation", zap.Error(err))
		return
	}

	if err := b.sendReport(ev, chatID); err != nil {
		ctxzap.Warn(ctx, "failed to send report", zap.Error(err))
	}
}

// sendReport attaches the evaluation in the configured report format
func (b *Bot) sendReport(ev *entity.Evaluation, chatID int64) error {
	if b.cfg.ReportFormat == "" {
		return nil
	}

	f, err := b.formatters.Create(entity.ReportFormat(b.cfg.ReportFormat))
	if err != nil {
		return err
	}
	data, err := f.Format(ev)
	if err != nil {
		return fmt.Errorf("format report: %w", err)
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  formatter.Filename(ev, f),
		Bytes: data,
	})
	doc.Caption = render.MsgReportCaption
	if _, err := b.api.Send(doc); err != nil {
		return fmt.Errorf("send document: %w", err)
	}

	return nil
}

func (b *Bot) sendText(ctx context.Context, chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}
