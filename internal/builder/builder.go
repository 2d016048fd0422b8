package builder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/futig/idea-validator/internal/api"
	evaluationapi "github.com/futig/idea-validator/internal/api/evaluation"
	"github.com/futig/idea-validator/internal/api/web"
	"github.com/futig/idea-validator/internal/config"
	"github.com/futig/idea-validator/internal/integration/llm"
	"github.com/futig/idea-validator/internal/mcpserver"
	"github.com/futig/idea-validator/internal/pkg/formatter"
	"github.com/futig/idea-validator/internal/pkg/logger"
	"github.com/futig/idea-validator/internal/pkg/tracing"
	"github.com/futig/idea-validator/internal/pkg/validator"
	"github.com/futig/idea-validator/internal/telegram"
	"github.com/futig/idea-validator/internal/usecase/evaluation"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// core holds what every entry point shares
type core struct {
	cfg        *config.Config
	logger     *zap.Logger
	usecase    *evaluation.EvaluationUsecase
	formatters *formatter.Factory
	closers    []closer
}

type closer struct {
	name  string
	close func(ctx context.Context) error
}

func buildCore(ctx context.Context) (*core, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	c := &core{
		cfg:        cfg,
		logger:     log,
		formatters: formatter.NewFactory(),
	}

	shutdownTracing, err := tracing.Setup(ctx, cfg.TracingCfg, log)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}
	c.closers = append(c.closers, closer{name: "tracing", close: shutdownTracing})

	connector, err := c.buildConnector(ctx)
	if err != nil {
		c.close(ctx)
		return nil, err
	}

	c.usecase = evaluation.NewUsecase(
		validator.NewIdeaValidator(),
		connector,
		cfg.EvaluationTimeout,
		log,
	)

	log.Info("Evaluation use case initialized",
		zap.String("environment", cfg.Environment),
		zap.String("provider", connector.Provider()),
		zap.String("model", connector.Model()),
	)

	return c, nil
}

// buildConnector picks the completion provider once at startup
func (c *core) buildConnector(ctx context.Context) (evaluation.LLMConnector, error) {
	if c.cfg.EnableMocks {
		c.logger.Info("Using mock connector for completions")
		return llm.NewMockConnector(c.logger), nil
	}

	switch c.cfg.LLMProvider {
	case config.ProviderAnthropic:
		return llm.NewAnthropicConnector(c.cfg.AnthropicCfg, c.logger), nil
	case config.ProviderGemini:
		gemini, err := llm.NewGeminiConnector(ctx, c.cfg.GeminiCfg, c.logger)
		if err != nil {
			return nil, fmt.Errorf("create gemini connector: %w", err)
		}
		c.closers = append(c.closers, closer{name: "gemini", close: func(context.Context) error {
			return gemini.Close()
		}})
		return gemini, nil
	default:
		return llm.NewConnector(c.cfg.LLMConnectorCfg, c.logger), nil
	}
}

// close releases resources in reverse order of acquisition
func (c *core) close(ctx context.Context) {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].close(ctx); err != nil {
			c.logger.Error("Failed to release resource",
				zap.String("resource", c.closers[i].name),
				zap.Error(err),
			)
		}
	}
	c.closers = nil
	_ = c.logger.Sync()
}

// Build assembles the web application
func Build() (*App, error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, err
	}

	webHandler, err := web.NewHandler(c.usecase, c.formatters)
	if err != nil {
		c.close(ctx)
		return nil, fmt.Errorf("setup web handler: %w", err)
	}
	evaluationHandler := evaluationapi.NewHandler(c.usecase, c.formatters)
	c.logger.Info("HTTP handlers initialized")

	router := api.SetupRouter(webHandler, evaluationHandler, c.cfg.EvaluationTimeout+10*time.Second, c.logger)

	srv := &http.Server{
		Addr:         c.cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  c.cfg.ServerReadTimeout,
		WriteTimeout: c.cfg.ServerWriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	c.logger.Info("Application built successfully",
		zap.String("environment", c.cfg.Environment),
		zap.String("server_addr", c.cfg.ServerAddr),
	)

	return &App{
		server: srv,
		core:   c,
		logger: c.logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot. The returned
// function releases shared resources after the bot is stopped.
func BuildTelegramBot() (telegram.Bot, *zap.Logger, func(), error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	bot, err := telegram.NewBot(&c.cfg.TelegramCfg, c.usecase, c.formatters, c.logger)
	if err != nil {
		c.close(ctx)
		return nil, nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	c.logger.Info("Telegram bot built successfully",
		zap.String("environment", c.cfg.Environment),
	)

	return bot, c.logger, func() { c.close(context.Background()) }, nil
}

// BuildMCPServer creates the MCP server exposing the evaluation tool
func BuildMCPServer() (*server.MCPServer, *zap.Logger, func(), error) {
	ctx := context.Background()

	c, err := buildCore(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	s := mcpserver.New(c.usecase, c.logger)

	return s, c.logger, func() { c.close(context.Background()) }, nil
}
