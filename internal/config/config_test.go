package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.ServerAddr)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "gpt-4o", cfg.LLMConnectorCfg.Model)
	assert.Equal(t, "/v1/chat/completions", cfg.LLMConnectorCfg.ChatEndpoint)
	assert.Equal(t, "https://api.openai.com", cfg.LLMConnectorCfg.Url)
	assert.Equal(t, 60*time.Second, cfg.EvaluationTimeout)
	assert.Equal(t, uint(1), cfg.LLMConnectorCfg.Retry.Attempts)
	assert.Equal(t, "sk-test", cfg.LLMConnectorCfg.Token)
	assert.Equal(t, "pdf", cfg.TelegramCfg.ReportFormat)
}

func TestParse_ExplicitTokenWins(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	t.Setenv("LLM_TOKEN", "sk-explicit")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Equal(t, "sk-explicit", cfg.LLMConnectorCfg.Token)
}

func TestParse_MissingCredentialIsAllowed(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("LLM_TOKEN", "")

	cfg, err := Parse()
	require.NoError(t, err)
	assert.Empty(t, cfg.LLMConnectorCfg.Token)
}

func TestParse_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		msg  string
	}{
		{name: "provider", key: "LLM_PROVIDER", val: "llama", msg: "LLM_PROVIDER"},
		{name: "retry attempts", key: "LLM_RETRY_ATTEMPTS", val: "9", msg: "LLM_RETRY_ATTEMPTS"},
		{name: "tracing without endpoint", key: "TRACING_ENABLED", val: "true", msg: "TRACING_ENDPOINT_URL"},
		{name: "report format", key: "TELEGRAM_REPORT_FORMAT", val: "xlsx", msg: "TELEGRAM_REPORT_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Parse()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse_ValidationErrorsAreOrdered(t *testing.T) {
	t.Setenv("LLM_RETRY_ATTEMPTS", "0")
	t.Setenv("ANTHROPIC_RETRY_ATTEMPTS", "7")
	t.Setenv("GEMINI_RETRY_ATTEMPTS", "9")

	for range 5 {
		_, err := Parse()
		require.Error(t, err)

		msg := err.Error()
		llm := strings.Index(msg, "LLM_RETRY_ATTEMPTS")
		anthropic := strings.Index(msg, "ANTHROPIC_RETRY_ATTEMPTS")
		gemini := strings.Index(msg, "GEMINI_RETRY_ATTEMPTS")
		require.True(t, llm >= 0 && anthropic >= 0 && gemini >= 0, msg)
		assert.Less(t, llm, anthropic)
		assert.Less(t, anthropic, gemini)
	}
}

func TestGetEnvFile(t *testing.T) {
	assert.Equal(t, ".env.prod", getEnvFile("production"))
	assert.Equal(t, ".env.local", getEnvFile("dev"))
	assert.Equal(t, ".env.staging", getEnvFile("staging"))
}
