package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	serverName = "idea-validator"
	Version    = "1.0.0"
)

const instructions = `Use validate_business_idea to get a structured assessment of a business idea.
Pass the whole idea as one text. The result scores profitability, market demand and
execution ease from 0 to 10 and gives an overall score.`

// New creates the MCP server with the evaluation tool registered
func New(usecase EvaluationUsecase, logger *zap.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	tool := NewValidateTool(usecase, logger)
	s.AddTool(tool.Definition(), tool.Handle)

	logger.Info("mcp server initialized", zap.String("tool", toolName))
	return s
}
