package main

import (
	"fmt"
	"os"

	"github.com/futig/idea-validator/internal/builder"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Stdout carries the MCP stdio transport. Logs go to stderr.
func main() {
	s, logger, cleanup, err := builder.BuildMCPServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build MCP server: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	logger.Info("serving MCP over stdio")
	if err := server.ServeStdio(s); err != nil {
		logger.Error("mcp server error", zap.Error(err))
	}
}
