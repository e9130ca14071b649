package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"
	arbor_models "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/snowbridge/internal/auth"
	"github.com/ternarybob/snowbridge/internal/common"
	"github.com/ternarybob/snowbridge/internal/servicenow"
)

func main() {
	configPath := os.Getenv("SNOWBRIDGE_CONFIG")
	if configPath == "" {
		if _, err := os.Stat("snowbridge.toml"); err == nil {
			configPath = "snowbridge.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Minimal console logger to avoid cluttering MCP stdio
	logger := arbor.NewLogger().WithConsoleWriter(arbor_models.WriterConfiguration{
		Type:             arbor_models.LogWriterTypeConsole,
		TimeFormat:       "15:04:05",
		DisableTimestamp: false,
	}).WithLevelFromString("warn")

	authManager, err := auth.NewManager(&config.Auth, config.ServiceNow.Timeout(), logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize authentication")
	}

	client := servicenow.NewClient(config.ServiceNow, authManager, logger)
	ops := servicenow.NewOperations(client, logger)

	mcpServer := server.NewMCPServer(
		"snowbridge",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	// One list/get/search tool triple per record kind
	for _, kind := range servicenow.Kinds {
		mcpServer.AddTool(createListTool(kind), handleList(ops, kind, config.Tools))
		mcpServer.AddTool(createGetByNumberTool(kind), handleGetByNumber(ops, kind))
		mcpServer.AddTool(createSearchTool(kind), handleSearch(ops, kind, config.Tools))
	}

	// Start server (blocks on stdio)
	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal().Err(err).Msg("MCP server failed")
	}
}
