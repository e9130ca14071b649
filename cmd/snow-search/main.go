// snow-search searches ServiceNow records by keyword and prints the result
// envelope as JSON. It is the shell-friendly twin of the MCP search tools:
//
//	snow-search -kind problem Windows update
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/snowbridge/internal/auth"
	"github.com/ternarybob/snowbridge/internal/common"
	"github.com/ternarybob/snowbridge/internal/servicenow"
)

func main() {
	os.Exit(run())
}

func run() int {
	configFlag := flag.String("config", "", "Path to TOML config (default: $SNOWBRIDGE_CONFIG, then snowbridge.toml)")
	kindFlag := flag.String("kind", "knowledge_article", "Record kind: incident, problem or knowledge (knowledge_article)")
	limitFlag := flag.Int("limit", 20, "Maximum records to return")
	offsetFlag := flag.Int("offset", 0, "Pagination offset")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Println("snow-search " + common.GetFullVersion())
		return 0
	}

	keywords := flag.Args()
	if len(keywords) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: snow-search [-kind incident|problem|knowledge_article] <keyword> [keyword ...]")
		return 2
	}

	kind, ok := servicenow.KindByName(*kindFlag)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown record kind: %s\n", *kindFlag)
		return 2
	}

	configPath := *configFlag
	if configPath == "" {
		configPath = os.Getenv("SNOWBRIDGE_CONFIG")
	}
	if configPath == "" {
		if _, err := os.Stat("snowbridge.toml"); err == nil {
			configPath = "snowbridge.toml"
		}
	}

	config, err := common.LoadFromFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 2
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return 2
	}

	// Stdout carries the envelope JSON; cap console logging at warn
	if config.Logging.Level == "" || config.Logging.Level == "info" || config.Logging.Level == "debug" {
		config.Logging.Level = "warn"
	}
	logger := common.InitLogger(config)

	authManager, err := auth.NewManager(&config.Auth, config.ServiceNow.Timeout(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid auth config: %v\n", err)
		return 2
	}

	client := servicenow.NewClient(config.ServiceNow, authManager, logger)
	ops := servicenow.NewOperations(client, logger)

	envelope, err := ops.Search(context.Background(), kind, keywords, *limitFlag, *offsetFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode result: %v\n", err)
		return 1
	}
	fmt.Println(string(data))

	if !envelope.Success {
		return 1
	}
	return 0
}
