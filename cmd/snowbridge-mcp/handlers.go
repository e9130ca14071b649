package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ternarybob/snowbridge/internal/common"
	"github.com/ternarybob/snowbridge/internal/models"
	"github.com/ternarybob/snowbridge/internal/servicenow"
)

// handleList implements the list_<kind> tools
func handleList(ops *servicenow.Operations, kind servicenow.RecordKind, tools common.ToolsConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		params := servicenow.ListParams{
			Limit:      clampLimit(request.GetInt("limit", tools.DefaultLimit), tools.MaxLimit),
			Offset:     request.GetInt("offset", 0),
			State:      request.GetString("state", ""),
			AssignedTo: request.GetString("assigned_to", ""),
			Category:   request.GetString("category", ""),
			Query:      request.GetString("query", ""),
		}

		envelope, err := ops.List(ctx, kind, params)
		if err != nil {
			return errorResult(err), nil
		}
		return envelopeResult(envelope), nil
	}
}

// handleGetByNumber implements the get_<kind>_by_number tools
func handleGetByNumber(ops *servicenow.Operations, kind servicenow.RecordKind) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		number, err := request.RequireString("number")
		if err != nil || number == "" {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: number parameter is required"),
				},
			}, nil
		}

		envelope, err := ops.GetByNumber(ctx, kind, number)
		if err != nil {
			return errorResult(err), nil
		}
		return envelopeResult(envelope), nil
	}
}

// handleSearch implements the search_<kind> tools
func handleSearch(ops *servicenow.Operations, kind servicenow.RecordKind, tools common.ToolsConfig) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keywords := request.GetStringSlice("keywords", nil)
		if len(keywords) == 0 {
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					mcp.NewTextContent("Error: keywords parameter is required"),
				},
			}, nil
		}

		limit := clampLimit(request.GetInt("limit", tools.DefaultLimit), tools.MaxLimit)
		offset := request.GetInt("offset", 0)

		envelope, err := ops.Search(ctx, kind, keywords, limit, offset)
		if err != nil {
			return errorResult(err), nil
		}
		return envelopeResult(envelope), nil
	}
}

func clampLimit(limit, max int) int {
	if max > 0 && limit > max {
		return max
	}
	return limit
}

// envelopeResult serializes the result envelope as JSON text content
func envelopeResult(envelope *models.Envelope) *mcp.CallToolResult {
	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(fmt.Sprintf("Error: %v", err)),
		},
	}
}
