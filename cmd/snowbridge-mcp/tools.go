package main

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ternarybob/snowbridge/internal/servicenow"
)

// createListTool returns the list_<kind> tool definition
func createListTool(kind servicenow.RecordKind) mcp.Tool {
	return mcp.NewTool("list_"+kind.PluralName,
		mcp.WithDescription(fmt.Sprintf("List ServiceNow %s with optional equality filters and a free-text query", kind.Plural)),
		mcp.WithNumber("limit",
			mcp.Description("Maximum records to return (default: 10, max: 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Pagination offset (default: 0)"),
		),
		mcp.WithString("state",
			mcp.Description("Filter by state value"),
		),
		mcp.WithString("assigned_to",
			mcp.Description("Filter by assignee"),
		),
		mcp.WithString("category",
			mcp.Description("Filter by category"),
		),
		mcp.WithString("query",
			mcp.Description("Substring match over "+strings.Join(kind.TextFields, "/")),
		),
	)
}

// createGetByNumberTool returns the get_<kind>_by_number tool definition
func createGetByNumberTool(kind servicenow.RecordKind) mcp.Tool {
	return mcp.NewTool("get_"+kind.Name+"_by_number",
		mcp.WithDescription(fmt.Sprintf("Fetch a single %s by its record number", strings.ToLower(kind.Label))),
		mcp.WithString("number",
			mcp.Required(),
			mcp.Description(fmt.Sprintf("%s record number", kind.Label)),
		),
	)
}

// createSearchTool returns the search_<kind> tool definition
func createSearchTool(kind servicenow.RecordKind) mcp.Tool {
	return mcp.NewTool("search_"+kind.PluralName,
		mcp.WithDescription(fmt.Sprintf("Search ServiceNow %s matching any keyword in %s; returns a compact result set", kind.Plural, strings.Join(kind.TextFields, "/"))),
		mcp.WithArray("keywords",
			mcp.Required(),
			mcp.WithStringItems(),
			mcp.Description("Keywords to match (any keyword, any field)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum records to return (default: 10, max: 100)"),
		),
		mcp.WithNumber("offset",
			mcp.Description("Pagination offset (default: 0)"),
		),
	)
}
