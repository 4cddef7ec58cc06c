// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Deedscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, scorer *core.Scorer) *server.MCPServer {
	s := server.NewMCPServer(
		"Deedscore Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		scorer:  scorer,
	}

	// --- 1. Tool: score_property ---
	s.AddTool(mcp.NewTool("score_property",
		mcp.WithDescription("Score a single tax deed property on the 0-125 investment scale."),
		mcp.WithString("property_json", mcp.Description("Property record as JSON. Either a {\"property\": ..., \"external\": ...} record or a bare property object."), mcp.Required()),
		mcp.WithString("market_condition", mcp.Description("Market condition for calibration (hot, stable, cooling, declining, distressed). Defaults to 'stable'."), mcp.Enum("hot", "stable", "cooling", "declining", "distressed")),
	), h.handleScoreProperty)

	// --- 2. Tool: score_batch ---
	s.AddTool(mcp.NewTool("score_batch",
		mcp.WithDescription("Score a batch of tax deed properties and rank them."),
		mcp.WithString("properties_json", mcp.Description("JSON array of property records."), mcp.Required()),
		mcp.WithString("market_condition", mcp.Description("Market condition for calibration."), mcp.Enum("hot", "stable", "cooling", "declining", "distressed")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleScoreBatch)

	// --- 3. Tool: detect_edge_cases ---
	s.AddTool(mcp.NewTool("detect_edge_cases",
		mcp.WithDescription("Screen a property against the edge case catalog without running the full scorer."),
		mcp.WithString("property_json", mcp.Description("Property record as JSON."), mcp.Required()),
	), h.handleDetectEdgeCases)

	// --- 4. Tool: compare_properties ---
	s.AddTool(mcp.NewTool("compare_properties",
		mcp.WithDescription("Score two properties and compare them category by category."),
		mcp.WithString("property_a_json", mcp.Description("First property record as JSON."), mcp.Required()),
		mcp.WithString("property_b_json", mcp.Description("Second property record as JSON."), mcp.Required()),
		mcp.WithString("market_condition", mcp.Description("Market condition for calibration."), mcp.Enum("hot", "stable", "cooling", "declining", "distressed")),
	), h.handleCompareProperties)

	return s
}

// StartMCPServer starts the Deedscore MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, scorer *core.Scorer) error {
	s := NewMCPServer(baseCfg, scorer)
	return server.ServeStdio(s)
}
