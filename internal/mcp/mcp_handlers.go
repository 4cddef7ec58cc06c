package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taxdeedflow/deedscore/core"
	"github.com/taxdeedflow/deedscore/internal/contract"
	"github.com/taxdeedflow/deedscore/internal/intake"
	"github.com/taxdeedflow/deedscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	scorer  *core.Scorer
}

// parsePropertyArg decodes a single property record from a tool argument.
func parsePropertyArg(raw string) (*schema.PropertyRecord, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("property JSON is required")
	}
	records, err := intake.DecodeJSON(strings.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, fmt.Errorf("expected exactly one property record, got %d", len(records))
	}
	return &records[0], nil
}

// optionsFromRequest clones the base config and applies per-request overrides.
func (h *toolHandler) optionsFromRequest(request mcp.CallToolRequest) (schema.CalculationOptions, error) {
	cfg := h.baseCfg.Clone()
	if m := request.GetString("market_condition", ""); m != "" {
		condition := schema.MarketCondition(m)
		if _, ok := schema.ValidMarketConditions[condition]; !ok {
			return schema.CalculationOptions{}, fmt.Errorf("invalid market condition: %s", m)
		}
		cfg.MarketCondition = condition
	}
	return cfg.CalculationOptions(), nil
}

func (h *toolHandler) handleScoreProperty(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := parsePropertyArg(request.GetString("property_json", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid property: %v", err)), nil
	}
	opts, err := h.optionsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := h.scorer.Score(ctx, record, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScoreBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := request.GetString("properties_json", "")
	if strings.TrimSpace(raw) == "" {
		return mcp.NewToolResultError("properties JSON is required"), nil
	}
	records, err := intake.DecodeJSON(strings.NewReader(raw))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid properties: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultError("no property records provided"), nil
	}
	opts, err := h.optionsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, errs := h.scorer.ScoreBatch(ctx, records, opts)
	for _, scoreErr := range errs {
		if scoreErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", scoreErr)), nil
		}
	}

	core.RankResults(results)
	if l := request.GetInt("limit", 0); l > 0 && l < len(results) {
		results = results[:l]
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleDetectEdgeCases(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	record, err := parsePropertyArg(request.GetString("property_json", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid property: %v", err)), nil
	}

	result := core.DetectEdgeCases(record.Property, record.External, h.baseCfg.EdgeCases)
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleCompareProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recordA, err := parsePropertyArg(request.GetString("property_a_json", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid property A: %v", err)), nil
	}
	recordB, err := parsePropertyArg(request.GetString("property_b_json", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid property B: %v", err)), nil
	}
	opts, err := h.optionsFromRequest(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resultA, err := h.scorer.Score(ctx, recordA, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring property A failed: %v", err)), nil
	}
	resultB, err := h.scorer.Score(ctx, recordB, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring property B failed: %v", err)), nil
	}

	comparison, err := core.CompareScores(resultA, resultB)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(comparison, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
