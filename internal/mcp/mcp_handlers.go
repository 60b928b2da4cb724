package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/dealsense/core"
	"github.com/huangsam/dealsense/internal/contract"
	"github.com/huangsam/dealsense/internal/inputs"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleClassifyDormantLead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leads, errResult := decodeOne(request, inputs.DecodeDormantLeads)
	if errResult != nil {
		return errResult, nil
	}
	results, err := core.GetDormancyResults(ctx, h.baseCfg.Clone(), h.mgr, leads)
	return toolResult(results, err)
}

func (h *toolHandler) handleScoreLead(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	leads, errResult := decodeOne(request, inputs.DecodeInboundLeads)
	if errResult != nil {
		return errResult, nil
	}
	results, err := core.GetScoreResults(ctx, h.baseCfg.Clone(), h.mgr, leads)
	return toolResult(results, err)
}

func (h *toolHandler) handleAnalyzeLostDeal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deals, errResult := decodeOne(request, inputs.DecodeLostDeals)
	if errResult != nil {
		return errResult, nil
	}
	results, err := core.GetReversalResults(ctx, h.baseCfg.Clone(), h.mgr, deals)
	return toolResult(results, err)
}

// decodeOne reads the entity_json argument and requires it to hold exactly one entity.
func decodeOne[T any](request mcp.CallToolRequest, decode func([]byte) ([]T, error)) ([]T, *mcp.CallToolResult) {
	raw := request.GetString(entityArg, "")
	if raw == "" {
		return nil, mcp.NewToolResultError(entityArg + " is required")
	}
	entities, err := decode([]byte(raw))
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("invalid %s: %v", entityArg, err))
	}
	if len(entities) != 1 {
		return nil, mcp.NewToolResultError(fmt.Sprintf("%s must hold exactly one entity, got %d", entityArg, len(entities)))
	}
	return entities, nil
}

// toolResult renders the single decision as indented JSON.
func toolResult[T any](results []T, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("decision failed: %v", err)), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultError("decision failed: no result"), nil
	}
	jsonData, _ := json.MarshalIndent(results[0], "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
