// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/dealsense/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names exposed by the server.
const (
	ClassifyDormantLeadTool = "classify_dormant_lead"
	ScoreLeadTool           = "score_lead"
	AnalyzeLostDealTool     = "analyze_lost_deal"
)

// entityArg is the single argument every tool takes.
const entityArg = "entity_json"

// NewMCPServer initializes and configures the Dealsense MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Dealsense Decision Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: classify_dormant_lead ---
	s.AddTool(mcp.NewTool(ClassifyDormantLeadTool,
		mcp.WithDescription("Classify a dormant lead by stage and reason, and recommend a re-engagement window and approach."),
		mcp.WithString(entityArg, mcp.Description("The dormant lead as a JSON object with id and signals."), mcp.Required()),
	), h.handleClassifyDormantLead)

	// --- 2. Tool: score_lead ---
	s.AddTool(mcp.NewTool(ScoreLeadTool,
		mcp.WithDescription("Score an inbound lead on intent, capacity and efficiency, and route it to sales, nurture or disqualify."),
		mcp.WithString(entityArg, mcp.Description("The inbound lead as a JSON object with id, source, identity, website and behavior."), mcp.Required()),
	), h.handleScoreLead)

	// --- 3. Tool: analyze_lost_deal ---
	s.AddTool(mcp.NewTool(AnalyzeLostDealTool,
		mcp.WithDescription("Estimate the reversal probability of a lost deal and recommend a strategy and timing."),
		mcp.WithString(entityArg, mcp.Description("The lost deal as a JSON object with id, original_value, lost_at and loss details."), mcp.Required()),
	), h.handleAnalyzeLostDeal)

	return s
}

// StartMCPServer starts the Dealsense MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
