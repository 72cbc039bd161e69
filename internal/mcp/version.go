package mcp

import (
	"context"

	"github.com/bobmcallan/sharedash/internal/config"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type versionResult struct {
	Sharedash config.VersionInfo    `json:"sharedash"`
	Data      *dashboard.DataStatus `json:"data,omitempty"`
}

// VersionToolHandler reports build metadata and, when svc is set, the input file status.
func VersionToolHandler(svc *dashboard.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := versionResult{Sharedash: config.GetVersionInfo()}
		if svc != nil {
			st := svc.Status()
			result.Data = &st
		}
		return jsonResult(result), nil
	}
}
