package mcp

import (
	"fmt"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/mark3labs/mcp-go/mcp"
)

// CatalogTool describes one read-only dashboard tool.
type CatalogTool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Params      []CatalogParam `json:"params"`
}

// CatalogParam describes one parameter for a catalog tool.
type CatalogParam struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"` // string, number, boolean
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Enum        []string `json:"enum,omitempty"`
}

var paramTypes = map[string]bool{"string": true, "number": true, "boolean": true}

// ValidateCatalogTool validates a single catalog tool entry.
func ValidateCatalogTool(ct CatalogTool) error {
	if ct.Name == "" {
		return fmt.Errorf("tool has empty name")
	}
	if ct.Description == "" {
		return fmt.Errorf("tool %q has empty description", ct.Name)
	}
	seen := make(map[string]bool, len(ct.Params))
	for _, p := range ct.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %q has a parameter with empty name", ct.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %q has duplicate parameter %q", ct.Name, p.Name)
		}
		seen[p.Name] = true
		if !paramTypes[p.Type] {
			return fmt.Errorf("tool %q parameter %q has unsupported type %q", ct.Name, p.Name, p.Type)
		}
		if len(p.Enum) > 0 && p.Type != "string" {
			return fmt.Errorf("tool %q parameter %q: enum requires type string", ct.Name, p.Name)
		}
	}
	return nil
}

// ValidateCatalog filters and validates catalog entries, logging warnings for invalid or duplicate tools.
func ValidateCatalog(catalog []CatalogTool, logger *common.Logger) []CatalogTool {
	seen := make(map[string]bool, len(catalog))
	valid := make([]CatalogTool, 0, len(catalog))
	for _, ct := range catalog {
		if err := ValidateCatalogTool(ct); err != nil {
			logger.Warn().Str("error", err.Error()).Msg("skipping invalid catalog tool")
			continue
		}
		if seen[ct.Name] {
			logger.Warn().Str("name", ct.Name).Msg("skipping duplicate catalog tool")
			continue
		}
		seen[ct.Name] = true
		valid = append(valid, ct)
	}
	return valid
}

// BuildMCPTool converts a CatalogTool into an mcp.Tool with the appropriate schema.
func BuildMCPTool(ct CatalogTool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(ct.Description)}
	for _, p := range ct.Params {
		opts = append(opts, buildParamOption(p))
	}
	return mcp.NewTool(ct.Name, opts...)
}

// buildParamOption maps a CatalogParam to the appropriate mcp-go tool option.
func buildParamOption(p CatalogParam) mcp.ToolOption {
	var opts []mcp.PropertyOption
	if p.Description != "" {
		opts = append(opts, mcp.Description(p.Description))
	}
	if p.Required {
		opts = append(opts, mcp.Required())
	}
	if len(p.Enum) > 0 {
		opts = append(opts, mcp.Enum(p.Enum...))
	}

	switch p.Type {
	case "number":
		return mcp.WithNumber(p.Name, opts...)
	case "boolean":
		return mcp.WithBoolean(p.Name, opts...)
	default:
		return mcp.WithString(p.Name, opts...)
	}
}
