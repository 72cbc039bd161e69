package mcp

import (
	"testing"
)

func TestTools_AreValid(t *testing.T) {
	for _, ct := range Tools() {
		if err := ValidateCatalogTool(ct); err != nil {
			t.Errorf("tool %s invalid: %v", ct.Name, err)
		}
	}
}

func TestValidateCatalogTool(t *testing.T) {
	tests := []struct {
		name    string
		tool    CatalogTool
		wantErr bool
	}{
		{"valid", CatalogTool{Name: "a", Description: "d"}, false},
		{"empty name", CatalogTool{Description: "d"}, true},
		{"empty description", CatalogTool{Name: "a"}, true},
		{"empty param name", CatalogTool{Name: "a", Description: "d", Params: []CatalogParam{{Type: "string"}}}, true},
		{"duplicate param", CatalogTool{Name: "a", Description: "d", Params: []CatalogParam{{Name: "x", Type: "string"}, {Name: "x", Type: "number"}}}, true},
		{"unknown type", CatalogTool{Name: "a", Description: "d", Params: []CatalogParam{{Name: "x", Type: "array"}}}, true},
		{"enum on number", CatalogTool{Name: "a", Description: "d", Params: []CatalogParam{{Name: "x", Type: "number", Enum: []string{"1"}}}}, true},
		{"enum on string", CatalogTool{Name: "a", Description: "d", Params: []CatalogParam{{Name: "x", Type: "string", Enum: []string{"1"}}}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalogTool(tt.tool)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCatalogTool() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCatalog_FiltersDuplicatesAndInvalid(t *testing.T) {
	catalog := []CatalogTool{
		{Name: "a", Description: "first"},
		{Name: "a", Description: "duplicate"},
		{Name: "", Description: "invalid"},
		{Name: "b", Description: "second"},
	}
	got := ValidateCatalog(catalog, testLogger())
	if len(got) != 2 {
		t.Fatalf("expected 2 tools, got %d", len(got))
	}
	if got[0].Description != "first" || got[1].Name != "b" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestValidateCatalog_EmptyInput(t *testing.T) {
	if got := ValidateCatalog(nil, testLogger()); len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}

func TestBuildMCPTool_Schema(t *testing.T) {
	var predictions CatalogTool
	for _, ct := range Tools() {
		if ct.Name == ToolPredictions {
			predictions = ct
		}
	}

	tool := BuildMCPTool(predictions)
	if tool.Name != ToolPredictions {
		t.Errorf("expected name %s, got %s", ToolPredictions, tool.Name)
	}
	props := tool.InputSchema.Properties
	for _, name := range []string{"view", "include_up", "include_down", "prob_min", "prob_max", "sort", "limit"} {
		if _, ok := props[name]; !ok {
			t.Errorf("missing property %s", name)
		}
	}
	up, _ := props["include_up"].(map[string]interface{})
	if up["type"] != "boolean" {
		t.Errorf("expected include_up boolean, got %v", up["type"])
	}
	view, _ := props["view"].(map[string]interface{})
	if enum, _ := view["enum"].([]string); len(enum) != 2 {
		t.Errorf("expected view enum of 2, got %v", view["enum"])
	}
}

func TestBuildMCPTool_Required(t *testing.T) {
	var window CatalogTool
	for _, ct := range Tools() {
		if ct.Name == ToolPriceWindow {
			window = ct
		}
	}
	tool := BuildMCPTool(window)
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != "ticker" {
		t.Errorf("expected ticker required, got %v", tool.InputSchema.Required)
	}
}
