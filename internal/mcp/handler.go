package mcp

import (
	"net/http"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/config"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/models"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerName identifies the dashboard to MCP clients.
const ServerName = "sharedash"

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
	catalog    []CatalogTool
}

// NewHandler creates an MCP handler exposing the read-only dashboard tools.
func NewHandler(svc *dashboard.Service, base models.FilterSpec, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		ServerName,
		config.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	handlers := toolHandlers(svc, base)
	catalog := ValidateCatalog(Tools(), logger)
	for _, ct := range catalog {
		h, ok := handlers[ct.Name]
		if !ok {
			logger.Warn().Str("name", ct.Name).Msg("catalog tool has no handler")
			continue
		}
		mcpSrv.AddTool(BuildMCPTool(ct), h)
	}

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", len(catalog)).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
		catalog:    catalog,
	}
}

// Catalog returns a copy of the registered tool catalog.
func (h *Handler) Catalog() []CatalogTool {
	result := make([]CatalogTool, len(h.catalog))
	copy(result, h.catalog)
	return result
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}
