package server

import "net/http"

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	pages := s.app.PageHandler
	api := s.app.APIHandler

	// UI page routes (HTML templates)
	mux.HandleFunc("/{$}", pages.Root)
	mux.HandleFunc("/shares", pages.Shares)
	mux.HandleFunc("/probabilities", pages.Probabilities)
	mux.HandleFunc("/classification", pages.Classification)

	// Static files (CSS, JS, images)
	mux.HandleFunc("/static/", pages.StaticFileHandler)

	// Downloads
	mux.HandleFunc("/download/report", api.DownloadReport)
	mux.HandleFunc("/download/predictions.csv", api.DownloadPredictions)

	// MCP endpoint (JSON-RPC over HTTP)
	if s.app.MCPHandler != nil {
		mux.Handle("/mcp", s.app.MCPHandler)
	}

	// API routes
	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)
	mux.HandleFunc("/api/predictions", api.Predictions)
	mux.HandleFunc("/api/prices/{ticker}", api.Prices)
	mux.HandleFunc("/api/report", api.Report)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"status":"error","error":"The requested endpoint does not exist"}`))
}
