package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
)

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method || (method == http.MethodGet && r.Method == http.MethodHead) {
		return true
	}
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	return false
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteError writes a standard error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]string{
		"status": "error",
		"error":  message,
	})
}

// FilterFromRequest reads the sidebar selections from the query string.
// The returned spec is always usable; rejected parameters are reported in
// the error as a *filter.InvalidParamsError.
func FilterFromRequest(r *http.Request, base models.FilterSpec) (models.FilterSpec, error) {
	return filter.ParseSpec(r.URL.Query(), base)
}

// invalidParams returns the rejected parameter names of err, if any.
func invalidParams(err error) []string {
	var perr *filter.InvalidParamsError
	if errors.As(err, &perr) {
		return perr.Params
	}
	return nil
}
