// Package httpvalidate is the thin boundary between HTTP handlers and the
// record evaluation engine. Its middleware decodes a JSON request body into a
// raw field mapping, evaluates it for a fixed record kind, and either stores
// the normalized record in the request context for the next handler or
// responds with the standard validation error payload:
//
//	{"success": false, "message": "Validation error", "errors": [...]}
//
// Routing, authentication, and persistence stay with the caller.
package httpvalidate

import (
	"context"
	"io"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/bankcore/rulekit/pkg/engine"
	"github.com/bankcore/rulekit/pkg/schema"
)

// maxBodySize limits request bodies to 1 MB.
const maxBodySize = 1 << 20

type contextKey struct{}

// RecordFrom returns the normalized record stored by the middleware.
func RecordFrom(ctx context.Context) (map[string]any, bool) {
	record, ok := ctx.Value(contextKey{}).(map[string]any)
	return record, ok
}

type errorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Middleware validates JSON request bodies as records of the given kind. On
// acceptance the normalized record replaces the raw body in the request
// context; on rejection the request is answered with 400 and the rendered
// violation messages, and the next handler never runs.
func Middleware(ev *engine.Evaluator, kind schema.Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			record, ok := decodeBody(w, r)
			if !ok {
				return
			}

			verdict, err := ev.Evaluate(r.Context(), kind, record)
			if err != nil {
				// Unknown kind is a wiring bug, not a client error.
				writeJSON(w, http.StatusInternalServerError, errorResponse{
					Success: false,
					Message: "Validation unavailable",
				})
				return
			}

			if !verdict.Accepted() {
				writeJSON(w, http.StatusBadRequest, errorResponse{
					Success: false,
					Message: "Validation error",
					Errors:  verdict.Messages(),
				})
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, verdict.Record)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	contentType := r.Header.Get("Content-Type")
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = strings.TrimSpace(contentType[:idx])
	}
	if contentType != "application/json" {
		writeJSON(w, http.StatusUnsupportedMediaType, errorResponse{
			Success: false,
			Message: "Expected application/json body",
		})
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil || len(body) > maxBodySize {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Unable to read request body",
		})
		return nil, false
	}

	var record map[string]any
	if err := json.Unmarshal(body, &record); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Success: false,
			Message: "Invalid JSON body",
		})
		return nil, false
	}
	return record, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
