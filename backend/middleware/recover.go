// ABOUTME: Panic recovery middleware
// ABOUTME: Converts a handler panic into a logged 500 JSON response

package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recover stops a panicking handler from taking down the server.
func Recover(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Handler panic",
					"request_id", RequestID(r.Context()),
					"path", sanitizePath(r.URL.Path),
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				writeJSONError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}
