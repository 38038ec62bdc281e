// ABOUTME: Prometheus instrumentation middleware for the mux router
// ABOUTME: Labels requests by route template so path variables do not explode cardinality

package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Bazzook4/hotel-setup-tool/backend/metrics"
)

const unmatchedRoute = "unmatched"

// Metrics records request counts and latency. Register it with Router.Use so
// the matched route is known when it runs.
func Metrics(m *metrics.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			m.ObserveRequest(r.Method, routeTemplate(r), wrapped.statusCode, time.Since(start))
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return unmatchedRoute
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return unmatchedRoute
	}
	return tpl
}
