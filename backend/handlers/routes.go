// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and builds the mux router

package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Bazzook4/hotel-setup-tool/backend/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// searchCost is the quota charged per hotel search.
const searchCost = 1

// Routes returns all API routes for registration.
// Routes use /api/v1/ prefix; legacy /api/ routes are registered separately.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Calculators
		{Method: http.MethodPost, Path: "/api/v1/occupancy/calculate", Handler: h.CalculateOccupancy},
		{Method: http.MethodPost, Path: "/api/v1/occupancy/export", Handler: h.ExportOccupancy},
		{Method: http.MethodPost, Path: "/api/v1/inventory/calculate", Handler: h.CalculateInventory},

		// Hotel search
		{Method: http.MethodGet, Path: "/api/v1/hotels/search", Handler: middleware.Chain(
			h.SearchHotels,
			h.requireSearch,
			middleware.RateLimit(h.searchLimiter, middleware.ClientIP, searchCost),
		)},
	}
}

// LegacyRoutes returns the unversioned paths used by the existing web UI.
func (h *Handler) LegacyRoutes() []Route {
	return []Route{
		{Method: http.MethodPost, Path: "/api/occupancy/calculate", Handler: h.CalculateOccupancy},
		{Method: http.MethodPost, Path: "/api/inventory/calculate", Handler: h.CalculateInventory},
		{Method: http.MethodGet, Path: "/api/hotels", Handler: middleware.Chain(
			h.SearchHotels,
			h.requireSearch,
			middleware.RateLimit(h.searchLimiter, middleware.ClientIP, searchCost),
		)},
	}
}

// Router registers every route behind the shared middleware stack. Each route
// also answers OPTIONS so CORS preflights reach the CORS middleware.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h.writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	if h.metrics != nil {
		r.Use(middleware.Metrics(h.metrics))
		if h.cfg.MetricsEnabled {
			r.Handle(h.cfg.MetricsPath, h.metrics.Handler()).Methods(http.MethodGet)
		}
	}

	cors := middleware.CORSWithConfig(h.cfg.CORSAllowedOrigins)
	for _, route := range append(h.Routes(), h.LegacyRoutes()...) {
		handler := middleware.Chain(route.Handler, middleware.Recover, middleware.LogRequest, cors)
		r.HandleFunc(route.Path, handler).Methods(route.Method, http.MethodOptions)
	}
	return r
}
