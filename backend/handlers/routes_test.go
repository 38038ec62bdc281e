// ABOUTME: Tests for route table definitions
// ABOUTME: Verifies all routes have required fields and no duplicates

package handlers

import (
	"strings"
	"testing"
)

func TestRoutes_AllRoutesHaveRequiredFields(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	routes := h.Routes()

	if len(routes) == 0 {
		t.Fatal("Routes() returned empty slice")
	}

	for i, route := range routes {
		if route.Method == "" {
			t.Errorf("Route %d: Method is empty", i)
		}
		if route.Path == "" {
			t.Errorf("Route %d: Path is empty", i)
		}
		if route.Handler == nil {
			t.Errorf("Route %d: Handler is nil", i)
		}
		if !strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Route %d: Path %q must start with /api/v1/", i, route.Path)
		}
	}
}

func TestRoutes_NoDuplicatePaths(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	routes := h.Routes()

	seen := make(map[string]bool)
	for _, route := range routes {
		key := route.Method + " " + route.Path
		if seen[key] {
			t.Errorf("Duplicate route: %s", key)
		}
		seen[key] = true
	}
}

func TestRoutes_ExpectedEndpoints(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)
	routes := h.Routes()

	expected := map[string]bool{
		"GET /api/v1/health":               false,
		"POST /api/v1/occupancy/calculate": false,
		"POST /api/v1/occupancy/export":    false,
		"POST /api/v1/inventory/calculate": false,
		"GET /api/v1/hotels/search":        false,
	}

	for _, route := range routes {
		key := route.Method + " " + route.Path
		if _, ok := expected[key]; ok {
			expected[key] = true
		}
	}

	for key, found := range expected {
		if !found {
			t.Errorf("Missing expected route: %s", key)
		}
	}
}

func TestLegacyRoutes_MirrorVersionedCalculators(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil)

	versioned := make(map[string]bool)
	for _, route := range h.Routes() {
		versioned[route.Method+" "+route.Path] = true
	}

	for _, route := range h.LegacyRoutes() {
		if strings.HasPrefix(route.Path, "/api/v1/") {
			t.Errorf("Legacy route %s must not use the versioned prefix", route.Path)
		}
		if route.Path == "/api/hotels" {
			continue
		}
		v1 := route.Method + " " + strings.Replace(route.Path, "/api/", "/api/v1/", 1)
		if !versioned[v1] {
			t.Errorf("Legacy route %s %s has no versioned counterpart", route.Method, route.Path)
		}
	}
}
