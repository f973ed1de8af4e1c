package httpapi

import (
	"net/http"
	"strconv"
)

// handleAdminReload re-reads every dictionary file and reports the outcome
// per language. Existing dictionaries stay served until the swap.
func (r *Router) handleAdminReload(w http.ResponseWriter, req *http.Request) {
	results := r.registry.Load()

	loaded := 0
	for _, res := range results {
		if res.Loaded {
			loaded++
		}
	}
	r.logger.Printf("admin: reloaded dictionaries, %d/%d languages available", loaded, len(results))

	writeJSON(w, http.StatusOK, map[string]any{
		"languages": results,
		"loaded":    loaded,
	})
}

// handleAdminStats returns per-language usage aggregates.
func (r *Router) handleAdminStats(w http.ResponseWriter, req *http.Request) {
	if r.store == nil {
		writeError(w, http.StatusServiceUnavailable, "usage analytics not configured")
		return
	}

	stats, err := r.store.StatsByLanguage(req.Context())
	if err != nil {
		r.logger.Printf("admin: failed to load stats: %v", err)
		captureError(req, err, "stats query failed")
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": stats,
		"count": len(stats),
	})
}

// handleAdminRequests returns the most recent recorded requests.
// Query params: ?limit= (1-500, default 50)
func (r *Router) handleAdminRequests(w http.ResponseWriter, req *http.Request) {
	if r.store == nil {
		writeError(w, http.StatusServiceUnavailable, "usage analytics not configured")
		return
	}

	limit := 50
	if l := req.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		}
	}

	requests, err := r.store.RecentRequests(req.Context(), limit)
	if err != nil {
		r.logger.Printf("admin: failed to list requests: %v", err)
		captureError(req, err, "recent requests query failed")
		writeError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"requests": requests,
		"count":    len(requests),
	})
}
