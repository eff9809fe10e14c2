package handlers

import (
	"net/http"
)

// Health reports liveness plus the size of the loaded price dataset, so a
// probe can tell a healthy process from one serving an empty catalog.
func Health(stationCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		res := map[string]any{
			"status":   "ok",
			"stations": stationCount,
		}
		writeJSON(w, r, http.StatusOK, res)
	}
}
