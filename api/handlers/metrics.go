package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ecovigia/wildlife-case-api/api"
	"github.com/ecovigia/wildlife-case-api/config"
)

// MetricsHandler serves the request metrics summary
type MetricsHandler struct{}

// GetMetricsSummary returns overall counters plus per-route timing,
// durations rendered in milliseconds
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	metrics := api.GetMetrics()

	routes := metrics.GetRouteMetrics()
	formatted := make(map[string]map[string]interface{}, len(routes))
	for key, route := range routes {
		formatted[key] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}

	b, err := json.Marshal(map[string]interface{}{
		"summary": metrics.GetSummary(),
		"routes":  formatted,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
