package handler

import (
	"fmt"
	"net/http"

	"github.com/clientbook/clientbook/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "clientbook_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "clientbook_logins_total{status=\"success\"} %d\n", snap.LoginsSucceeded)
	writeMetric(w, "clientbook_logins_total{status=\"failure\"} %d\n", snap.LoginsFailed)
	writeMetric(w, "clientbook_password_resets_total %d\n", snap.PasswordResets)
	writeMetric(w, "clientbook_password_hash_duration_seconds_count %d\n", snap.PasswordHashCount)
	writeMetric(w, "clientbook_password_hash_duration_seconds_sum %.6f\n", float64(snap.PasswordHashTotalNs)/1e9)

	writeMetric(w, "clientbook_profile_cache_hits_total %d\n", snap.ProfileCacheHits)
	writeMetric(w, "clientbook_profile_cache_misses_total %d\n", snap.ProfileCacheMisses)

	writeMetric(w, "clientbook_clients_created_total %d\n", snap.ClientsCreated)
	writeMetric(w, "clientbook_clients_updated_total %d\n", snap.ClientsUpdated)
	writeMetric(w, "clientbook_clients_deleted_total %d\n", snap.ClientsDeleted)

	writeMetric(w, "clientbook_meetings_created_total %d\n", snap.MeetingsCreated)
	writeMetric(w, "clientbook_meetings_updated_total %d\n", snap.MeetingsUpdated)
	writeMetric(w, "clientbook_meetings_deleted_total %d\n", snap.MeetingsDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
