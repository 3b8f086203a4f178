package bulkhead

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// ReadinessHandler returns an [http.Handler] that reports the readiness of
// every bulkhead registered with reg. It responds with 200 OK when no
// registered bulkhead is CriticalityCritical, and 503 Service Unavailable
// otherwise. The response body is always a JSON-encoded [ReadinessStatus].
func ReadinessHandler(reg *Registry) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		status := reg.CheckReadiness()

		writer.Header().Set("Content-Type", "application/json")

		if status.Ready {
			writer.WriteHeader(http.StatusOK)
		} else {
			writer.WriteHeader(http.StatusServiceUnavailable)
		}

		//nolint:errcheck // best-effort JSON encoding to HTTP response
		_ = json.NewEncoder(writer).Encode(status)
	})
}

// StatsHandler returns an [http.Handler] that serves a single bulkhead's
// current [Stats] as JSON, always with a 200 OK status — unlike
// ReadinessHandler, this endpoint reports raw numbers rather than a
// pass/fail verdict, for dashboards and ad-hoc inspection.
func StatsHandler[T any](b *Bulkhead[T]) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusOK)

		//nolint:errcheck // best-effort JSON encoding to HTTP response
		_ = json.NewEncoder(writer).Encode(snapshot(b))
	})
}
