package bulkhead

import (
	"sync"
	"sync/atomic"
)

// ---------------------------------------------------------------------------
// ReadinessStatus — result of checking all registered bulkheads
// ---------------------------------------------------------------------------.

type (
	// NamedStatus pairs a registered bulkhead's name with its health
	// snapshot.
	NamedStatus struct {
		Name string `json:"name"`
		BulkheadStatus
	}

	// ReadinessStatus is the result of checking every bulkhead registered
	// with a Registry.
	ReadinessStatus struct {
		Bulkheads []NamedStatus `json:"bulkheads"`
		Ready     bool          `json:"ready"`
	}

	entry struct {
		name string
		hr   HealthReporter
	}

	// Registry tracks named HealthReporter instances and derives an
	// aggregate ReadinessStatus from them.
	//
	// Pattern: Singleton — DefaultRegistry uses sync.OnceValue for safe
	// lazy init, the same as r8e's DefaultRegistry; explicit registries
	// can be created for testing or multi-tenant scenarios.
	Registry struct {
		entries atomic.Pointer[[]entry]
		limits  map[string]int
		mu      sync.Mutex
	}
)

//nolint:gochecknoglobals // singleton via sync.OnceValue
var defaultRegistry = sync.OnceValue(NewRegistry)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	r := &Registry{}

	var empty []entry

	r.entries.Store(&empty)

	return r
}

// Register adds a named HealthReporter to the registry. It is safe for
// concurrent use but intended for startup-time wiring.
func (r *Registry) Register(name string, hr HealthReporter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := *r.entries.Load()
	// Copy-on-write so concurrent readers iterating the old slice are
	// never disturbed.
	updated := make([]entry, len(old), len(old)+1)
	copy(updated, old)
	updated = append(updated, entry{name: name, hr: hr})
	r.entries.Store(&updated)
}

// CheckReadiness iterates every registered bulkhead and builds a
// ReadinessStatus. Ready is false iff any bulkhead reports
// CriticalityCritical and unhealthy — saturation (CriticalityDegraded)
// never makes the registry unready.
func (r *Registry) CheckReadiness() ReadinessStatus {
	entries := *r.entries.Load()

	status := ReadinessStatus{
		Ready:     true,
		Bulkheads: make([]NamedStatus, 0, len(entries)),
	}

	for _, e := range entries {
		bs := e.hr.HealthStatus()
		status.Bulkheads = append(status.Bulkheads, NamedStatus{Name: e.name, BulkheadStatus: bs})

		if bs.Criticality == CriticalityCritical && !bs.Healthy {
			status.Ready = false
		}
	}

	return status
}

// DefaultRegistry returns the package-level global registry, creating it
// on first call.
//
// Pattern: Singleton — lazy initialization via sync.OnceValue ensures
// exactly one global registry exists and is safe for concurrent access.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}
