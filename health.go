package bulkhead

// ---------------------------------------------------------------------------
// HealthReporter interface
// ---------------------------------------------------------------------------.

type (
	// HealthReporter is implemented by *Bulkhead[T] for any T, letting a
	// Registry track bulkheads with different type parameters side by
	// side. This mirrors r8e's non-generic HealthReporter interface over
	// Policy[T]: the interface itself carries no type parameter even
	// though every implementation does.
	HealthReporter interface {
		// HealthStatus returns the bulkhead's current health snapshot.
		HealthStatus() BulkheadStatus
	}

	// Criticality represents how a bulkhead's state affects readiness.
	Criticality int

	// BulkheadStatus is a point-in-time health snapshot of a Bulkhead.
	BulkheadStatus struct {
		State       string      `json:"state"`
		Stats       Stats       `json:"stats"`
		Criticality Criticality `json:"criticality"`
		Healthy     bool        `json:"healthy"`
	}
)

const (
	// CriticalityNone means the bulkhead has nothing degrading readiness.
	CriticalityNone Criticality = iota
	// CriticalityDegraded means capacity is saturated but that alone is
	// an expected, recoverable condition, not an incident.
	CriticalityDegraded
	// CriticalityCritical means the permit counter's range invariant was
	// violated: a bug, not a load condition.
	CriticalityCritical
)

// String returns the criticality level as a human-readable string.
func (c Criticality) String() string {
	switch c {
	case CriticalityDegraded:
		return "degraded"
	case CriticalityCritical:
		return "critical"
	default:
		return "none"
	}
}

// HealthStatus reports b's current health. Saturation (zero permits
// available) is reported as degraded, not unhealthy: a bulkhead rejecting
// admissions under sustained load is working as designed. Only a detected
// InvariantViolation — a bug in the counter, not a load condition — is
// reported critical and unhealthy.
func (b *Bulkhead[T]) HealthStatus() BulkheadStatus {
	limit := b.Limit()

	available, err := b.permits.snapshot()
	if err != nil {
		return BulkheadStatus{
			Healthy:     false,
			Criticality: CriticalityCritical,
			State:       "invariant_violation",
			Stats:       Stats{Limit: limit},
		}
	}

	st := Stats{
		Limit:     limit,
		Available: int(available),
		InFlight:  limit - int(available),
	}

	status := BulkheadStatus{Healthy: true, State: "healthy", Stats: st}

	if st.Available == 0 {
		status.Criticality = CriticalityDegraded
		status.State = "saturated"
	}

	return status
}
