package bulkhead

import "fmt"

// ---------------------------------------------------------------------------
// Error classification
// ---------------------------------------------------------------------------.

type (
	// bulkheadError is the concrete type backing all sentinel errors.
	bulkheadError string

	// CallerError signals a programmer error at the bulkhead's API
	// boundary: a non-positive limit passed to New, or a nil factory
	// passed to Submit. It never consumes a permit. Unlike the other
	// error kinds in this package, a CallerError is never returned
	// through a Handle — it is raised synchronously, as a panic, at the
	// call site that misused the API.
	CallerError struct {
		Msg string
	}

	// InvariantViolation indicates the permit counter observed a value
	// outside [0, limit]. This is always a bug — in the bulkhead itself,
	// in a misbehaving Listener, or in caller code that bypassed Submit
	// to mutate accounting directly — and is surfaced rather than masked.
	InvariantViolation struct {
		Available int64
		Limit     int64
	}

	// CompletionError wraps an error observed while completing a
	// supplied Result, mirroring the one-level "completion wrapper"
	// indirection described by the classifier: a CompletionError whose
	// Cause is the cancellation marker classifies as Cancelled, the same
	// as the marker itself.
	CompletionError struct {
		Cause error
	}
)

// Sentinel bulkhead errors.
var (
	// ErrRejected is returned when Submit is called while the bulkhead
	// has no available capacity. It is a normal control signal, not a
	// failure of the operation: the factory was never invoked.
	ErrRejected error = bulkheadError("bulkhead: rejected, no capacity available")
	// ErrNullResult is returned when a Supplier returns a nil Result.
	// The permit is released exactly once before this error reaches the
	// caller.
	ErrNullResult error = bulkheadError("bulkhead: factory returned a nil result")
)

func (e bulkheadError) Error() string { return string(e) }

func (e *CallerError) Error() string { return "bulkhead: caller error: " + e.Msg }

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf(
		"bulkhead: invariant violation: available=%d outside [0, %d]",
		e.Available, e.Limit,
	)
}

func (e *CompletionError) Error() string { return "bulkhead: completion error: " + e.Cause.Error() }
func (e *CompletionError) Unwrap() error { return e.Cause }

// panicError turns a recovered panic value into an error, preserving the
// original error identity if the panic value already was one.
func panicError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return &CompletionError{Cause: err}
	}

	return &CompletionError{Cause: fmt.Errorf("bulkhead: panic: %v", recovered)}
}
