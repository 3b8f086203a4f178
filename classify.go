package bulkhead

import "context"

// Kind is the tagged terminal outcome reported to a Listener's OnReleased.
type Kind int

const (
	// Success means the supplied Result completed with a nil error.
	Success Kind = iota
	// Failure means the supplied Result completed with a non-cancellation
	// error, or the submission failed after admission: the factory
	// panicked, returned a nil Result, or registering the terminal observer
	// failed.
	Failure
	// Cancelled means the supplied Result completed with context.Canceled,
	// directly or wrapped one level inside a *CompletionError, or the
	// caller's Handle.Cancel released the permit first.
	Cancelled
)

// String returns a lower-case name for k, suitable for logs and JSON.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// classify maps a terminal error to a Kind. A nil error is Success. The
// language's cancellation marker, context.Canceled, is Cancelled whether it
// appears directly or as the Cause of a *CompletionError — exactly one level
// of unwrapping is performed; a CompletionError wrapping another
// CompletionError is not unwrapped further and classifies as Failure.
func classify(err error) Kind {
	switch {
	case err == nil:
		return Success
	case err == context.Canceled: //nolint:errorlint // direct marker, not a wrapped chain
		return Cancelled
	default:
		if ce, ok := err.(*CompletionError); ok && ce.Cause == context.Canceled { //nolint:errorlint
			return Cancelled
		}

		return Failure
	}
}
