package bulkhead

// Listener holds optional callback functions for bulkhead lifecycle events.
// All fields are nil by default; callers set only the ones they care about.
// Once constructed, a Listener value must not be mutated — emit methods
// read the function fields without synchronisation, which is safe as long
// as the struct is read-only after initialisation.
//
// Pattern: Observer — decouples admission-event emission from consumers
// (logging, metrics, alerting) without the state machine knowing about
// observers. Unlike r8e's Hooks, a Listener's callbacks must never affect
// semantics: every emit recovers from a panicking callback so it cannot
// corrupt permit accounting or a Handle's terminal state.
type Listener struct {
	// OnAdmitted is called at most once per admitted submission, after
	// acquisition and before the factory is invoked.
	OnAdmitted func()
	// OnRejected is called once per rejected submission.
	OnRejected func()
	// OnReleased is called at most once per admitted submission, iff
	// release succeeded without an invariant violation. err is non-nil
	// iff kind == Failure.
	OnReleased func(kind Kind, err error)
}

func (l *Listener) emitAdmitted() {
	if l == nil || l.OnAdmitted == nil {
		return
	}

	defer recoverListenerPanic()

	l.OnAdmitted()
}

func (l *Listener) emitRejected() {
	if l == nil || l.OnRejected == nil {
		return
	}

	defer recoverListenerPanic()

	l.OnRejected()
}

func (l *Listener) emitReleased(kind Kind, err error) {
	if l == nil || l.OnReleased == nil {
		return
	}

	defer recoverListenerPanic()

	l.OnReleased(kind, err)
}

// recoverListenerPanic swallows a panic raised by a Listener callback.
// Listeners are external, fallible collaborators; their failures must
// never alter permit accounting, a Handle's terminal state, or any other
// callback.
func recoverListenerPanic() {
	//nolint:errcheck // deliberately discarding the recovered value
	recover()
}
