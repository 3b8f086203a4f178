package bulkhead

import "sync/atomic"

// Bulkhead bounds the number of concurrently in-flight asynchronous
// operations. Submit decides, synchronously, whether an operation may
// start; everything else — the permit-lifecycle state machine guaranteeing
// exactly-once release across completion, cancellation, and
// registration-failure races — lives in admissionRecord and Handle.
//
// Pattern: Bulkhead — the same admission gate as r8e's Bulkhead, extended
// from a synchronous Acquire/Release pair into a full async permit
// lifecycle: the returned Handle, not the caller, is responsible for
// driving release to completion.
type Bulkhead[T any] struct {
	permits  *permitCounter
	listener *Listener
}

// New creates a Bulkhead that admits at most limit concurrently in-flight
// operations. A nil listener is equivalent to a &Listener{} that ignores
// every event. A non-positive limit is a programmer error: New panics with
// a *CallerError rather than returning one, since validating a
// construction-time argument is not part of the admission decision this
// package otherwise keeps on the hot path.
func New[T any](limit int, listener *Listener) *Bulkhead[T] {
	if limit <= 0 {
		panic(&CallerError{Msg: "limit must be positive"})
	}

	if listener == nil {
		listener = &Listener{}
	}

	return &Bulkhead[T]{
		permits:  newPermitCounter(int64(limit)),
		listener: listener,
	}
}

// Submit attempts to admit factory. If the bulkhead is at capacity, the
// returned Handle is already CompletedFailure with ErrRejected and factory
// is never invoked. Otherwise factory is invoked exactly once and the
// returned Handle tracks its Result to a terminal state, releasing the
// permit exactly once no matter which of completion, cancellation, or
// registration failure gets there first.
//
// factory must not be nil — a nil factory is a programmer error and
// Submit panics with a *CallerError without touching permit accounting.
//
//nolint:ireturn // generic type parameter T, not an interface
func (b *Bulkhead[T]) Submit(factory Supplier[T]) *Handle[T] {
	if factory == nil {
		panic(&CallerError{Msg: "factory must not be nil"})
	}

	var zero T

	if !b.permits.tryAcquire() {
		b.listener.emitRejected()

		return newSettledHandle[T](CompletedFailure, zero, ErrRejected)
	}

	b.listener.emitAdmitted()

	result, err := safeInvoke(factory)
	if err != nil {
		return b.failAfterAcquire(err)
	}

	if result == nil {
		return b.failAfterAcquire(ErrNullResult)
	}

	return b.attach(result)
}

// failAfterAcquire releases the just-acquired permit and settles a handle
// as CompletedFailure with cause — the path used when the factory panics
// or returns a nil Result.
//
//nolint:ireturn // generic type parameter T, not an interface
func (b *Bulkhead[T]) failAfterAcquire(cause error) *Handle[T] {
	var zero T

	if relErr := b.permits.release(); relErr != nil {
		return newSettledHandle[T](CompletedFailure, zero, relErr)
	}

	b.listener.emitReleased(Failure, cause)

	return newSettledHandle[T](CompletedFailure, zero, cause)
}

// attach constructs the admission record and Handle for a successfully
// produced Result, and registers the terminal observer that drives the
// release state machine.
//
//nolint:ireturn // generic type parameter T, not an interface
func (b *Bulkhead[T]) attach(result Result[T]) *Handle[T] {
	rec := &admissionRecord[T]{}
	h := newHandle[T]()
	h.cancelFn = func() bool { return b.cancel(rec, h) }

	regErr := safeObserve(result, func(val T, err error) {
		b.onTerminal(rec, h, val, err)
	})
	if regErr != nil {
		return b.failRegistration(rec, h, regErr)
	}

	return h
}

// onTerminal is the terminal observer attached to the supplied Result. It
// is the first of the two paths — this one, or cancel — to win the
// released-flag CAS that performs the single release and single listener
// dispatch for this submission.
func (b *Bulkhead[T]) onTerminal(rec *admissionRecord[T], h *Handle[T], val T, err error) {
	if !rec.released.CompareAndSwap(false, true) {
		return
	}

	var zero T

	if relErr := b.permits.release(); relErr != nil {
		h.settle(CompletedFailure, zero, relErr)

		return
	}

	kind := classify(err)

	var listenerErr error
	if kind == Failure {
		listenerErr = err
	}

	b.listener.emitReleased(kind, listenerErr)

	if err == nil {
		h.settle(CompletedSuccess, val, nil)

		return
	}

	h.settle(CompletedFailure, zero, err)
}

// cancel is the Handle.Cancel path: the second of the two paths that can
// win the released-flag CAS. Whichever of cancel and onTerminal wins is
// responsible for exactly one release and one listener dispatch; the loser
// does neither. Win or lose, cancel still tries to settle the handle to
// StateCancelled — it is a no-op if the handle is already terminal —
// matching the tie-break rule that the handle's observable state reflects
// whichever path completed it first.
func (b *Bulkhead[T]) cancel(rec *admissionRecord[T], h *Handle[T]) bool {
	won := rec.released.CompareAndSwap(false, true)

	var zero T

	if won {
		if relErr := b.permits.release(); relErr != nil {
			h.settle(CompletedFailure, zero, relErr)

			return false
		}

		b.listener.emitReleased(Cancelled, nil)
	}

	h.settle(StateCancelled, zero, nil)

	return won
}

// failRegistration handles the case where safeObserve itself failed: the
// bulkhead must still release exactly once, unconditionally, because no
// terminal observer is now attached to drive release via onTerminal.
//
//nolint:ireturn // generic type parameter T, not an interface
func (b *Bulkhead[T]) failRegistration(rec *admissionRecord[T], h *Handle[T], regErr error) *Handle[T] {
	rec.released.Store(true)

	var zero T

	if relErr := b.permits.release(); relErr != nil {
		h.settle(CompletedFailure, zero, relErr)

		return h
	}

	b.listener.emitReleased(Failure, regErr)
	h.settle(CompletedFailure, zero, regErr)

	return h
}

// admissionRecord is created atomically with permit acquisition and
// mutated exactly once, via CAS, by whichever of onTerminal or cancel runs
// first for this submission.
type admissionRecord[T any] struct {
	released atomic.Bool
}

// Limit returns the bulkhead's configured capacity.
func (b *Bulkhead[T]) Limit() int {
	return int(b.permits.limit)
}

// Available returns a best-effort snapshot of free capacity. It panics
// with an *InvariantViolation if the permit counter's range invariant has
// been violated — a bug, never a normal outcome.
func (b *Bulkhead[T]) Available() int {
	v, err := b.permits.snapshot()
	if err != nil {
		panic(err)
	}

	return int(v)
}

// InFlight returns Limit() - Available(). It panics under the same
// condition as Available.
func (b *Bulkhead[T]) InFlight() int {
	return b.Limit() - b.Available()
}
