package bulkhead

import "sync/atomic"

// permitCounter is a non-blocking, wait-free bounded counter: an atomic
// non-negative integer bounded above by limit. tryAcquire and release never
// block and never loop more than contention requires.
//
// Pattern: Semaphore via atomic CAS — the same approach as r8e's
// Bulkhead.current, extended with post-condition checks that turn an
// accounting bug into an explicit InvariantViolation instead of silent
// drift.
type permitCounter struct {
	limit     int64
	available atomic.Int64
}

func newPermitCounter(limit int64) *permitCounter {
	c := &permitCounter{limit: limit}
	c.available.Store(limit)

	return c
}

// tryAcquire atomically decrements available if it is greater than zero,
// and reports whether the decrement happened.
func (c *permitCounter) tryAcquire() bool {
	for {
		cur := c.available.Load()
		if cur <= 0 {
			return false
		}

		if c.available.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// release atomically increments available, then validates the range
// invariant. A violation indicates a bug — double release, a release with
// no matching acquire, or external tampering — and is returned rather than
// silently absorbed.
func (c *permitCounter) release() error {
	v := c.available.Add(1)
	if v < 0 || v > c.limit {
		return &InvariantViolation{Available: v, Limit: c.limit}
	}

	return nil
}

// snapshot returns a best-effort read of available, validating the range
// invariant on the way out.
func (c *permitCounter) snapshot() (int64, error) {
	v := c.available.Load()
	if v < 0 || v > c.limit {
		return v, &InvariantViolation{Available: v, Limit: c.limit}
	}

	return v, nil
}
