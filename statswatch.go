package bulkhead

import (
	"context"
	"time"
)

// Stats is a point-in-time snapshot of a Bulkhead's capacity accounting.
type Stats struct {
	Limit     int `json:"limit"`
	Available int `json:"available"`
	InFlight  int `json:"in_flight"`
}

// snapshot reads b's current Limit/Available/InFlight into a Stats value.
func snapshot[T any](b *Bulkhead[T]) Stats {
	limit := b.Limit()
	available := b.Available()

	return Stats{
		Limit:     limit,
		Available: available,
		InFlight:  limit - available,
	}
}

// WatchStats polls b's introspection methods every interval, on a clock the
// caller supplies, and invokes fn with each Stats snapshot until ctx is
// done. It spawns no goroutine the Bulkhead itself owns or is aware of —
// the caller starts WatchStats (typically in its own goroutine) and owns
// its lifetime via ctx, the same way the bulkhead leaves all cancellation
// and timeout policy to the caller.
func WatchStats[T any](ctx context.Context, b *Bulkhead[T], interval time.Duration, clock Clock, fn func(Stats)) {
	timer := clock.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C():
			fn(snapshot(b))
			timer.Reset(interval)
		}
	}
}
