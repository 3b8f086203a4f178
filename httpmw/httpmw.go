package httpmw

import (
	"errors"
	"net/http"

	"github.com/asyncgate/bulkhead"
)

// Middleware wraps next, admitting each inbound request through b before
// invoking next.ServeHTTP. A request that finds b at capacity short-circuits
// with 503 Service Unavailable without ever reaching next; the factory is
// never invoked for a rejected request, the same guarantee Submit makes.
//
// Pattern: Adapter, in the same sense an outbound *http.Client can be
// wrapped with a resilience policy and a status classifier. Middleware
// wraps an inbound http.Handler with a Bulkhead instead: admission happens
// before the handler runs, not after a response comes back.
func Middleware(b *bulkhead.Bulkhead[http.ResponseWriter], next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := b.Submit(bulkhead.Go(func() (http.ResponseWriter, error) {
			next.ServeHTTP(w, r)

			return w, nil
		}))

		_, err := h.Result()
		if errors.Is(err, bulkhead.ErrRejected) {
			http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		}
	})
}
