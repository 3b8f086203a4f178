// Package httpmw provides a server-side net/http middleware adapter for an
// asyncgate bulkhead: admitting inbound requests through a Bulkhead instead
// of wrapping an outbound transport with a resilience policy.
package httpmw
