// Package bulkhead provides an in-process async bulkhead: a bounded
// admission gate for concurrently in-flight asynchronous operations.
//
// Submit decides synchronously whether an operation may start. If
// admitted, the returned Handle tracks the operation to its terminal
// outcome and releases its permit exactly once; if rejected, Submit fails
// fast without ever invoking the caller's factory.
package bulkhead
