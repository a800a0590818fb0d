// Package middleware provides ready-made session middlewares: structured
// logging, retry with exponential backoff, and per-call timeouts. The
// provider adapters never retry; whether and how to retry is the caller's
// policy, which is why retry lives here.
package middleware
