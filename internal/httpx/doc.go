// Package httpx contains the shared HTTP plumbing used by the provider
// adapters: buffered JSON GET/POST helpers, a streaming POST that leaves the
// body open for incremental reading, and line-oriented scanners for the two
// stream framings in use (SSE "data:" lines and newline-delimited JSON).
package httpx
