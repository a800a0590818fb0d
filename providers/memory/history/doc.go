// Package history provides the in-process conversation store used for
// multi-turn chat. It lives for the lifetime of the process only; persisting
// conversations across restarts is deliberately unsupported.
package history
