// Package session orchestrates one logical conversation: it owns a provider
// adapter, a history store, and the AI configuration, and drives the
// template → prompt → provider → history pipeline for both streaming and
// buffered generations. Cross-cutting behavior (logging, retries, timeouts)
// is layered on through the middleware chain in the middleware subpackage.
package session
