// Package ai defines the provider-agnostic chat contract shared by every
// backend adapter: the message and response data model, the per-call
// configuration, the Provider interface, and the error taxonomy surfaced to
// callers. Concrete adapters live in the subpackages openai, anthropic, and
// ollama.
package ai
