// Package anthropic implements the ai.Provider contract for Anthropic's
// Messages API. The wire format differs from the OpenAI-compatible shape in
// two ways handled here: system-role messages travel in a separate top-level
// "system" field, and streaming events are typed SSE frames of which only
// content_block_delta carries text.
package anthropic
