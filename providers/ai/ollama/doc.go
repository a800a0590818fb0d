// Package ollama implements the ai.Provider contract for a local Ollama
// server's native chat API. Ollama differs from the hosted backends in three
// ways handled here: no authentication, generation knobs nested under
// "options", and streaming framed as newline-delimited JSON rather than SSE.
package ollama
