// Package openai implements the ai.Provider contract for OpenAI-compatible
// chat completion APIs. Besides api.openai.com it serves any backend exposing
// the same surface (SiliconFlow, DeepSeek, vLLM, LM Studio, ...), which is
// why the "custom" provider type routes here as well.
package openai
