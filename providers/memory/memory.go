package memory

import "github.com/smartpick/smartpick/providers/ai"

// Store holds an ordered conversation history for multi-turn chat. A Store is
// owned by whoever issues the chat calls (one per logical conversation);
// implementations must be safe for use when exchanges can overlap.
type Store interface {
	// Append adds message to the end of the history, preserving insertion order.
	Append(message ai.Message)

	// All returns a defensive copy of the full history; mutating the returned
	// slice never affects the store.
	All() []ai.Message

	// Len returns the number of stored messages.
	Len() int

	// Clear empties the history.
	Clear()

	// Trim bounds the history to the most recent maxTurns turns (one turn =
	// one user message plus one assistant reply). System messages are never
	// counted toward the limit and are always retained ahead of the retained
	// pairs, in their original relative order. A history of length <= 1 is
	// left untouched.
	Trim(maxTurns int)
}
