package history

import (
	"sync"

	"github.com/smartpick/smartpick/providers/ai"
	"github.com/smartpick/smartpick/providers/memory"
)

// Conversation is a concurrency-safe in-memory message store. An RWMutex
// guards access so two overlapping exchanges cannot interleave their appends
// in an order-undefined way.
type Conversation struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// New returns a new, empty [Conversation] ready for immediate use.
func New() *Conversation {
	return &Conversation{
		messages: []ai.Message{},
	}
}

// Ensure Conversation implements memory.Store at compile time.
var _ memory.Store = (*Conversation)(nil)

// Append stores message at the end of the history.
func (c *Conversation) Append(message ai.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, message)
	c.mu.Unlock()
}

// All returns a copy of all messages to avoid external mutation of internal
// state. The returned slice is always non-nil.
func (c *Conversation) All() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]ai.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of stored messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	n := len(c.messages)
	c.mu.RUnlock()
	return n
}

// Clear removes all messages while retaining the underlying slice capacity,
// so subsequent appends do not immediately reallocate.
func (c *Conversation) Clear() {
	c.mu.Lock()
	c.messages = c.messages[:0]
	c.mu.Unlock()
}

// Trim keeps all system messages plus the last maxTurns user/assistant pairs.
// Messages are partitioned by role; when the non-system count exceeds
// 2*maxTurns only the most recent 2*maxTurns survive, reassembled as
// [systems in original order] + [retained tail in original order]. A history
// of length <= 1 is a no-op, guarding against trimming a history that is
// just a system prompt. Negative maxTurns is clamped to zero.
func (c *Conversation) Trim(maxTurns int) {
	if maxTurns < 0 {
		maxTurns = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.messages) <= 1 {
		return
	}

	var systemMessages []ai.Message
	var otherMessages []ai.Message
	for _, message := range c.messages {
		if message.Role == ai.RoleSystem {
			systemMessages = append(systemMessages, message)
		} else {
			otherMessages = append(otherMessages, message)
		}
	}

	maxMessages := maxTurns * 2
	if len(otherMessages) <= maxMessages {
		return
	}

	trimmed := make([]ai.Message, 0, len(systemMessages)+maxMessages)
	trimmed = append(trimmed, systemMessages...)
	trimmed = append(trimmed, otherMessages[len(otherMessages)-maxMessages:]...)
	c.messages = trimmed
}
