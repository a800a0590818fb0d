package anthropic

import (
	"strings"

	"github.com/smartpick/smartpick/providers/ai"
)

// convertMessages splits a generic message list into the Messages API shape:
// every system-role message is hoisted out and newline-joined into the
// top-level system string, and the remaining user/assistant messages keep
// their original relative order.
func convertMessages(messages []ai.Message) (string, []wireMessage) {
	var systemParts []string
	wireMessages := make([]wireMessage, 0, len(messages))

	for _, message := range messages {
		if message.Role == ai.RoleSystem {
			systemParts = append(systemParts, message.Content)
			continue
		}
		wireMessages = append(wireMessages, wireMessage{
			Role:    string(message.Role),
			Content: message.Content,
		})
	}

	return strings.Join(systemParts, "\n"), wireMessages
}
