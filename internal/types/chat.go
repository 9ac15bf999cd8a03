package types

import "time"

// Role identifies the author of a chat message.
type Role string

// Chat roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry of the conversation log.
type ChatMessage struct {
	ID                 string    `json:"id"`
	Role               Role      `json:"role"`
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	HighlightedCourses []string  `json:"highlighted_courses,omitempty"`
}

// HistoryEntry is the trimmed form of a message sent to the chat provider.
type HistoryEntry struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of a chat provider call.
type ChatRequest struct {
	Message string         `json:"message" validate:"required"`
	History []HistoryEntry `json:"history,omitempty"`
}

// ChatResponse wraps the single assistant reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// ToHistory converts messages to provider history entries.
func ToHistory(msgs []ChatMessage) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, HistoryEntry{Role: string(m.Role), Content: m.Content})
	}
	return out
}
