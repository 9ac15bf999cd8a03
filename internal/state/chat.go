package state

import "github.com/jonathan/course-compass/internal/types"

// ChatState backs the assistant panel. The message log is append-only.
type ChatState struct {
	Messages []types.ChatMessage
	Open     bool
	Typing   bool
}

// InitialChatState is an empty, closed conversation.
func InitialChatState() ChatState {
	return ChatState{}
}

// Recent returns the last n messages (all of them when fewer exist).
func (s ChatState) Recent(n int) []types.ChatMessage {
	if n <= 0 {
		return nil
	}
	if len(s.Messages) <= n {
		return append([]types.ChatMessage(nil), s.Messages...)
	}
	return append([]types.ChatMessage(nil), s.Messages[len(s.Messages)-n:]...)
}

// AddMessage appends msg. Earlier entries are never modified.
func AddMessage(msg types.ChatMessage) func(ChatState) ChatState {
	return func(s ChatState) ChatState {
		next := make([]types.ChatMessage, len(s.Messages), len(s.Messages)+1)
		copy(next, s.Messages)
		s.Messages = append(next, msg)
		return s
	}
}

// ToggleChat opens or closes the panel.
func ToggleChat(s ChatState) ChatState {
	s.Open = !s.Open
	return s
}

// SetTyping shows or hides the typing indicator.
func SetTyping(typing bool) func(ChatState) ChatState {
	return func(s ChatState) ChatState {
		s.Typing = typing
		return s
	}
}

// ClearMessages empties the log.
func ClearMessages(s ChatState) ChatState {
	s.Messages = nil
	return s
}
