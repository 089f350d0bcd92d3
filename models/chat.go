package models

import "time"

// ChatMessage represents a message in the game chat.
type ChatMessage struct {
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// Chat is an append-only message log keyed by its id.
type Chat struct {
	ID       string        `json:"id"`
	Messages []ChatMessage `json:"messages"`
}

// Clone returns a detached copy of the chat. Nil in, nil out.
func (c *Chat) Clone() *Chat {
	if c == nil {
		return nil
	}
	out := *c
	out.Messages = append([]ChatMessage(nil), c.Messages...)
	return &out
}
