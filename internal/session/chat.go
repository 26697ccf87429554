package session

import (
	"strings"
	"time"
)

// ChatLog is an append-only message sequence. Insertion order is display
// order.
type ChatLog struct {
	messages []ChatMessage
	lastID   int64
}

func NewChatLog() *ChatLog {
	return &ChatLog{}
}

// Append trims text and appends a message from sender. Blank text appends
// nothing and is not an error.
func (l *ChatLog) Append(sender Participant, text string, now time.Time) (ChatMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ChatMessage{}, false
	}
	msg := ChatMessage{
		ID:             l.nextID(now),
		SenderID:       sender.ID,
		SenderName:     sender.Name,
		Text:           text,
		SentAt:         now,
		FromInstructor: sender.Role.CanControlSession(),
	}
	l.messages = append(l.messages, msg)
	return msg, true
}

// nextID derives ids from the wall clock in milliseconds, bumping past the
// previous id so that ids stay unique when the clock repeats or steps back.
func (l *ChatLog) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

func (l *ChatLog) Len() int {
	return len(l.messages)
}

func (l *ChatLog) Messages() []ChatMessage {
	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// ScrollAnchor is the id of the newest message, or zero when the log is
// empty. Views scroll to it after every append.
func (l *ChatLog) ScrollAnchor() int64 {
	if len(l.messages) == 0 {
		return 0
	}
	return l.messages[len(l.messages)-1].ID
}
