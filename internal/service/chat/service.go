// Package chat implements one-to-one conversations between CoudPouss users
// on Firestore, including realtime message streams.
package chat

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	ErrNotFound       = errors.New("chat not found")
	ErrPeerNotFound   = errors.New("peer user not found")
	ErrSelfChat       = errors.New("cannot open a chat with yourself")
	ErrForbidden      = errors.New("not a chat participant")
	ErrEmptyMessage   = errors.New("message text is empty")
	ErrMessageTooLong = errors.New("message text is too long")
	ErrCursorNotFound = errors.New("cursor does not match a known item")
)

// MaxMessageRunes bounds the length of a single message.
const MaxMessageRunes = 2000

// Chat is a conversation between exactly two users.
type Chat struct {
	ID            string
	Participants  []string
	LastMessage   string
	LastSenderID  string
	LastMessageAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasParticipant reports whether uid takes part in the chat.
func (c *Chat) HasParticipant(uid string) bool {
	return slices.Contains(c.Participants, uid)
}

// Message is one entry of chats/{chatID}/messages.
type Message struct {
	ID        string
	ChatID    string
	SenderID  string
	Text      string
	CreatedAt time.Time
}

// EventKind tags a change in a message stream.
type EventKind string

const (
	EventAdded    EventKind = "added"
	EventModified EventKind = "modified"
	EventRemoved  EventKind = "removed"
)

// MessageEvent is one change delivered by SubscribeMessages.
type MessageEvent struct {
	Kind    EventKind
	Message Message
}

// Service defines chat operations. Listings are newest first; afterID is the
// ID of the last item of the previous page, empty for the first page.
type Service interface {
	OpenChat(ctx context.Context, uid, peerUID string) (*Chat, error)
	// GetChat returns the chat if uid takes part in it.
	GetChat(ctx context.Context, chatID, uid string) (*Chat, error)
	ListChats(ctx context.Context, uid string, limit int, afterID string) ([]Chat, error)
	SendMessage(ctx context.Context, chatID, senderUID, text string) (*Message, error)
	ListMessages(ctx context.Context, chatID, uid string, limit int, afterID string) ([]Message, error)
	// SubscribeMessages streams changes made after the call. The channel is
	// closed when ctx ends or the underlying listener fails.
	SubscribeMessages(ctx context.Context, chatID, uid string) (<-chan MessageEvent, error)
}

// ChatID returns the deterministic ID of the chat between two users, so
// opening the same pair twice yields the same document.
func ChatID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "_" + b
}

func participants(a, b string) []string {
	if b < a {
		a, b = b, a
	}
	return []string{a, b}
}

func checkPeer(uid, peerUID string) error {
	if strings.TrimSpace(peerUID) == "" {
		return ErrPeerNotFound
	}
	if uid == peerUID {
		return ErrSelfChat
	}
	return nil
}

// messageText trims text and enforces the length limits.
func messageText(text string) (string, error) {
	text = strings.TrimSpace(text)
	switch {
	case text == "":
		return "", ErrEmptyMessage
	case utf8.RuneCountInString(text) > MaxMessageRunes:
		return "", ErrMessageTooLong
	}
	return text, nil
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrPeerNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrMessageTooLong), errors.Is(err, ErrSelfChat):
		return "invalid_input"
	default:
		return "internal_error"
	}
}
