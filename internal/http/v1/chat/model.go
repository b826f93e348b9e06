package chat

import (
	"github.com/coudpouss/coudpouss-api/internal/platform/timeutil"
)

// Chat is a conversation as seen by one of its participants.
type Chat struct {
	ID            string         `json:"id"                      doc:"Chat ID"                           example:"user-123_user-456"`
	Participants  []string       `json:"participants"            doc:"Both participant user IDs, sorted"`
	PeerID        string         `json:"peerId"                  doc:"The other participant"             example:"user-456"`
	LastMessage   string         `json:"lastMessage,omitempty"   doc:"Text of the latest message"        example:"See you at 10"`
	LastSenderID  string         `json:"lastSenderId,omitempty"  doc:"Sender of the latest message"      example:"user-456"`
	LastMessageAt *timeutil.Time `json:"lastMessageAt,omitempty" doc:"Time of the latest message"        example:"2024-01-15T10:30:00.000Z"`
	CreatedAt     timeutil.Time  `json:"createdAt"               doc:"Creation timestamp"                example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt     timeutil.Time  `json:"updatedAt"               doc:"Last activity timestamp"           example:"2024-01-15T10:30:00.000Z"`
}

// Message is one chat message.
type Message struct {
	ID        string        `json:"id"        doc:"Message ID"       example:"3mSx9Lq"`
	ChatID    string        `json:"chatId"    doc:"Chat ID"          example:"user-123_user-456"`
	SenderID  string        `json:"senderId"  doc:"Sender user ID"   example:"user-123"`
	Text      string        `json:"text"      doc:"Message text"     example:"Can you come tomorrow at 10?"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Server timestamp" example:"2024-01-15T10:30:00.000Z"`
}

// Stream event payloads. Each type maps to its own SSE event name.
type (
	// MessageAdded is sent as event "added".
	MessageAdded Message
	// MessageModified is sent as event "modified".
	MessageModified Message
	// MessageRemoved is sent as event "removed".
	MessageRemoved Message
	// Ping is sent as event "ping" when the stream opens and periodically
	// afterwards.
	Ping struct {
		Time timeutil.Time `json:"time" doc:"Server time"`
	}
)
