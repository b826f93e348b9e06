package chat

import "github.com/coudpouss/coudpouss-api/internal/platform/pagination"

// ChatOpenInput for POST /chats
type ChatOpenInput struct {
	Body struct {
		PeerID string `json:"peerId" minLength:"1" maxLength:"128" doc:"User ID of the other participant" example:"user-456"`
	}
}

// ChatListInput for GET /chats
type ChatListInput struct {
	pagination.Params
}

// ChatGetInput for GET /chats/{chatId}
type ChatGetInput struct {
	ChatID string `path:"chatId" doc:"Chat ID" example:"user-123_user-456"`
}

// MessageSendInput for POST /chats/{chatId}/messages
type MessageSendInput struct {
	ChatID string `path:"chatId" doc:"Chat ID" example:"user-123_user-456"`
	Body   struct {
		Text string `json:"text" maxLength:"2000" doc:"Message text" example:"Can you come tomorrow at 10?"`
	}
}

// MessageListInput for GET /chats/{chatId}/messages
type MessageListInput struct {
	ChatID string `path:"chatId" doc:"Chat ID" example:"user-123_user-456"`
	pagination.Params
}

// EventsInput for GET /chats/{chatId}/events
type EventsInput struct {
	ChatID string `path:"chatId" doc:"Chat ID" example:"user-123_user-456"`
}
