package chat

// ChatOutput wraps a single chat.
type ChatOutput struct {
	Body Chat
}

// ChatListData is the response body of GET /chats.
type ChatListData struct {
	Items []Chat `json:"items" doc:"Chats, most recent activity first"`
}

// ChatListOutput is the response wrapper with pagination Link header.
type ChatListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ChatListData
}

// MessageSendOutput for POST /chats/{chatId}/messages (201 Created)
type MessageSendOutput struct {
	Body Message
}

// MessageListData is the response body of GET /chats/{chatId}/messages.
type MessageListData struct {
	Items []Message `json:"items" doc:"Messages, newest first"`
}

// MessageListOutput is the response wrapper with pagination Link header.
type MessageListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body MessageListData
}
