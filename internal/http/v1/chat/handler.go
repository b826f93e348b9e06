// Package chat serves one-to-one conversations between consumers and
// professionals, including a Server-Sent Events stream of new messages.
package chat

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/pagination"
	"github.com/coudpouss/coudpouss-api/internal/platform/timeutil"
	chatsvc "github.com/coudpouss/coudpouss-api/internal/service/chat"
)

const (
	chatCursorType    = "chat"
	messageCursorType = "message"
)

// Register registers chat endpoints. prefix is the API base path used to
// build pagination links.
func Register(api huma.API, svc chatsvc.Service, prefix string) {
	huma.Register(api, huma.Operation{
		OperationID: "open-chat",
		Method:      http.MethodPost,
		Path:        "/chats",
		Summary:     "Open a chat",
		Description: "Returns the chat with the given user, creating it on first use.",
		Tags:        []string{"Chats"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *ChatOpenInput) (*ChatOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := svc.OpenChat(ctx, user.UID, input.Body.PeerID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ChatOutput{Body: toHTTPChat(c, user.UID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-chats",
		Method:      http.MethodGet,
		Path:        "/chats",
		Summary:     "List chats",
		Description: "Returns the caller's chats, most recent activity first. Follow the Link header for the next page.",
		Tags:        []string{"Chats"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *ChatListInput) (*ChatListOutput, error) {
		user := auth.UserFromContext(ctx)

		afterID, err := pagination.DecodeCursorFor(input.Cursor, chatCursorType)
		if err != nil {
			return nil, mapServiceError(err)
		}
		limit := input.PageSize()
		chats, err := svc.ListChats(ctx, user.UID, limit+1, afterID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		page := pagination.NewPage(chats, limit, chatCursorType,
			func(c chatsvc.Chat) string { return c.ID }, prefix+"/chats", url.Values{})
		items := make([]Chat, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, toHTTPChat(&page.Items[i], user.UID))
		}
		return &ChatListOutput{Link: page.LinkHeader, Body: ChatListData{Items: items}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-chat",
		Method:      http.MethodGet,
		Path:        "/chats/{chatId}",
		Summary:     "Get a chat",
		Tags:        []string{"Chats"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *ChatGetInput) (*ChatOutput, error) {
		user := auth.UserFromContext(ctx)

		c, err := svc.GetChat(ctx, input.ChatID, user.UID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ChatOutput{Body: toHTTPChat(c, user.UID)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "send-message",
		Method:        http.MethodPost,
		Path:          "/chats/{chatId}/messages",
		Summary:       "Send a message",
		Description:   "Stores a message and updates the chat summary. Both timestamps are assigned by the server.",
		Tags:          []string{"Chats"},
		DefaultStatus: http.StatusCreated,
		Security:      auth.BearerSecurity,
	}, func(ctx context.Context, input *MessageSendInput) (*MessageSendOutput, error) {
		user := auth.UserFromContext(ctx)

		m, err := svc.SendMessage(ctx, input.ChatID, user.UID, input.Body.Text)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &MessageSendOutput{Body: toHTTPMessage(m)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/chats/{chatId}/messages",
		Summary:     "List messages",
		Description: "Returns messages newest first. Follow the Link header for older messages.",
		Tags:        []string{"Chats"},
		Security:    auth.BearerSecurity,
	}, func(ctx context.Context, input *MessageListInput) (*MessageListOutput, error) {
		user := auth.UserFromContext(ctx)

		afterID, err := pagination.DecodeCursorFor(input.Cursor, messageCursorType)
		if err != nil {
			return nil, mapServiceError(err)
		}
		limit := input.PageSize()
		msgs, err := svc.ListMessages(ctx, input.ChatID, user.UID, limit+1, afterID)
		if err != nil {
			return nil, mapServiceError(err)
		}

		page := pagination.NewPage(msgs, limit, messageCursorType,
			func(m chatsvc.Message) string { return m.ID },
			prefix+"/chats/"+url.PathEscape(input.ChatID)+"/messages", url.Values{})
		items := make([]Message, 0, len(page.Items))
		for i := range page.Items {
			items = append(items, toHTTPMessage(&page.Items[i]))
		}
		return &MessageListOutput{Link: page.LinkHeader, Body: MessageListData{Items: items}}, nil
	})

	registerEvents(api, svc)
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, pagination.ErrInvalidCursor):
		return huma.Error400BadRequest("invalid cursor format")
	case errors.Is(err, chatsvc.ErrCursorNotFound):
		return huma.Error400BadRequest("cursor references unknown item")
	case errors.Is(err, chatsvc.ErrNotFound):
		return huma.Error404NotFound("chat not found")
	case errors.Is(err, chatsvc.ErrPeerNotFound):
		return huma.Error404NotFound("peer user not found")
	case errors.Is(err, chatsvc.ErrForbidden):
		return huma.Error403Forbidden("not a chat participant")
	case errors.Is(err, chatsvc.ErrSelfChat):
		return huma.Error422UnprocessableEntity("cannot open a chat with yourself", &huma.ErrorDetail{
			Message:  "must differ from the caller",
			Location: "body.peerId",
		})
	case errors.Is(err, chatsvc.ErrEmptyMessage):
		return huma.Error422UnprocessableEntity("message text is empty", &huma.ErrorDetail{
			Message:  "must not be blank",
			Location: "body.text",
		})
	case errors.Is(err, chatsvc.ErrMessageTooLong):
		return huma.Error422UnprocessableEntity("message text is too long", &huma.ErrorDetail{
			Message:  "must be at most 2000 characters",
			Location: "body.text",
		})
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPChat(c *chatsvc.Chat, viewer string) Chat {
	out := Chat{
		ID:            c.ID,
		Participants:  c.Participants,
		LastMessage:   c.LastMessage,
		LastSenderID:  c.LastSenderID,
		LastMessageAt: timeutil.NewTimePtr(c.LastMessageAt),
		CreatedAt:     timeutil.NewTime(c.CreatedAt),
		UpdatedAt:     timeutil.NewTime(c.UpdatedAt),
	}
	for _, p := range c.Participants {
		if p != viewer {
			out.PeerID = p
		}
	}
	return out
}

func toHTTPMessage(m *chatsvc.Message) Message {
	return Message{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		CreatedAt: timeutil.NewTime(m.CreatedAt),
	}
}
