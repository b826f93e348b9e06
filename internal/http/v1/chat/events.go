package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"
	"go.uber.org/zap"

	"github.com/coudpouss/coudpouss-api/internal/platform/auth"
	"github.com/coudpouss/coudpouss-api/internal/platform/logging"
	"github.com/coudpouss/coudpouss-api/internal/platform/timeutil"
	chatsvc "github.com/coudpouss/coudpouss-api/internal/service/chat"
)

// pingInterval keeps idle streams open through proxies.
var pingInterval = 25 * time.Second

func registerEvents(api huma.API, svc chatsvc.Service) {
	sse.Register(api, huma.Operation{
		OperationID: "stream-chat-events",
		Method:      http.MethodGet,
		Path:        "/chats/{chatId}/events",
		Summary:     "Stream chat messages",
		Description: "Server-Sent Events stream of messages added, modified or removed after the stream opens. " +
			"A ping event is sent on connect and periodically afterwards.",
		Tags:        []string{"Chats"},
		Security:    auth.BearerSecurity,
		Middlewares: huma.Middlewares{requireParticipant(api, svc)},
	}, map[string]any{
		"added":    MessageAdded{},
		"modified": MessageModified{},
		"removed":  MessageRemoved{},
		"ping":     Ping{},
	}, func(ctx context.Context, input *EventsInput, send sse.Sender) {
		user := auth.UserFromContext(ctx)
		ctx = logging.WithFields(ctx, zap.String("chatId", input.ChatID))

		events, err := svc.SubscribeMessages(ctx, input.ChatID, user.UID)
		if err != nil {
			logging.LogWarn(ctx, "chat stream rejected", zap.Error(err))
			return
		}
		logging.LogInfo(ctx, "chat stream opened")
		defer logging.LogInfo(ctx, "chat stream closed")

		if send.Data(Ping{Time: timeutil.Now()}) != nil {
			return
		}
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if send.Data(Ping{Time: timeutil.Now()}) != nil {
					return
				}
			case ev, ok := <-events:
				if !ok {
					return
				}
				if send.Data(toStreamEvent(ev)) != nil {
					return
				}
			}
		}
	})
}

// requireParticipant answers 403/404 before the stream starts, while a
// problem response can still be written.
func requireParticipant(api huma.API, svc chatsvc.Service) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		user := auth.UserFromContext(ctx.Context())
		if user == nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}
		if _, err := svc.GetChat(ctx.Context(), ctx.Param("chatId"), user.UID); err != nil {
			se, ok := mapServiceError(err).(huma.StatusError)
			if !ok {
				se = huma.Error500InternalServerError("internal error")
			}
			_ = huma.WriteErr(api, ctx, se.GetStatus(), se.Error())
			return
		}
		next(ctx)
	}
}

func toStreamEvent(ev chatsvc.MessageEvent) any {
	m := toHTTPMessage(&ev.Message)
	switch ev.Kind {
	case chatsvc.EventModified:
		return MessageModified(m)
	case chatsvc.EventRemoved:
		return MessageRemoved(m)
	default:
		return MessageAdded(m)
	}
}
