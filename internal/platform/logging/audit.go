package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes a write against the hosted backend.
type AuditEvent struct {
	Action     string // create, upsert, update, delete, send, ...
	UserID     string // acting user, empty for anonymous flows
	Resource   string // account, profile, chat, message
	ResourceID string
	Result     string // AuditSuccess or AuditFailure
	Details    map[string]any
}

// LogAudit writes a structured audit entry with the request-aware logger.
func LogAudit(ctx context.Context, ev AuditEvent) {
	LoggerFromContext(ctx).Info("audit event",
		zap.String("audit.action", ev.Action),
		zap.String("audit.user_id", ev.UserID),
		zap.String("audit.resource_type", ev.Resource),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
		zap.Any("audit.details", ev.Details),
	)
}

// AuditOutcome logs ev as a success when err is nil and as a failure carrying
// category otherwise. It returns err unchanged.
func AuditOutcome(ctx context.Context, ev AuditEvent, err error, category func(error) string) error {
	if err == nil {
		ev.Result = AuditSuccess
		LogAudit(ctx, ev)
		return nil
	}
	ev.Result = AuditFailure
	if category != nil {
		if ev.Details == nil {
			ev.Details = map[string]any{}
		}
		ev.Details["error"] = category(err)
	}
	LogAudit(ctx, ev)
	return err
}
