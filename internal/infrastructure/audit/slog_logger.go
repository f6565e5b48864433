// Package audit writes domain audit events to structured logs.
package audit

import (
	"context"
	"log/slog"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// SlogAuditLogger implements domain.AuditLogger on top of log/slog
type SlogAuditLogger struct {
	logger *slog.Logger
}

// NewSlogAuditLogger returns an audit logger tagged component=audit
func NewSlogAuditLogger(logger *slog.Logger) domain.AuditLogger {
	return &SlogAuditLogger{logger: logger.With("component", "audit")}
}

// LogEvent implements domain.AuditLogger. Failed events are logged at warn.
func (l *SlogAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.EventType)),
		slog.Bool("success", event.Success),
		slog.Time("timestamp", event.Timestamp),
	}
	if event.UserID != 0 {
		attrs = append(attrs, slog.Uint64("user_id", uint64(event.UserID)))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}
	if event.Phone != "" {
		attrs = append(attrs, slog.String("phone", event.Phone))
	}
	if event.From != "" || event.To != "" {
		attrs = append(attrs, slog.String("from", string(event.From)), slog.String("to", string(event.To)))
	}
	if event.ErrorMsg != "" {
		attrs = append(attrs, slog.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		meta := make([]any, 0, len(event.Metadata)*2)
		for k, v := range event.Metadata {
			meta = append(meta, k, v)
		}
		attrs = append(attrs, slog.Group("metadata", meta...))
	}

	level := slog.LevelInfo
	if !event.Success {
		level = slog.LevelWarn
	}
	l.logger.LogAttrs(ctx, level, "audit event", attrs...)
}
