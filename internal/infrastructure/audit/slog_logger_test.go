package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogAuditLogger(t *testing.T) {
	tests := []struct {
		name      string
		event     *domain.AuditEvent
		wantLevel string
		wantKeys  map[string]any
	}{
		{
			name: "transition",
			event: domain.NewAuditEvent(domain.RequestTransitionEvent, 5).
				WithRequest("abc").
				WithTransition(domain.StatusSubmitted, domain.StatusAssigned).
				WithMetadata("assignee", 9),
			wantLevel: "INFO",
			wantKeys: map[string]any{
				"event_type": "REQUEST_TRANSITION",
				"request_id": "abc",
				"from":       "submitted",
				"to":         "assigned",
				"user_id":    float64(5),
			},
		},
		{
			name: "sms failure",
			event: domain.NewAuditEvent(domain.SMSFailureEvent, 0).
				WithPhone("+15551234567").
				WithError(errors.New("twilio down")),
			wantLevel: "WARN",
			wantKeys: map[string]any{
				"event_type": "SMS_DELIVERY_FAILED",
				"phone":      "+15551234567",
				"error":      "twilio down",
				"success":    false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewSlogAuditLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

			logger.LogEvent(context.Background(), tt.event)

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
			assert.Equal(t, tt.wantLevel, record["level"])
			assert.Equal(t, "audit", record["component"])
			for k, v := range tt.wantKeys {
				assert.Equal(t, v, record[k], k)
			}
		})
	}
}
