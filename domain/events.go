package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Intake events
	RequestRegisteredEvent AuditEventType = "REQUEST_REGISTERED"
	OTPIssuedEvent         AuditEventType = "OTP_ISSUED"
	OTPVerifiedEvent       AuditEventType = "OTP_VERIFIED"
	OTPFailureEvent        AuditEventType = "OTP_VERIFICATION_FAILED"
	SMSFailureEvent        AuditEventType = "SMS_DELIVERY_FAILED"

	// Lifecycle events
	RequestTransitionEvent AuditEventType = "REQUEST_TRANSITION"
	NotificationFailure    AuditEventType = "NOTIFICATION_FAILED"

	// Authentication events
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"
	UserCreatedEvent      AuditEventType = "USER_CREATED"
	UserDeletedEvent      AuditEventType = "USER_DELETED"
	PasswordChangedEvent  AuditEventType = "PASSWORD_CHANGED"

	// Authorization events
	AccessDeniedEvent  AuditEventType = "ACCESS_DENIED"
	PolicyAddedEvent   AuditEventType = "POLICY_ADDED"
	PolicyRemovedEvent AuditEventType = "POLICY_REMOVED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	UserID    uint                   `json:"user_id,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	From      Status                 `json:"from,omitempty"`
	To        Status                 `json:"to,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithRequest sets the verification request id
func (e *AuditEvent) WithRequest(id string) *AuditEvent {
	e.RequestID = id
	return e
}

// WithTransition sets the status edge
func (e *AuditEvent) WithTransition(from, to Status) *AuditEvent {
	e.From = from
	e.To = to
	return e
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
