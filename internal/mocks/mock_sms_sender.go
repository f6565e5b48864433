package mocks

import (
	"sync"

	"github.com/Soham-Kakkar/tenant-verification-system/domain"
)

// SentSMS is one recorded message
type SentSMS struct {
	To      string
	Message string
}

// MockSMSSender implements domain.SMSSender and records every message
type MockSMSSender struct {
	mu   sync.Mutex
	Sent []SentSMS

	SendSMSFunc func(to, message string) error
}

func NewMockSMSSender() *MockSMSSender {
	return &MockSMSSender{}
}

func (m *MockSMSSender) SendSMS(to, message string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentSMS{To: to, Message: message})
	m.mu.Unlock()
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

var _ domain.SMSSender = (*MockSMSSender)(nil)
