package mocks

import (
	"context"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// MockNotificationDispatcher implements domain.NotificationDispatcher for
// testing. It records enqueued notifications.
type MockNotificationDispatcher struct {
	EnqueueFunc func(ctx context.Context, n domain.Notification) error
	Enqueued    []domain.Notification
}

// NewMockNotificationDispatcher creates a new MockNotificationDispatcher
func NewMockNotificationDispatcher() *MockNotificationDispatcher {
	return &MockNotificationDispatcher{}
}

func (m *MockNotificationDispatcher) Enqueue(ctx context.Context, n domain.Notification) error {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, n)
	}
	m.Enqueued = append(m.Enqueued, n)
	return nil
}

// MockNotificationSender implements domain.NotificationSender for testing
type MockNotificationSender struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error
	SMS           []string
	Emails        []string
}

// NewMockNotificationSender creates a new MockNotificationSender
func NewMockNotificationSender() *MockNotificationSender {
	return &MockNotificationSender{}
}

func (m *MockNotificationSender) SendSMS(to, message string) error {
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	m.SMS = append(m.SMS, to+": "+message)
	return nil
}

func (m *MockNotificationSender) SendEmail(to, subject, body string) error {
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	m.Emails = append(m.Emails, to+": "+subject)
	return nil
}
