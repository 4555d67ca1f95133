package mocks

import (
	"context"
)

// MockOTPThrottle implements domain.OTPThrottle for testing
type MockOTPThrottle struct {
	AllowFunc func(ctx context.Context, mobile string) (bool, int64, error)
	MarkFunc  func(ctx context.Context, mobile string) error
}

// NewMockOTPThrottle creates a new MockOTPThrottle
func NewMockOTPThrottle() *MockOTPThrottle {
	return &MockOTPThrottle{}
}

func (m *MockOTPThrottle) Allow(ctx context.Context, mobile string) (bool, int64, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, mobile)
	}
	return true, 0, nil
}

func (m *MockOTPThrottle) Mark(ctx context.Context, mobile string) error {
	if m.MarkFunc != nil {
		return m.MarkFunc(ctx, mobile)
	}
	return nil
}

// MockResetGrantStore implements domain.ResetGrantStore for testing
type MockResetGrantStore struct {
	GrantFunc   func(ctx context.Context, email string) error
	ConsumeFunc func(ctx context.Context, email string) (bool, error)
	Granted     []string
}

// NewMockResetGrantStore creates a new MockResetGrantStore
func NewMockResetGrantStore() *MockResetGrantStore {
	return &MockResetGrantStore{}
}

func (m *MockResetGrantStore) Grant(ctx context.Context, email string) error {
	if m.GrantFunc != nil {
		return m.GrantFunc(ctx, email)
	}
	m.Granted = append(m.Granted, email)
	return nil
}

func (m *MockResetGrantStore) Consume(ctx context.Context, email string) (bool, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, email)
	}
	return true, nil
}

// MockTxManager implements domain.TxManager for testing. It runs fn with
// the same context, with no transaction underneath.
type MockTxManager struct {
	InTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewMockTxManager creates a new MockTxManager
func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.InTxFunc != nil {
		return m.InTxFunc(ctx, fn)
	}
	return fn(ctx)
}
