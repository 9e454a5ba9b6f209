package engine

import (
	"context"
	"sync"

	"github.com/catetin/catetin/internal/model"
)

// MockNotifier records notifications for tests.
type MockNotifier struct {
	failWith      error
	Notifications []model.Notification
	mu            sync.Mutex
}

// Notify records the notification, returning the configured error if any.
func (m *MockNotifier) Notify(_ context.Context, _ int64, note model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.Notifications = append(m.Notifications, note)
	return nil
}

// FailWith makes every subsequent Notify return err.
func (m *MockNotifier) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failWith = err
}

// Last returns the most recent notification, or nil.
func (m *MockNotifier) Last() *model.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return nil
	}
	return &m.Notifications[len(m.Notifications)-1]
}
