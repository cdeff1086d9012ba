package mocks

import (
	"context"
	"sync"

	"github.com/pelletion/battlereq/internal/model"
	"github.com/pelletion/battlereq/internal/notify"
)

// Notification kinds recorded by MockNotifier
const (
	NotifyAdminNew  = "admin_new_request"
	NotifyConfirmed = "request_confirmed"
	NotifyRejected  = "request_rejected"
)

// NotifierCall records a single send attempt
type NotifierCall struct {
	Kind      string
	RequestID model.RequestID
	Email     string
}

// MockNotifier is a mock implementation of Notifier for testing.
// It is safe for concurrent use since notifications are dispatched
// from detached goroutines.
type MockNotifier struct {
	mu    sync.Mutex
	calls []NotifierCall

	// Err, when set, is returned from every send
	Err error
}

// Ensure MockNotifier implements Notifier
var _ notify.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a new MockNotifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

func (n *MockNotifier) AdminNewRequest(_ context.Context, req *model.BattleRequest) error {
	return n.record(NotifyAdminNew, req)
}

func (n *MockNotifier) RequestConfirmed(_ context.Context, req *model.BattleRequest) error {
	return n.record(NotifyConfirmed, req)
}

func (n *MockNotifier) RequestRejected(_ context.Context, req *model.BattleRequest) error {
	return n.record(NotifyRejected, req)
}

func (n *MockNotifier) record(kind string, req *model.BattleRequest) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, NotifierCall{
		Kind:      kind,
		RequestID: req.ID,
		Email:     req.Email,
	})
	return n.Err
}

// Calls returns a copy of all recorded send attempts
func (n *MockNotifier) Calls() []NotifierCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	calls := make([]NotifierCall, len(n.calls))
	copy(calls, n.calls)
	return calls
}

// CallCount returns the number of recorded send attempts
func (n *MockNotifier) CallCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

// Reset clears all recorded calls
func (n *MockNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = nil
	n.Err = nil
}
