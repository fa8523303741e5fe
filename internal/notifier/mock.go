package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MockNotifier records messages instead of sending them. Used in development
// and in tests to observe the codes a flow produced.
type MockNotifier struct {
	mu   sync.Mutex
	sent []Message

	// FailNext makes the next Send return this error, then resets.
	FailNext error
}

// NewMockNotifier creates a new mock notifier
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// Send records the message
func (n *MockNotifier) Send(ctx context.Context, msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.FailNext != nil {
		err := n.FailNext
		n.FailNext = nil
		return err
	}

	n.sent = append(n.sent, msg)
	zap.L().Debug("mock notification", zap.String("recipient", msg.Recipient), zap.String("subject", msg.Subject))
	return nil
}

// Sent returns a copy of all recorded messages
func (n *MockNotifier) Sent() []Message {
	n.mu.Lock()
	defer n.mu.Unlock()

	out := make([]Message, len(n.sent))
	copy(out, n.sent)
	return out
}

// Last returns the most recently recorded message, or false if none
func (n *MockNotifier) Last() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if len(n.sent) == 0 {
		return Message{}, false
	}
	return n.sent[len(n.sent)-1], true
}

// Clear drops all recorded messages
func (n *MockNotifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}
