// Package notifier delivers OTP codes and password-reset links to a
// user-controlled channel. Delivery is outside the subsystem's trust
// boundary: a send either succeeds or fails atomically and never touches
// credential state.
package notifier

import (
	"context"
)

// Message is a single out-of-band notification.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Notifier sends a message to a user-controlled address.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
