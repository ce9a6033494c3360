package postlane

import "context"

// NoopNotifier is a no-operation implementation of NotificationSink.
// Useful when outbound mail is not configured and for testing.
type NoopNotifier struct{}

// NewNoopNotifier creates a new no-operation notification sink
func NewNoopNotifier() NotificationSink {
	return &NoopNotifier{}
}

// Send does nothing and returns nil
func (n *NoopNotifier) Send(ctx context.Context, to, subject, body string) error {
	return nil
}
