// Package email defines the interface for report delivery and provides an
// SMTP-backed implementation.
package email

import "context"

// Message is a single-part plain-text email.
type Message struct {
	To      string
	Cc      string // may be empty
	Subject string
	Body    string
}

// Recipients returns the envelope recipients: To, then Cc when set.
func (m Message) Recipients() []string {
	rcpts := []string{m.To}
	if m.Cc != "" {
		rcpts = append(rcpts, m.Cc)
	}
	return rcpts
}

// Sender is the interface the worker uses to send reports.
// Tests inject a stub that records calls without hitting the network.
type Sender interface {
	// Send delivers m. A non-nil error means the message was not accepted
	// by the relay. There is no retry.
	Send(ctx context.Context, m Message) error
}
