package mailer

import "context"

// Message is a fully composed email, ready for a Transport.
type Message struct {
	ID       string
	From     string
	FromName string
	To       string
	Subject  string
	HTMLBody string
}

// Transport delivers a single message. Implementations must honor ctx
// cancellation and be safe for concurrent use.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}
