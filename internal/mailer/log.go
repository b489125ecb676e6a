package mailer

import (
	"context"
	"log/slog"
)

// LogTransport writes messages to the log instead of delivering them.
type LogTransport struct {
	Logger *slog.Logger
}

func (t *LogTransport) Send(_ context.Context, msg Message) error {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("verification email logged",
		slog.String("message_id", msg.ID),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)
	return nil
}
