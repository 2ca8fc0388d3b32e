package sms

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/restock/pkg/logger"
)

// LogSender logs messages instead of sending them.
type LogSender struct {
	log *slog.Logger
}

// NewLogSender creates a LogSender. A nil logger means slog.Default().
func NewLogSender(log *slog.Logger) *LogSender {
	if log == nil {
		log = slog.Default()
	}
	return &LogSender{log: log.With(logger.Component("sms"))}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "SMS sent",
		logger.Target(msg.To),
		slog.String("body", msg.Body),
	)
	return nil
}
