package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs sends but does not deliver. Used when no provider key is configured.
type NoopSender struct {
	now func() time.Time
}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{now: time.Now}
}

// Send logs the email but does not deliver it.
// POST: Returns a noop result without actual delivery
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	now := s.now()
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", now.UnixNano()),
		SentAt:    now,
	}, nil
}
