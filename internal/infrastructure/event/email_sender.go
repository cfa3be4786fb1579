package event

import (
	"context"

	"go.uber.org/zap"
)

// EmailSender delivers a rendered email to a recipient.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogEmailSender writes outgoing email to the log instead of an SMTP
// relay. Used in development and as the default until a real provider is
// configured.
type LogEmailSender struct {
	logger *zap.Logger
}

// NewLogEmailSender creates a new LogEmailSender
func NewLogEmailSender(logger *zap.Logger) *LogEmailSender {
	return &LogEmailSender{logger: logger.Named("email")}
}

// Send logs the email instead of delivering it
func (s *LogEmailSender) Send(ctx context.Context, to, subject, body string) error {
	s.logger.Info("Outgoing email",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_bytes", len(body)),
	)
	return nil
}

var _ EmailSender = (*LogEmailSender)(nil)
