package messaging

import (
	"context"

	"github.com/thiagodeassisbm-source/lavamasterapp-sub001/pkg/logging"
)

// NoopSender logs replies instead of delivering them. Used when WhatsApp
// credentials are not configured, typically in development.
type NoopSender struct {
	logger *logging.Logger
}

// NewNoopSender creates a sender that only logs.
func NewNoopSender(logger *logging.Logger) *NoopSender {
	return &NoopSender{logger: logger.Named("noop_messenger")}
}

// SendText logs the reply and reports success.
func (s *NoopSender) SendText(ctx context.Context, to, body string) error {
	s.logger.Info("reply suppressed, messaging not configured", "to", to, "body", body)
	return nil
}
