package push

import (
	"context"

	"github.com/riskibarqy/findrival/internal/domain/notification"
	"github.com/riskibarqy/findrival/internal/platform/logging"
)

// LogSender stands in for FCM when Firebase is not configured.
type LogSender struct {
	logger *logging.Logger
}

func NewLogSender(logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg notification.Message) notification.Result {
	tokens := compactTokens(msg.Tokens)
	if len(tokens) == 0 {
		return notification.Failure(notification.ErrNoRecipients)
	}

	s.logger.InfoContext(ctx, "push notification not delivered: messaging disabled",
		"title", msg.Title,
		"recipients", len(tokens),
		"data", msg.Data,
	)
	return notification.Result{Sent: len(tokens)}
}
