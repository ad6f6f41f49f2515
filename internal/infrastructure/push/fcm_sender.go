package push

import (
	"context"
	"strings"

	"firebase.google.com/go/v4/errorutils"
	"firebase.google.com/go/v4/messaging"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/findrival/internal/domain/notification"
	"github.com/riskibarqy/findrival/internal/platform/logging"
	"github.com/riskibarqy/findrival/internal/platform/resilience"
)

// maxMulticastTokens is the FCM limit for one multicast request.
const maxMulticastTokens = 500

// MulticastClient is the part of *messaging.Client the sender needs.
type MulticastClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type FCMSender struct {
	client  MulticastClient
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewFCMSender(client MulticastClient, breakerCfg resilience.CircuitBreakerConfig, logger *logging.Logger) *FCMSender {
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.NewCircuitBreaker(breakerCfg).WithFailureClassifier(isTransientFCMError)
	return &FCMSender{client: client, breaker: breaker, logger: logger}
}

// Send delivers msg in batches. A batch error stops delivery and is reported
// together with whatever earlier batches achieved.
func (s *FCMSender) Send(ctx context.Context, msg notification.Message) notification.Result {
	tokens := compactTokens(msg.Tokens)
	if len(tokens) == 0 {
		return notification.Failure(notification.ErrNoRecipients)
	}

	var result notification.Result
	for start := 0; start < len(tokens); start += maxMulticastTokens {
		end := min(start+maxMulticastTokens, len(tokens))
		batch := tokens[start:end]

		var resp *messaging.BatchResponse
		err := s.breaker.Do(func() error {
			var sendErr error
			resp, sendErr = s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
				Tokens: batch,
				Notification: &messaging.Notification{
					Title: msg.Title,
					Body:  msg.Body,
				},
				Data: msg.Data,
			})
			return sendErr
		})
		if err != nil {
			result.Failed += len(tokens) - start
			result.Err = crerr.Wrap(err, "fcm send multicast")
			return result
		}

		result.Sent += resp.SuccessCount
		result.Failed += resp.FailureCount
		if resp.FailureCount > 0 {
			s.logFailedTokens(ctx, batch, resp)
		}
	}

	return result
}

func (s *FCMSender) logFailedTokens(ctx context.Context, batch []string, resp *messaging.BatchResponse) {
	for i, item := range resp.Responses {
		if item == nil || item.Success || i >= len(batch) {
			continue
		}
		s.logger.DebugContext(ctx, "fcm token delivery failed",
			"token_suffix", tokenSuffix(batch[i]),
			"unregistered", messaging.IsUnregistered(item.Error),
			"error", item.Error,
		)
	}
}

// isTransientFCMError keeps caller mistakes from opening the breaker.
func isTransientFCMError(err error) bool {
	if err == nil {
		return false
	}
	return !errorutils.IsInvalidArgument(err) && !errorutils.IsNotFound(err) && !errorutils.IsPermissionDenied(err)
}

func compactTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	seen := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

func tokenSuffix(token string) string {
	if len(token) <= 6 {
		return token
	}
	return token[len(token)-6:]
}
