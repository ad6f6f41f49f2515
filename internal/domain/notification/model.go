package notification

import (
	"context"
	"errors"
)

// ErrNoRecipients is reported when a message has no device tokens.
var ErrNoRecipients = errors.New("no device tokens")

// Message is a push notification addressed to a set of device tokens.
type Message struct {
	Tokens []string
	Title  string
	Body   string
	Data   map[string]string
}

// Result is the outcome of a best-effort push. Err is set when the whole
// call failed; per-token failures only show up in Failed.
type Result struct {
	Sent   int
	Failed int
	Err    error
}

func (r Result) OK() bool {
	return r.Err == nil && r.Failed == 0
}

func Failure(err error) Result {
	return Result{Err: err}
}

// Sender delivers push messages. Implementations never panic on delivery
// problems; they report them in Result.
type Sender interface {
	Send(ctx context.Context, msg Message) Result
}
