// Package dispatch turns a submitted draft into one request to the chat
// endpoint and folds the result back into the conversation store.
//
// A submission goes Idle -> Sending -> Idle. Submit performs the first
// transition on the caller's goroutine, Send does the network call and may
// run anywhere, and Settle performs the second transition back on the
// caller's goroutine. Submit refuses while a request is pending, so at most
// one request is ever in flight.
package dispatch

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yourusername/chatbot-tui/internal/client/conversation"
)

// FailureNotice is the bot message appended when the endpoint cannot be reached
const FailureNotice = "⚠️ Error: Unable to reach the chatbot. Please try again."

// Sender delivers one message to the chat endpoint and returns its reply
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

// Dispatcher drives submissions against a single conversation store
type Dispatcher struct {
	store  *conversation.Store
	sender Sender
	logger zerolog.Logger
	closed bool
}

type Option func(*Dispatcher)

func WithLogger(logger zerolog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// New creates a dispatcher that owns store mutations for submissions
func New(store *conversation.Store, sender Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:  store,
		sender: sender,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit checks the draft and, if accepted, echoes it into the transcript
// and marks the store pending. It returns false without touching the store
// when the draft is blank, a request is already pending, or the dispatcher
// is closed.
func (d *Dispatcher) Submit() (Request, bool) {
	if d.closed || d.store.Pending() {
		return Request{}, false
	}

	draft := d.store.Draft()
	if isBlank(draft) {
		return Request{}, false
	}

	// Raw draft goes out; trimming is only for the emptiness check.
	d.store.AppendMessage(conversation.RoleUser, draft)
	d.store.SetPending(true)

	req := Request{ID: uuid.NewString(), Payload: draft}
	d.logger.Debug().
		Str("request_id", req.ID).
		Int("length", len(draft)).
		Msg("Submitting chat message")
	return req, true
}

// Send performs the network call for an accepted request. It reads and
// writes no store state.
func (d *Dispatcher) Send(ctx context.Context, req Request) Outcome {
	reply, err := d.sender.Send(ctx, req.Payload)
	if err != nil {
		return Failed{Request: req, Err: err}
	}
	return Replied{Request: req, Reply: reply}
}

// Settle appends the bot message for an outcome and returns the store to
// idle with an empty draft. Outcomes arriving after Close are dropped.
func (d *Dispatcher) Settle(outcome Outcome) {
	if d.closed {
		d.logger.Debug().
			Str("request_id", outcome.request().ID).
			Msg("Dropping settlement after close")
		return
	}

	switch o := outcome.(type) {
	case Replied:
		d.store.AppendMessage(conversation.RoleBot, o.Reply)
		d.logger.Debug().
			Str("request_id", o.Request.ID).
			Int("length", len(o.Reply)).
			Msg("Chat reply received")
	case Failed:
		d.store.AppendMessage(conversation.RoleBot, FailureNotice)
		d.logger.Warn().
			Err(o.Err).
			Str("request_id", o.Request.ID).
			Msg("Chat request failed")
	}

	d.store.SetPending(false)
	d.store.SetDraft("")
}

// SubmitAndWait runs a whole submission on the calling goroutine.
// It returns the settled outcome, or false when the draft was not accepted.
func (d *Dispatcher) SubmitAndWait(ctx context.Context) (Outcome, bool) {
	req, ok := d.Submit()
	if !ok {
		return nil, false
	}
	outcome := d.Send(ctx, req)
	d.Settle(outcome)
	return outcome, true
}

// Close marks the owning view as gone. Later submissions are rejected and
// late settlements are discarded.
func (d *Dispatcher) Close() {
	d.closed = true
}

// isBlank reports whether draft holds only whitespace. Whitespace follows
// the ECMAScript definition used by browser chat inputs: U+FEFF counts,
// U+0085 does not.
func isBlank(draft string) bool {
	return strings.TrimFunc(draft, func(r rune) bool {
		if r == '\u0085' {
			return false
		}
		return r == '\uFEFF' || unicode.IsSpace(r)
	}) == ""
}

// Store exposes the store the dispatcher writes to
func (d *Dispatcher) Store() *conversation.Store {
	return d.store
}
