package connection

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/yourusername/chatbot-tui/internal/protocol"
)

// maxResponseSize bounds how much of a reply body is read
const maxResponseSize = 1 << 20

// Client sends chat messages to the remote chat endpoint over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	sessionID  string
	logger     zerolog.Logger
}

type ClientOption func(*Client) error

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client is nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithTimeout bounds each request. Zero leaves the transport default in place.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) error {
		if d < 0 {
			return errors.Errorf("negative timeout %s", d)
		}
		c.httpClient.Timeout = d
		return nil
	}
}

func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithSessionID tags every request with an X-Session-ID header
func WithSessionID(id string) ClientOption {
	return func(c *Client) error {
		c.sessionID = id
		return nil
	}
}

// NewClient creates a client for the given endpoint URL
func NewClient(endpoint string, options ...ClientOption) (*Client, error) {
	if endpoint == "" {
		return nil, errors.New("chat endpoint is empty")
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		if err := opt(c); err != nil {
			return nil, errors.Wrap(err, "apply client option")
		}
	}

	return c, nil
}

// Endpoint returns the URL messages are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts one message and returns the reply text.
// Every failure is returned as a *CommunicationError.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := protocol.EncodeChatRequest(message)
	if err != nil {
		return "", &CommunicationError{Op: "encode", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &CommunicationError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.sessionID != "" {
		req.Header.Set("X-Session-ID", c.sessionID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &CommunicationError{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &CommunicationError{Op: "read body", StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Chat endpoint responded")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &CommunicationError{
			Op:         "post",
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	reply, err := protocol.DecodeChatResponse(data)
	if err != nil {
		return "", &CommunicationError{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}

	return reply, nil
}
