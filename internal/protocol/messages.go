package protocol // wire format shared by the chat client and the reference server

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ErrMissingReply is returned when a response body is valid JSON but has no reply field
var ErrMissingReply = errors.New("response has no reply field")

// ChatRequest is the body POSTed to the chat endpoint
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the success body returned by the chat endpoint
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ErrorResponse is returned by the reference server on failure
type ErrorResponse struct {
	Error string `json:"error"`
}

// EncodeChatRequest encodes an outbound chat request.
// The message is sent as typed; callers only check it for emptiness.
func EncodeChatRequest(message string) ([]byte, error) {
	data, err := json.Marshal(ChatRequest{Message: message})
	if err != nil {
		return nil, errors.Wrap(err, "encode chat request")
	}
	return data, nil
}

// DecodeChatResponse extracts the reply from a response body.
// An empty string reply is valid; a missing or non-string one is not.
func DecodeChatResponse(data []byte) (string, error) {
	var body struct {
		Reply *string `json:"reply"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return "", errors.Wrap(err, "decode chat response")
	}
	if body.Reply == nil {
		return "", ErrMissingReply
	}
	return *body.Reply, nil
}

// DecodeChatRequest is used by the server side
func DecodeChatRequest(data []byte) (ChatRequest, error) {
	var req ChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ChatRequest{}, errors.Wrap(err, "decode chat request")
	}
	return req, nil
}
