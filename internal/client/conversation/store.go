package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one transcript entry. It is never changed after being appended.
type Message struct {
	ID        string
	Role      Role
	Content   string
	CreatedAt time.Time
}

// Store holds the transcript and the transient UI flags for one mounted chat view.
//
// It has a single writer: the bubbletea update loop (or the goroutine of the
// headless send command). It does no I/O and takes no locks.
type Store struct {
	transcript    []Message
	draft         string
	pending       bool
	bannerVisible bool
}

// NewStore creates an empty store with the latency banner showing
func NewStore() *Store {
	return &Store{
		transcript:    []Message{},
		draft:         "",
		pending:       false,
		bannerVisible: true,
	}
}

// AppendMessage adds a message to the end of the transcript.
// Content is not validated; an empty string is a valid message.
func (s *Store) AppendMessage(role Role, content string) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.transcript = append(s.transcript, msg)
	return msg
}

// SetDraft replaces the unsent input text
func (s *Store) SetDraft(text string) {
	s.draft = text
}

// SetPending marks whether a request is in flight
func (s *Store) SetPending(flag bool) {
	s.pending = flag
}

// DismissBanner hides the latency banner for the rest of the session
func (s *Store) DismissBanner() {
	s.bannerVisible = false
}

// Transcript returns a copy of the messages, oldest first
func (s *Store) Transcript() []Message {
	out := make([]Message, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Len returns the number of messages in the transcript
func (s *Store) Len() int {
	return len(s.transcript)
}

// Last returns the most recent message, if any
func (s *Store) Last() (Message, bool) {
	if len(s.transcript) == 0 {
		return Message{}, false
	}
	return s.transcript[len(s.transcript)-1], true
}

func (s *Store) Draft() string {
	return s.draft
}

func (s *Store) Pending() bool {
	return s.pending
}

func (s *Store) BannerVisible() bool {
	return s.bannerVisible
}
