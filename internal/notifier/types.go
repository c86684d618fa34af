package notifier

import (
	"context"
	"time"
)

// Message is the bot's view of one channel message. Only AuthorID and
// position are semantically inspected; Content is kept for logging.
type Message struct {
	ID        string
	AuthorID  string
	Content   string
	CreatedAt time.Time
}

// MentionPolicy selects which mentions are actually delivered, regardless
// of tokens present in the message text.
type MentionPolicy int

const (
	// MentionNone suppresses all pings.
	MentionNone MentionPolicy = iota
	// MentionRole pings the configured role.
	MentionRole
)

// Gateway is the minimal channel capability the reconciler needs. The
// Discord adapter implements it bound to the target channel; tests use an
// in-memory fake. ListRecent must return messages newest-first.
type Gateway interface {
	ListRecent(ctx context.Context, limit int) ([]Message, error)
	Send(ctx context.Context, body string, policy MentionPolicy) (Message, error)
	Edit(ctx context.Context, messageID, body string) error
	Delete(ctx context.Context, messageID string) error
}

// Trigger is the reason a reconciliation fires.
type Trigger int

const (
	TriggerRefresh Trigger = iota
	TriggerNotify
	TriggerEnd
)

func (t Trigger) String() string {
	switch t {
	case TriggerRefresh:
		return "refresh"
	case TriggerNotify:
		return "notify"
	case TriggerEnd:
		return "end"
	default:
		return "unknown"
	}
}

// State is the channel shape derived from the observed messages.
type State int

const (
	// StateUninitialized: anything other than 1 or 2 recent bot-authored
	// messages. Treated as a clean slate to reinitialize.
	StateUninitialized State = iota
	// StateNonNotified: exactly one bot-authored message (the info message).
	StateNonNotified
	// StateNotified: exactly two bot-authored messages, [notify, info]
	// newest-first.
	StateNotified
)

func (s State) String() string {
	switch s {
	case StateNonNotified:
		return "non-notified"
	case StateNotified:
		return "notified"
	default:
		return "uninitialized"
	}
}
