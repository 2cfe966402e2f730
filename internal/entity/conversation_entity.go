package entity

import (
	"sync"

	"github.com/google/uuid"
)

// Conversation is the live, in-memory message sequence for one active chat
// surface. It owns the recommendation memory (the most recently shown
// candidate set) and the epoch counter used to discard completions that
// arrive after a reset.
//
// One turn is processed end-to-end at a time: BeginTurn rejects a second
// submission while the first is still in flight.
type Conversation struct {
	mu sync.Mutex

	Id        string
	SessionId string // empty until first persisted
	messages  []Message
	memory    []Listing
	epoch     uint64
	inFlight  bool
}

// NewConversation creates an empty conversation with no session identifier.
func NewConversation() *Conversation {
	return &Conversation{Id: uuid.NewString()}
}

// RestoreConversation rehydrates a conversation from a persisted session
// record. Recommendation memory is rederived from the most recent
// LISTING_CARDS message.
func RestoreConversation(sessionId string, messages []Message) *Conversation {
	c := &Conversation{
		Id:        uuid.NewString(),
		SessionId: sessionId,
		messages:  append([]Message(nil), messages...),
	}
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Kind == MessageKindListingCards && len(c.messages[i].Listings) > 0 {
			c.memory = append([]Listing(nil), c.messages[i].Listings...)
			break
		}
	}
	return c
}

// BeginTurn marks the conversation busy and returns the current epoch.
// It reports false when another turn is already in flight.
func (c *Conversation) BeginTurn() (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return 0, false
	}
	c.inFlight = true
	return c.epoch, true
}

// EndTurn releases the in-flight guard.
func (c *Conversation) EndTurn() {
	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()
}

// Append adds messages to the conversation, but only if the conversation has
// not been reset since the given epoch was observed. It reports whether the
// messages were applied.
func (c *Conversation) Append(epoch uint64, msgs ...Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		return false
	}
	c.messages = append(c.messages, msgs...)
	return true
}

// Messages returns a snapshot of the full message sequence.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.messages...)
}

// Memory returns a snapshot of the recommendation memory.
func (c *Conversation) Memory() []Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Listing(nil), c.memory...)
}

// RememberCandidates replaces the recommendation memory. Empty candidate sets
// are ignored so the memory never shrinks outside of Reset.
func (c *Conversation) RememberCandidates(candidates []Listing) {
	if len(candidates) == 0 {
		return
	}
	c.mu.Lock()
	c.memory = append([]Listing(nil), candidates...)
	c.mu.Unlock()
}

// SetSessionId records the persisted session identifier after the first save.
func (c *Conversation) SetSessionId(id string) {
	c.mu.Lock()
	c.SessionId = id
	c.mu.Unlock()
}

// CurrentSessionId returns the persisted session identifier, if any.
func (c *Conversation) CurrentSessionId() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.SessionId
}

// Reset clears messages and memory and bumps the epoch so in-flight
// completions for the previous contents are discarded.
func (c *Conversation) Reset() {
	c.mu.Lock()
	c.messages = nil
	c.memory = nil
	c.SessionId = ""
	c.epoch++
	c.mu.Unlock()
}

// MarkListingSigned rewrites the text of every SIGN_CARD referencing the
// given listing id, matched by payload identity rather than position. It
// reports whether any message was rewritten.
func (c *Conversation) MarkListingSigned(listingId, confirmationText string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := false
	for i := range c.messages {
		m := &c.messages[i]
		if m.Kind == MessageKindSignCard && m.Listing != nil && m.Listing.Id == listingId {
			m.Text = confirmationText
			changed = true
		}
	}
	return changed
}
