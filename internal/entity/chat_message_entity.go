package entity

import (
	"fmt"
	"sync"
	"time"
)

// MessageKind discriminates the payload a chat message carries.
type MessageKind string

const (
	MessageKindText         MessageKind = "TEXT"
	MessageKindListingCards MessageKind = "LISTING_CARDS"
	MessageKindSignCard     MessageKind = "SIGN_CARD"
)

// Message sender roles.
const (
	MessageSenderUser      = "user"
	MessageSenderAssistant = "assistant"
)

// Message is one turn element of a conversation. The payload fields are a
// tagged union keyed by Kind: LISTING_CARDS carries Listings, SIGN_CARD
// carries a single Listing, TEXT carries neither. Messages are immutable once
// appended, with one exception: a SIGN_CARD's text is rewritten in place when
// the referenced listing is signed (see Conversation.MarkListingSigned).
type Message struct {
	Id        string      `json:"id"`
	Kind      MessageKind `json:"kind"`
	Sender    string      `json:"sender"`
	Text      string      `json:"text,omitempty"`
	Listing   *Listing    `json:"listing,omitempty"`
	Listings  []Listing   `json:"listings,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

// message IDs must be unique and monotonically orderable even when several
// are minted within the same millisecond.
var (
	msgIdMu   sync.Mutex
	msgIdLast int64
	msgIdSeq  int
)

// NewMessageId mints a unique, monotonically orderable message identifier.
func NewMessageId() string {
	msgIdMu.Lock()
	defer msgIdMu.Unlock()

	now := time.Now().UnixMilli()
	if now <= msgIdLast {
		msgIdSeq++
	} else {
		msgIdLast = now
		msgIdSeq = 0
	}
	return fmt.Sprintf("%013d-%04d", msgIdLast, msgIdSeq)
}

// NewTextMessage creates a plain text message.
func NewTextMessage(sender, text string) Message {
	return Message{
		Id:        NewMessageId(),
		Kind:      MessageKindText,
		Sender:    sender,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// NewListingCardsMessage creates an assistant message carrying recommended
// listing cards.
func NewListingCardsMessage(listings []Listing) Message {
	return Message{
		Id:        NewMessageId(),
		Kind:      MessageKindListingCards,
		Sender:    MessageSenderAssistant,
		Listings:  listings,
		CreatedAt: time.Now(),
	}
}

// NewSignCardMessage creates an assistant message carrying a contract card
// for one listing.
func NewSignCardMessage(text string, listing Listing) Message {
	return Message{
		Id:        NewMessageId(),
		Kind:      MessageKindSignCard,
		Sender:    MessageSenderAssistant,
		Text:      text,
		Listing:   &listing,
		CreatedAt: time.Now(),
	}
}
