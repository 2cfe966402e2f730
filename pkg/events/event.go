package events

import "time"

// Topic names for the in-process event bus.
const (
	TopicListingSigned = "listing.signed"
)

// ListingSigned is emitted when a listing's contract has been signed. The
// assistant consumes it to rewrite the matching contract cards in live
// conversations and saved sessions.
type ListingSigned struct {
	ListingId string    `json:"listing_id"`
	SignedAt  time.Time `json:"signed_at"`
}
