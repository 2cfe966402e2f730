package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/internal/pkg/logger"
	"github.com/Peterleoo/Livora/internal/repository/memory"
	"github.com/Peterleoo/Livora/pkg/catalog"
	"github.com/Peterleoo/Livora/pkg/events"
	"github.com/Peterleoo/Livora/pkg/session"
)

type ISigningConsumerService interface {
	Consume(ctx context.Context) error
}

// signingConsumerService reacts to signed-state events: every contract card
// referencing the signed listing, in live conversations and in saved session
// records, gets its text rewritten to the confirmation.
type signingConsumerService struct {
	pubSub        *gochannel.GoChannel
	conversations *memory.ConversationRepository
	sessions      *session.Store
	listings      *catalog.Catalog
	logger        logger.ILogger
}

func NewSigningConsumerService(
	pubSub *gochannel.GoChannel,
	conversations *memory.ConversationRepository,
	sessions *session.Store,
	listings *catalog.Catalog,
	log logger.ILogger,
) ISigningConsumerService {
	return &signingConsumerService{
		pubSub:        pubSub,
		conversations: conversations,
		sessions:      sessions,
		listings:      listings,
		logger:        log,
	}
}

func (cs *signingConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, events.TopicListingSigned)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *signingConsumerService) processMessage(ctx context.Context, msg *message.Message) {
	var ev events.ListingSigned
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		cs.logger.Error("signing", "Failed to unmarshal signed event", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads are never retriable
		return
	}

	listing, ok := cs.listings.ById(ev.ListingId)
	if !ok {
		cs.logger.Warn("signing", "Signed event for unknown listing", map[string]interface{}{
			"listing_id": ev.ListingId,
		})
		msg.Ack()
		return
	}
	confirmation := fmt.Sprintf(constant.SignedConfirmationTemplate, listing.Title)

	for _, conv := range cs.conversations.All() {
		if conv.MarkListingSigned(ev.ListingId, confirmation) {
			cs.logger.Info("signing", "Rewrote contract card in live conversation", map[string]interface{}{
				"conversation_id": conv.Id,
				"listing_id":      ev.ListingId,
			})
		}
	}

	if err := cs.rewriteSessions(ctx, ev.ListingId, confirmation); err != nil {
		cs.logger.Error("signing", "Failed to rewrite session records", map[string]interface{}{
			"listing_id": ev.ListingId,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *signingConsumerService) rewriteSessions(ctx context.Context, listingId, confirmation string) error {
	records, err := cs.sessions.All(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		changed := false
		for i := range rec.Messages {
			m := &rec.Messages[i]
			if m.Kind == entity.MessageKindSignCard && m.Listing != nil && m.Listing.Id == listingId {
				m.Text = confirmation
				changed = true
			}
		}
		if !changed {
			continue
		}
		if err := cs.sessions.Update(ctx, rec); err != nil {
			return err
		}
	}
	return nil
}
