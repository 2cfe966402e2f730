package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/pkg/catalog"
	"github.com/Peterleoo/Livora/pkg/events"
)

var ErrListingNotFound = fmt.Errorf("listing not found")

type ISigningService interface {
	Sign(ctx context.Context, listingId string) (*dto.SignListingResponse, error)
}

type signingService struct {
	pubSub   *gochannel.GoChannel
	listings *catalog.Catalog
}

func NewSigningService(pubSub *gochannel.GoChannel, listings *catalog.Catalog) ISigningService {
	return &signingService{
		pubSub:   pubSub,
		listings: listings,
	}
}

// Sign records a completed contract signing and publishes the signed-state
// event. Consumers rewrite the matching contract cards asynchronously.
func (s *signingService) Sign(_ context.Context, listingId string) (*dto.SignListingResponse, error) {
	listing, ok := s.listings.ById(listingId)
	if !ok {
		return nil, ErrListingNotFound
	}

	ev := events.ListingSigned{
		ListingId: listingId,
		SignedAt:  time.Now(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(events.TopicListingSigned, msg); err != nil {
		return nil, fmt.Errorf("failed to publish signed event: %w", err)
	}

	return &dto.SignListingResponse{
		ListingId:    listingId,
		Confirmation: fmt.Sprintf(constant.SignedConfirmationTemplate, listing.Title),
	}, nil
}
