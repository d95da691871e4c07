package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clicksy/clicksy-api/internal/types"
)

// ListingCreatedEvent is the payload published on EventListingCreated.
type ListingCreatedEvent struct {
	Type      string `json:"type"`
	ListingID string `json:"listingId"`
	SellerID  string `json:"sellerId"`
	Brand     string `json:"brand"`
	Category  string `json:"category"`
	Price     int    `json:"price"`
}

// NewListingCreatedEvent builds the event payload for l.
func NewListingCreatedEvent(l *types.Listing) ListingCreatedEvent {
	return ListingCreatedEvent{
		Type:      EventListingCreated,
		ListingID: l.ID.String(),
		SellerID:  l.SellerID.String(),
		Brand:     l.Brand,
		Category:  l.Category,
		Price:     l.Price,
	}
}

// PublishListingCreated announces a new listing to subscribers.
func (c *Client) PublishListingCreated(ctx context.Context, l *types.Listing) error {
	if c == nil {
		return nil
	}

	event, err := json.Marshal(NewListingCreatedEvent(l))
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := c.rdb.Publish(ctx, EventListingCreated, event).Err(); err != nil {
		return fmt.Errorf("publish %s failed: %w", EventListingCreated, err)
	}
	return nil
}
