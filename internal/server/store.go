package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/types"
)

// UserStore is the account persistence the auth flow needs.
type UserStore interface {
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, email string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// ProfileStore reads and writes profiles.
type ProfileStore interface {
	CreateProfile(ctx context.Context, p *db.Profile) error
	GetProfile(ctx context.Context, id uuid.UUID) (*db.Profile, error)
	ListProfilesExcluding(ctx context.Context, id uuid.UUID, limit int) ([]db.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, in db.ProfileUpdate) (*db.Profile, error)
}

// ListingStore appends and queries marketplace listings.
type ListingStore interface {
	CreateListing(ctx context.Context, l *db.Listing) error
	ListListings(ctx context.Context, filter db.ListingFilter) ([]db.Listing, error)
}

// Store is everything the API persists. *db.DB satisfies it.
type Store interface {
	UserStore
	ProfileStore
	ListingStore
	Ping(ctx context.Context) error
}

// RecommendationCache caches a requester's full ranked list. *cache.Client satisfies it.
//
// A profile update invalidates only the updated profile's own list. Lists
// cached for other requesters keep ranking that profile by its old skills,
// location and role until their entry expires, so entries must carry a short
// TTL (redis.recommend_ttl, two minutes by default).
type RecommendationCache interface {
	GetRecommendations(ctx context.Context, requesterID uuid.UUID) ([]types.MatchResult, bool, error)
	SetRecommendations(ctx context.Context, requesterID uuid.UUID, results []types.MatchResult) error
	InvalidateRecommendations(ctx context.Context, requesterID uuid.UUID) error
}

// EventPublisher announces marketplace events. *cache.Client satisfies it.
type EventPublisher interface {
	PublishListingCreated(ctx context.Context, l *types.Listing) error
}

// PriceEstimator predicts prices against the shared corpus. *pricing.Estimator satisfies it.
type PriceEstimator interface {
	Estimate(query types.PriceQuery) (*int, error)
	Size() int
}

// noopCache is used when Redis is not configured.
type noopCache struct{}

func (noopCache) GetRecommendations(context.Context, uuid.UUID) ([]types.MatchResult, bool, error) {
	return nil, false, nil
}
func (noopCache) SetRecommendations(context.Context, uuid.UUID, []types.MatchResult) error { return nil }
func (noopCache) InvalidateRecommendations(context.Context, uuid.UUID) error               { return nil }
func (noopCache) PublishListingCreated(context.Context, *types.Listing) error              { return nil }
