package server

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/types"
)

// fakeStore is an in-memory Store.
type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*db.User
	profiles map[uuid.UUID]*db.Profile
	order    []uuid.UUID
	listings []db.Listing
	pingErr  error
	failList error
	clock    time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*db.User),
		profiles: make(map[uuid.UUID]*db.Profile),
		clock:    time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) CheckEmailExists(_ context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CreateUser(_ context.Context, email string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.New()
	now := f.tick()
	f.users[id] = &db.User{ID: id, Email: email, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return errors.New("user not found")
	}
	u.PasswordHash = hash
	u.PasswordSet = true
	return nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	delete(f.profiles, id)
	return nil
}

func (f *fakeStore) CreateProfile(_ context.Context, p *db.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.tick()
	p.CreatedAt, p.UpdatedAt = now, now
	cp := *p
	f.profiles[p.ID] = &cp
	f.order = append(f.order, p.ID)
	return nil
}

// addProfile seeds a profile directly.
func (f *fakeStore) addProfile(name string, skills []string, location string, verified bool) uuid.UUID {
	id := uuid.New()
	_ = f.CreateProfile(context.Background(), &db.Profile{
		ID: id, DisplayName: name, Skills: skills, Location: location, Role: "photographer", Verified: verified,
	})
	return id
}

func (f *fakeStore) GetProfile(_ context.Context, id uuid.UUID) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeStore) ListProfilesExcluding(_ context.Context, id uuid.UUID, limit int) ([]db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList != nil {
		return nil, f.failList
	}
	out := []db.Profile{}
	for _, pid := range f.order {
		p, ok := f.profiles[pid]
		if !ok || pid == id {
			continue
		}
		out = append(out, *p)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, id uuid.UUID, in db.ProfileUpdate) (*db.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	p.DisplayName, p.Skills, p.Location, p.Role, p.AvatarRef = in.DisplayName, in.Skills, in.Location, in.Role, in.AvatarRef
	p.UpdatedAt = f.tick()
	cp := *p
	return &cp, nil
}

func (f *fakeStore) CreateListing(_ context.Context, l *db.Listing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l.ID = uuid.New()
	l.CreatedAt = f.tick()
	f.listings = append(f.listings, *l)
	return nil
}

func (f *fakeStore) ListListings(_ context.Context, filter db.ListingFilter) ([]db.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []db.Listing{}
	for _, l := range f.listings {
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.Brand != "" && !strings.EqualFold(l.Brand, filter.Brand) {
			continue
		}
		if filter.SellerID != uuid.Nil && l.SellerID != filter.SellerID {
			continue
		}
		out = append(out, l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// fakeCache records cache and event traffic.
type fakeCache struct {
	mu          sync.Mutex
	entries     map[uuid.UUID][]types.MatchResult
	invalidated []uuid.UUID
	published   []types.Listing
	publishErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uuid.UUID][]types.MatchResult)}
}

func (c *fakeCache) GetRecommendations(_ context.Context, id uuid.UUID) ([]types.MatchResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[id]
	return r, ok, nil
}

func (c *fakeCache) SetRecommendations(_ context.Context, id uuid.UUID, results []types.MatchResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[id] = results
	return nil
}

func (c *fakeCache) InvalidateRecommendations(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

func (c *fakeCache) PublishListingCreated(_ context.Context, l *types.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published = append(c.published, *l)
	return c.publishErr
}
