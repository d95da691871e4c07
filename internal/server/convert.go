package server

import (
	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/types"
)

// convertDBUserToTypesUser converts db.User to types.User, excluding password hash
func convertDBUserToTypesUser(dbUser *db.User, role string) *types.User {
	if dbUser == nil {
		return nil
	}
	return &types.User{
		ID:        dbUser.ID,
		Email:     dbUser.Email,
		Role:      role,
		CreatedAt: dbUser.CreatedAt,
	}
}

func convertDBProfile(p *db.Profile) *types.Profile {
	if p == nil {
		return nil
	}
	return &types.Profile{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Skills:      []string(p.Skills),
		Location:    p.Location,
		Role:        p.Role,
		Verified:    p.Verified,
		AvatarRef:   p.AvatarRef,
	}
}

func convertDBProfiles(rows []db.Profile) []types.Profile {
	profiles := make([]types.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, *convertDBProfile(&rows[i]))
	}
	return profiles
}

func convertDBListing(l *db.Listing) types.Listing {
	return types.Listing{
		ID:             l.ID,
		SellerID:       l.SellerID,
		Title:          l.Title,
		Description:    l.Description,
		Brand:          l.Brand,
		Category:       l.Category,
		ConditionLabel: l.ConditionLabel,
		Year:           l.Year,
		Price:          l.Price,
		ImageRef:       l.ImageRef,
		CreatedAt:      l.CreatedAt,
	}
}
