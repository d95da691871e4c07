// Package types provides type definitions for structured data used throughout the CLICKSY API.
package types

import "github.com/google/uuid"

// Account roles. Every profile has exactly one.
const (
	RolePhotographer = "photographer"
	RoleClient       = "client"
)

// ValidRole reports whether role is a known account role.
func ValidRole(role string) bool {
	return role == RolePhotographer || role == RoleClient
}

// Profile is a photographer or client profile as stored by the profile store.
// Skills and Location are kept exactly as the user entered them.
type Profile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"name"`
	Skills      []string  `json:"skills,omitempty"`
	Location    string    `json:"location,omitempty"`
	Role        string    `json:"role"`
	Verified    bool      `json:"verified"`
	AvatarRef   string    `json:"avatar,omitempty"`
}

// MatchResult is one ranked entry produced by the peer recommender.
type MatchResult struct {
	CandidateID uuid.UUID `json:"id"`
	DisplayName string    `json:"name"`
	Role        string    `json:"role"`
	Location    string    `json:"location"`
	AvatarRef   string    `json:"avatar"`
	Score       int       `json:"score"`
}

// UpdateProfileRequest represents a profile update submitted by the profile owner.
type UpdateProfileRequest struct {
	DisplayName string   `json:"name" validate:"required,min=1,max=120"`
	Skills      []string `json:"skills" validate:"max=50,dive,max=64"`
	Location    string   `json:"location" validate:"max=120"`
	Role        string   `json:"role" validate:"required,oneof=photographer client"`
	AvatarRef   string   `json:"avatar" validate:"omitempty,max=512"`
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}
