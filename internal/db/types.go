package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents an account row
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set" db:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile represents a profile row. The ID equals the owning user's ID.
type Profile struct {
	ID          uuid.UUID   `json:"id"`
	DisplayName string      `json:"name"`
	Skills      StringArray `json:"skills"` // JSONB array
	Location    string      `json:"location"`
	Role        string      `json:"role"`
	Verified    bool        `json:"verified"`
	AvatarRef   string      `json:"avatar"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ProfileUpdate holds the owner-editable profile fields
type ProfileUpdate struct {
	DisplayName string
	Skills      []string
	Location    string
	Role        string
	AvatarRef   string
}

// Listing represents a marketplace listing row
type Listing struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Brand          string    `json:"brand"`
	Category       string    `json:"category"`
	ConditionLabel string    `json:"condition"`
	Year           int       `json:"year"`
	Price          int       `json:"price"`
	ImageRef       string    `json:"image"`
	CreatedAt      time.Time `json:"created_at"`
}

// ListingFilter holds optional filters for listing marketplace items
type ListingFilter struct {
	Category string
	Brand    string
	SellerID uuid.UUID
	Limit    int
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*a = []string{}
		return nil
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return errors.New("type assertion .([]byte) failed")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
