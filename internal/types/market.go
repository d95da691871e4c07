package types

import (
	"time"

	"github.com/google/uuid"
)

// Supported marketplace categories.
const (
	CategoryCameraBody = "Camera Body"
	CategoryLens       = "Lens"
	CategoryDrone      = "Drone"
	CategoryLighting   = "Lighting"
	CategoryAudio      = "Audio"
	CategoryStabilizer = "Stabilizer"
	CategoryAccessory  = "Accessory"
)

// Condition labels, best to worst.
const (
	ConditionNewOpenBox = "New (Open Box)"
	ConditionLikeNew    = "Like New"
	ConditionExcellent  = "Excellent"
	ConditionGood       = "Good"
	ConditionFair       = "Fair"
	ConditionForParts   = "For Parts"
)

// Categories lists every marketplace category in display order.
var Categories = []string{
	CategoryCameraBody,
	CategoryLens,
	CategoryDrone,
	CategoryLighting,
	CategoryAudio,
	CategoryStabilizer,
	CategoryAccessory,
}

// Conditions lists every condition label from best to worst.
var Conditions = []string{
	ConditionNewOpenBox,
	ConditionLikeNew,
	ConditionExcellent,
	ConditionGood,
	ConditionFair,
	ConditionForParts,
}

// MarketListing is a single historical sale in the estimator corpus.
type MarketListing struct {
	ProductName    string `json:"product_name"`
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	ConditionLabel string `json:"condition"`
	Year           int    `json:"year"`
	Price          int    `json:"price"`
}

// PriceQuery describes the item a seller is pricing.
type PriceQuery struct {
	Brand          string `json:"brand"`
	Category       string `json:"category"`
	ConditionLabel string `json:"condition"`
	Year           int    `json:"year"`
}

// EstimatePriceRequest is the form payload sent while a seller fills in the listing form.
// Year is optional: without it no estimate is produced.
type EstimatePriceRequest struct {
	Brand          string `json:"brand" validate:"required"`
	Category       string `json:"category" validate:"required"`
	ConditionLabel string `json:"condition" validate:"required"`
	Year           *int   `json:"year,omitempty" validate:"omitempty,min=1990,max=2100"`
}

// Validate validates the EstimatePriceRequest using the validator.
func (r *EstimatePriceRequest) Validate() error {
	return validate.Struct(r)
}

// Query converts the request into a PriceQuery. ok is false when the year is missing.
func (r *EstimatePriceRequest) Query() (q PriceQuery, ok bool) {
	if r.Year == nil {
		return PriceQuery{}, false
	}
	return PriceQuery{
		Brand:          r.Brand,
		Category:       r.Category,
		ConditionLabel: r.ConditionLabel,
		Year:           *r.Year,
	}, true
}

// EstimatePriceResponse carries the suggested price hint. A nil SuggestedPrice hides the hint.
type EstimatePriceResponse struct {
	SuggestedPrice *int `json:"suggested_price"`
}

// MarketOptions lists the selector values the listing form offers.
type MarketOptions struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
	Conditions []string `json:"conditions"`
	Years      []int    `json:"years"`
}

// Listing is an item a user put up for sale.
type Listing struct {
	ID             uuid.UUID `json:"id"`
	SellerID       uuid.UUID `json:"seller_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Brand          string    `json:"brand"`
	Category       string    `json:"category"`
	ConditionLabel string    `json:"condition"`
	Year           int       `json:"year"`
	Price          int       `json:"price"`
	ImageRef       string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateListingRequest represents a new marketplace listing.
type CreateListingRequest struct {
	Title          string `json:"title" validate:"required,min=3,max=200"`
	Description    string `json:"description" validate:"max=4000"`
	Brand          string `json:"brand" validate:"required"`
	Category       string `json:"category" validate:"required,oneof='Camera Body' Lens Drone Lighting Audio Stabilizer Accessory"`
	ConditionLabel string `json:"condition" validate:"required,oneof='New (Open Box)' 'Like New' Excellent Good Fair 'For Parts'"`
	Year           int    `json:"year" validate:"required,min=1990,max=2100"`
	Price          int    `json:"price" validate:"required,min=1"`
	ImageRef       string `json:"image" validate:"omitempty,max=512"`
}

// Validate validates the CreateListingRequest using the validator.
func (r *CreateListingRequest) Validate() error {
	return validate.Struct(r)
}
