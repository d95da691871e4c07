package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/metrics"
	"github.com/clicksy/clicksy-api/internal/pricing"
	"github.com/clicksy/clicksy-api/internal/server/middleware"
	"github.com/clicksy/clicksy-api/internal/types"
)

// handleEstimatePrice returns the suggested-price hint for the listing form.
// Without a year the estimator is not invoked and the hint is null.
func (s *Server) handleEstimatePrice(w http.ResponseWriter, r *http.Request) {
	var req types.EstimatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	query, ok := req.Query()
	if !ok {
		metrics.RecordEstimate("suppressed")
		jsonResponse(w, http.StatusOK, types.EstimatePriceResponse{})
		return
	}

	price, err := s.estimator.Estimate(query)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Price estimate failed")
		errorResponse(w, http.StatusInternalServerError, "Failed to estimate price")
		return
	}
	if price == nil {
		metrics.RecordEstimate("insufficient_data")
	} else {
		metrics.RecordEstimate("estimated")
	}

	jsonResponse(w, http.StatusOK, types.EstimatePriceResponse{SuggestedPrice: price})
}

// handleMarketOptions lists the selector values of the listing form.
func (s *Server) handleMarketOptions(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, types.MarketOptions{
		Brands:     pricing.Brands(pricing.DefaultTemplates),
		Categories: types.Categories,
		Conditions: types.Conditions,
		Years:      pricing.Years(),
	})
}

// handleListListings lists marketplace items with optional category, brand and seller filters.
func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := db.ListingFilter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}
	if seller := q.Get("seller_id"); seller != "" {
		id, err := uuid.Parse(seller)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, "Invalid seller_id")
			return
		}
		filter.SellerID = id
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > 200 {
			errorResponse(w, http.StatusBadRequest, "limit must be between 1 and 200")
			return
		}
		filter.Limit = n
	}

	rows, err := s.store.ListListings(r.Context(), filter)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to list listings")
		errorResponse(w, http.StatusInternalServerError, "Failed to list listings")
		return
	}

	listings := make([]types.Listing, 0, len(rows))
	for i := range rows {
		listings = append(listings, convertDBListing(&rows[i]))
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"listings": listings,
		"count":    len(listings),
	})
}

// handleCreateListing stores a listing for the authenticated seller and
// announces it on the event channel.
func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	sellerID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.CreateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	row := &db.Listing{
		SellerID:       sellerID,
		Title:          req.Title,
		Description:    req.Description,
		Brand:          req.Brand,
		Category:       req.Category,
		ConditionLabel: req.ConditionLabel,
		Year:           req.Year,
		Price:          req.Price,
		ImageRef:       req.ImageRef,
	}
	if err := s.store.CreateListing(r.Context(), row); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to create listing")
		errorResponse(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	listing := convertDBListing(row)
	result := "ok"
	if err := s.events.PublishListingCreated(r.Context(), &listing); err != nil {
		result = "error"
		logging.Ctx(r.Context()).Warn().Err(err).Str("listing_id", listing.ID.String()).Msg("Failed to publish listing event")
	}
	metrics.EventsPublished.WithLabelValues("listing_created", result).Inc()

	jsonResponse(w, http.StatusCreated, listing)
}
