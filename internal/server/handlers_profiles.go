package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/server/middleware"
	"github.com/clicksy/clicksy-api/internal/types"
)

// refreshedTokenHeader carries a replacement bearer token when a profile
// update changes the role the caller's token was issued for.
const refreshedTokenHeader = "X-Refreshed-Token"

// handleGetProfile returns a public profile.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}

	p, err := s.store.GetProfile(r.Context(), id)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("profile_id", id.String()).Msg("Failed to get profile")
		errorResponse(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	if p == nil {
		errorResponse(w, http.StatusNotFound, (&ErrProfileNotFound{ProfileID: id}).Error())
		return
	}

	jsonResponse(w, http.StatusOK, convertDBProfile(p))
}

// handleUpdateMyProfile replaces the editable fields of the caller's profile.
func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}

	p, err := s.store.UpdateProfile(r.Context(), userID, db.ProfileUpdate{
		DisplayName: strings.TrimSpace(req.DisplayName),
		Skills:      skills,
		Location:    strings.TrimSpace(req.Location),
		Role:        req.Role,
		AvatarRef:   req.AvatarRef,
	})
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("profile_id", userID.String()).Msg("Failed to update profile")
		errorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if p == nil {
		errorResponse(w, http.StatusNotFound, (&ErrProfileNotFound{ProfileID: userID}).Error())
		return
	}

	if err := s.cache.InvalidateRecommendations(r.Context(), userID); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to invalidate cached recommendations")
	}

	if p.Role != middleware.GetRole(r) {
		token, err := s.jwtService.GenerateToken(userID, p.Role)
		if err != nil {
			logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to refresh token")
			errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}
		w.Header().Set(refreshedTokenHeader, token)
	}

	jsonResponse(w, http.StatusOK, convertDBProfile(p))
}
