package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/clicksy/clicksy-api/internal/db"
	"github.com/clicksy/clicksy-api/internal/logging"
	"github.com/clicksy/clicksy-api/internal/metrics"
	"github.com/clicksy/clicksy-api/internal/ranking"
	"github.com/clicksy/clicksy-api/internal/server/middleware"
	"github.com/clicksy/clicksy-api/internal/types"
)

// Recommendation views.
const (
	ViewCompact = "compact"
	ViewAll     = "all"
)

// RecommendationsResponse is the body of the recommendation endpoints.
type RecommendationsResponse struct {
	RequesterID uuid.UUID           `json:"requester_id"`
	View        string              `json:"view"`
	Matches     []types.MatchResult `json:"matches"`
}

// parseView maps the view query parameter to a result limit.
func parseView(view string) (string, int, error) {
	switch view {
	case "", ViewAll:
		return ViewAll, ranking.TopN, nil
	case ViewCompact:
		return ViewCompact, ranking.CompactN, nil
	default:
		return "", 0, &ErrValidation{Field: "view", Message: "must be compact or all"}
	}
}

// handleProfileRecommendations ranks peers for the profile in the path.
func (s *Server) handleProfileRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid profile ID")
		return
	}
	s.serveRecommendations(w, r, id)
}

// handleMyRecommendations ranks peers for the authenticated user.
func (s *Server) handleMyRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.serveRecommendations(w, r, userID)
}

func (s *Server) serveRecommendations(w http.ResponseWriter, r *http.Request, requesterID uuid.UUID) {
	view, limit, err := parseView(r.URL.Query().Get("view"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	results, err := s.recommendationsFor(r.Context(), requesterID)
	if err != nil {
		var notFound *ErrProfileNotFound
		if errors.As(err, &notFound) {
			errorResponse(w, http.StatusNotFound, err.Error())
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("requester_id", requesterID.String()).Msg("Failed to compute recommendations")
		errorResponse(w, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}

	matches := ranking.Limit(results, limit)
	scores := make([]int, len(matches))
	for i, m := range matches {
		scores[i] = m.Score
	}
	metrics.RecordRecommendations(view, scores)

	jsonResponse(w, http.StatusOK, RecommendationsResponse{
		RequesterID: requesterID,
		View:        view,
		Matches:     matches,
	})
}

// recommendationsFor returns the full top-N list for requesterID, from the
// cache when possible. The requester and the candidate pool load concurrently.
func (s *Server) recommendationsFor(ctx context.Context, requesterID uuid.UUID) ([]types.MatchResult, error) {
	log := logging.Ctx(ctx)

	cached, ok, err := s.cache.GetRecommendations(ctx, requesterID)
	if err != nil {
		log.Warn().Err(err).Msg("Recommendation cache read failed")
	}
	if ok {
		metrics.RecommendCacheHits.Inc()
		return cached, nil
	}
	metrics.RecommendCacheMisses.Inc()

	var (
		requester *db.Profile
		pool      []db.Profile
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.store.GetProfile(gctx, requesterID)
		requester = p
		return err
	})
	g.Go(func() error {
		ps, err := s.store.ListProfilesExcluding(gctx, requesterID, db.DefaultCandidateLimit)
		pool = ps
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if requester == nil {
		return nil, &ErrProfileNotFound{ProfileID: requesterID}
	}

	results, err := ranking.Recommend(convertDBProfile(requester), convertDBProfiles(pool))
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetRecommendations(ctx, requesterID, results); err != nil {
		log.Warn().Err(err).Msg("Recommendation cache write failed")
	}
	return results, nil
}
