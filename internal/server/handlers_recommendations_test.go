package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clicksy/clicksy-api/internal/types"
)

func seedPool(ts *testServer) (requester uuid.UUID, ids map[string]uuid.UUID) {
	requester = ts.store.addProfile("me", []string{"Wedding", "Portrait"}, "Kochi", false)
	ids = map[string]uuid.UUID{
		"low":  ts.store.addProfile("low", []string{"drone"}, "Pune", false),
		"high": ts.store.addProfile("high", []string{"wedding", "portrait"}, " kochi ", false),
		"mid":  ts.store.addProfile("mid", []string{"wedding", "event"}, "Kochi", true),
	}
	for i := 0; i < 5; i++ {
		ids[fmt.Sprintf("filler%d", i)] = ts.store.addProfile(fmt.Sprintf("filler%d", i), []string{"wedding"}, "Pune", false)
	}
	return requester, ids
}

func TestRecommendations_All(t *testing.T) {
	ts := newTestServer(t, nil)
	requester, ids := seedPool(ts)

	rr := ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations", nil, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	resp := decode[RecommendationsResponse](t, rr)
	assert.Equal(t, requester, resp.RequesterID)
	assert.Equal(t, ViewAll, resp.View)
	require.Len(t, resp.Matches, 6)

	assert.Equal(t, ids["high"], resp.Matches[0].CandidateID)
	assert.Equal(t, 100, resp.Matches[0].Score)
	assert.Equal(t, ids["mid"], resp.Matches[1].CandidateID)
	assert.Equal(t, 58, resp.Matches[1].Score)
	for i, m := range resp.Matches {
		assert.NotEqual(t, requester, m.CandidateID)
		if i > 0 {
			assert.LessOrEqual(t, m.Score, resp.Matches[i-1].Score)
		}
	}
}

func TestRecommendations_Compact(t *testing.T) {
	ts := newTestServer(t, nil)
	requester, _ := seedPool(ts)

	rr := ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations?view=compact", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[RecommendationsResponse](t, rr)
	assert.Equal(t, ViewCompact, resp.View)
	assert.Len(t, resp.Matches, 3)

	// The full list is cached regardless of view
	assert.Len(t, ts.cache.entries[requester], 6)
}

func TestRecommendations_ServedFromCache(t *testing.T) {
	ts := newTestServer(t, nil)
	requester := ts.store.addProfile("me", []string{"wedding"}, "Kochi", false)
	cached := []types.MatchResult{{CandidateID: uuid.New(), DisplayName: "cached", Score: 77}}
	ts.cache.entries[requester] = cached

	rr := ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[RecommendationsResponse](t, rr)
	assert.Equal(t, cached, resp.Matches)
}

func TestRecommendations_EmptyPool(t *testing.T) {
	ts := newTestServer(t, nil)
	requester := ts.store.addProfile("alone", []string{"wedding"}, "Kochi", false)

	rr := ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"requester_id":%q,"view":"all","matches":[]}`, requester), rr.Body.String())
}

func TestRecommendations_Errors(t *testing.T) {
	ts := newTestServer(t, nil)
	requester := ts.store.addProfile("me", nil, "", false)

	assert.Equal(t, http.StatusNotFound,
		ts.do(t, http.MethodGet, "/profiles/"+uuid.NewString()+"/recommendations", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest,
		ts.do(t, http.MethodGet, "/profiles/xyz/recommendations", nil, "").Code)
	assert.Equal(t, http.StatusBadRequest,
		ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations?view=grid", nil, "").Code)

	ts.store.failList = errors.New("db down")
	assert.Equal(t, http.StatusInternalServerError,
		ts.do(t, http.MethodGet, "/profiles/"+requester.String()+"/recommendations", nil, "").Code)
}

func TestMyRecommendations(t *testing.T) {
	ts := newTestServer(t, nil)
	requester, _ := seedPool(ts)

	assert.Equal(t, http.StatusUnauthorized, ts.do(t, http.MethodGet, "/me/recommendations", nil, "").Code)

	rr := ts.do(t, http.MethodGet, "/me/recommendations?view=compact", nil, ts.tokenFor(t, requester))
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[RecommendationsResponse](t, rr)
	assert.Equal(t, requester, resp.RequesterID)
	assert.Len(t, resp.Matches, 3)
}

func TestParseView(t *testing.T) {
	view, n, err := parseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewAll, view)
	assert.Equal(t, 6, n)

	view, n, err = parseView("compact")
	require.NoError(t, err)
	assert.Equal(t, ViewCompact, view)
	assert.Equal(t, 3, n)

	_, _, err = parseView("COMPACT")
	assert.Error(t, err)
}
