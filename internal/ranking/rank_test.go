package ranking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/clicksy/clicksy-api/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(name string, skills []string, location string, verified bool) types.Profile {
	return types.Profile{
		ID:          uuid.New(),
		DisplayName: name,
		Skills:      skills,
		Location:    location,
		Role:        "photographer",
		Verified:    verified,
	}
}

func TestRecommend_NilRequester(t *testing.T) {
	results, err := Recommend(nil, []types.Profile{profile("a", nil, "", false)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Nil(t, results)
}

func TestRecommend_EmptyPool(t *testing.T) {
	requester := profile("me", []string{"wedding"}, "Kochi", false)

	results, err := Recommend(&requester, nil)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRecommend_SortsDescendingAndCopiesFields(t *testing.T) {
	requester := profile("me", []string{"wedding", "portrait"}, "Kochi", false)
	low := profile("low", []string{"drone"}, "Pune", false)
	high := profile("high", []string{"wedding", "portrait"}, "Kochi", false)
	mid := profile("mid", []string{"wedding", "event"}, "Kochi", true)
	mid.AvatarRef = "avatars/mid.png"

	results, err := Recommend(&requester, []types.Profile{low, high, mid})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, high.ID, results[0].CandidateID)
	assert.Equal(t, 100, results[0].Score)
	assert.Equal(t, mid.ID, results[1].CandidateID)
	assert.Equal(t, 58, results[1].Score)
	assert.Equal(t, "avatars/mid.png", results[1].AvatarRef)
	assert.Equal(t, "Kochi", results[1].Location)
	assert.Equal(t, "photographer", results[1].Role)
	assert.Equal(t, low.ID, results[2].CandidateID)
	assert.Equal(t, 0, results[2].Score)
}

func TestRecommend_ExcludesRequester(t *testing.T) {
	requester := profile("me", []string{"wedding"}, "Kochi", true)
	self := requester
	other := profile("other", []string{"drone"}, "Pune", false)

	results, err := Recommend(&requester, []types.Profile{self, other, self})
	require.NoError(t, err)
	require.Len(t, results, 1)
	for _, r := range results {
		assert.NotEqual(t, requester.ID, r.CandidateID)
	}
}

func TestRecommend_KeepsZeroScores(t *testing.T) {
	requester := profile("me", []string{"wedding"}, "Kochi", false)
	candidates := make([]types.Profile, 0, 8)
	for i := 0; i < 8; i++ {
		candidates = append(candidates, profile(fmt.Sprintf("c%d", i), []string{"drone"}, "Pune", false))
	}

	results, err := Recommend(&requester, candidates)
	require.NoError(t, err)
	require.Len(t, results, TopN)
	for i, r := range results {
		assert.Equal(t, 0, r.Score)
		// ties keep input order
		assert.Equal(t, candidates[i].ID, r.CandidateID)
	}
}

func TestRecommend_LocationOnlyFallback(t *testing.T) {
	requester := profile("me", nil, "Kochi", false)
	match := profile("match", []string{"wedding"}, " kochi", true)
	others := []types.Profile{
		profile("a", []string{"wedding"}, "Pune", false),
		profile("b", nil, "", true),
		profile("c", []string{"portrait"}, "Mumbai", false),
	}

	results, err := Recommend(&requester, append(others, match))
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, match.ID, results[0].CandidateID)
	assert.Equal(t, 55, results[0].Score)
	for _, r := range results[1:] {
		if r.CandidateID == others[1].ID {
			assert.Equal(t, 5, r.Score, "verified bonus still applies")
			continue
		}
		assert.Equal(t, 0, r.Score)
	}
}

func TestRecommend_ScoresAlwaysInRange(t *testing.T) {
	skills := [][]string{nil, {"wedding"}, {"wedding", "portrait"}, {"drone", "event", "wedding"}, {"  "}}
	locations := []string{"", "Kochi", " KOCHI ", "Pune"}

	var pool []types.Profile
	for _, s := range skills {
		for _, l := range locations {
			pool = append(pool, profile("p", s, l, true), profile("p", s, l, false))
		}
	}

	for i := range pool {
		results, err := Recommend(&pool[i], pool)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(results), TopN)
		for _, r := range results {
			assert.GreaterOrEqual(t, r.Score, 0)
			assert.LessOrEqual(t, r.Score, 100)
		}
	}
}

func TestLimit(t *testing.T) {
	results := make([]types.MatchResult, 6)
	assert.Len(t, Limit(results, CompactN), 3)
	assert.Len(t, Limit(results, TopN), 6)
	assert.Len(t, Limit(results, 10), 6)
	assert.Len(t, Limit(results, -1), 6)
}
