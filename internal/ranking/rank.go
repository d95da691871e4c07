package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/clicksy/clicksy-api/internal/types"
)

const (
	// TopN is the number of matches Recommend returns ("view all").
	TopN = 6
	// CompactN is the number of matches shown in the compact sidebar widget.
	CompactN = 3
)

// ErrInvalidArgument is returned when a caller violates the input contract.
var ErrInvalidArgument = errors.New("invalid argument")

// Recommend scores every candidate against requester and returns the top TopN
// matches sorted by score, highest first. Candidates sharing the requester's ID
// are dropped. Equal scores keep their input order. Zero-score candidates are
// kept so the widget is never empty while candidates exist.
func Recommend(requester *types.Profile, candidates []types.Profile) ([]types.MatchResult, error) {
	if requester == nil {
		return nil, fmt.Errorf("%w: requester profile is nil", ErrInvalidArgument)
	}

	s := newScorer(requester)
	results := make([]types.MatchResult, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.ID == requester.ID {
			continue
		}
		results = append(results, types.MatchResult{
			CandidateID: candidate.ID,
			DisplayName: candidate.DisplayName,
			Role:        candidate.Role,
			Location:    candidate.Location,
			AvatarRef:   candidate.AvatarRef,
			Score:       s.score(candidate),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > TopN {
		results = results[:TopN]
	}
	return results, nil
}

// Limit truncates ranked results to at most n entries.
func Limit(results []types.MatchResult, n int) []types.MatchResult {
	if n >= 0 && len(results) > n {
		return results[:n]
	}
	return results
}
