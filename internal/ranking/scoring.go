// Package ranking scores and ranks peer profiles for the community and
// "similar creators" widgets.
package ranking

import (
	"math"

	"github.com/clicksy/clicksy-api/internal/parsing"
	"github.com/clicksy/clicksy-api/internal/types"
)

// Scoring constants
const (
	skillWeight       = 0.7
	locationBonus     = 30.0
	locationOnlyScore = 50.0
	verifiedBonus     = 5.0
	maxScore          = 100
)

// JaccardSimilarity returns |a ∩ b| / |a ∪ b| scaled to 0-100 and rounded.
// Skills are compared after lower-casing and trimming. Either side empty yields 0.
func JaccardSimilarity(a, b []string) int {
	return jaccard(parsing.SkillSet(a), parsing.SkillSet(b))
}

func jaccard(a, b map[string]struct{}) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for skill := range a {
		if _, ok := b[skill]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection

	return int(math.Round(float64(intersection) / float64(union) * 100))
}

// LocationMatch reports whether both locations are non-empty and equal after normalization.
func LocationMatch(a, b string) bool {
	na := parsing.NormalizeLocation(a)
	nb := parsing.NormalizeLocation(b)
	return na != "" && na == nb
}

// ScoreCandidate computes the 0-100 match score of candidate for requester.
func ScoreCandidate(requester, candidate *types.Profile) int {
	return newScorer(requester).score(candidate)
}

// scorer holds the requester's normalized fields so a candidate pool is scored
// without re-normalizing the requester each time.
type scorer struct {
	skills   map[string]struct{}
	location string
}

func newScorer(requester *types.Profile) scorer {
	return scorer{
		skills:   parsing.SkillSet(requester.Skills),
		location: requester.Location,
	}
}

func (s scorer) score(candidate *types.Profile) int {
	sameLocation := LocationMatch(s.location, candidate.Location)

	var score float64
	if len(s.skills) > 0 {
		score = float64(jaccard(s.skills, parsing.SkillSet(candidate.Skills))) * skillWeight
		if sameLocation {
			score += locationBonus
		}
	} else if sameLocation {
		// Requester listed no skills: location is the only signal left.
		score = locationOnlyScore
	}

	if candidate.Verified {
		score += verifiedBonus
	}

	final := int(math.Round(score))
	if final > maxScore {
		final = maxScore
	}
	if final < 0 {
		final = 0
	}
	return final
}
