package pricing

import "github.com/clicksy/clicksy-api/internal/types"

// conditionScores maps condition labels onto the ordinal 1-6 scale used as a
// distance feature.
var conditionScores = map[string]int{
	types.ConditionNewOpenBox: 6,
	types.ConditionLikeNew:    5,
	types.ConditionExcellent:  4,
	types.ConditionGood:       3,
	types.ConditionFair:       2,
	types.ConditionForParts:   1,
}

// defaultConditionScore is used for labels outside the scale.
const defaultConditionScore = 3

// ConditionScore returns the ordinal score of a condition label.
func ConditionScore(label string) int {
	if score, ok := conditionScores[label]; ok {
		return score
	}
	return defaultConditionScore
}

// conditionFactors is the share of the base price each condition retains.
var conditionFactors = []struct {
	label  string
	factor float64
}{
	{types.ConditionNewOpenBox, 0.95},
	{types.ConditionLikeNew, 0.85},
	{types.ConditionExcellent, 0.75},
	{types.ConditionGood, 0.65},
	{types.ConditionFair, 0.45},
	{types.ConditionForParts, 0.20},
}
