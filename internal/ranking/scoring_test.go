package ranking

import (
	"testing"

	"github.com/clicksy/clicksy-api/internal/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []string
		expected int
	}{
		{"identical sets", []string{"wedding", "portrait"}, []string{"Portrait", "WEDDING"}, 100},
		{"disjoint sets", []string{"wedding"}, []string{"drone"}, 0},
		{"one third", []string{"wedding", "portrait"}, []string{"wedding", "event"}, 33},
		{"two thirds rounds up", []string{"a", "b", "c"}, []string{"a", "b"}, 67},
		{"duplicates collapse", []string{"wedding", " wedding "}, []string{"wedding"}, 100},
		{"left empty", nil, []string{"wedding"}, 0},
		{"right empty", []string{"wedding"}, []string{}, 0},
		{"both empty", nil, nil, 0},
		{"blank entries only", []string{"  "}, []string{"  "}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JaccardSimilarity(tt.a, tt.b))
		})
	}
}

func TestJaccardSimilarity_Bounds(t *testing.T) {
	pool := [][]string{
		nil,
		{"wedding"},
		{"wedding", "portrait"},
		{"event", "drone", "wedding"},
		{"fashion", "product", "food", "street"},
		{"WEDDING", " Portrait "},
	}
	for _, a := range pool {
		for _, b := range pool {
			sim := JaccardSimilarity(a, b)
			assert.GreaterOrEqual(t, sim, 0)
			assert.LessOrEqual(t, sim, 100)
			assert.Equal(t, sim, JaccardSimilarity(b, a), "similarity is symmetric")
		}
	}
}

func TestLocationMatch(t *testing.T) {
	assert.True(t, LocationMatch("Kochi", " kochi "))
	assert.False(t, LocationMatch("Kochi", "Mumbai"))
	assert.False(t, LocationMatch("", ""))
	assert.False(t, LocationMatch("  ", "  "))
	assert.False(t, LocationMatch("Kochi", ""))
}

func TestScoreCandidate(t *testing.T) {
	tests := []struct {
		name      string
		requester types.Profile
		candidate types.Profile
		expected  int
	}{
		{
			name:      "skill overlap, same city, verified",
			requester: types.Profile{Skills: []string{"wedding", "portrait"}, Location: "Kochi"},
			candidate: types.Profile{Skills: []string{"wedding", "event"}, Location: "Kochi", Verified: true},
			expected:  58,
		},
		{
			name:      "identical skills and city",
			requester: types.Profile{Skills: []string{"wedding"}, Location: "Kochi"},
			candidate: types.Profile{Skills: []string{"Wedding"}, Location: "KOCHI"},
			expected:  100,
		},
		{
			name:      "identical skills, city and verified clamps to 100",
			requester: types.Profile{Skills: []string{"wedding"}, Location: "Kochi"},
			candidate: types.Profile{Skills: []string{"wedding"}, Location: "Kochi", Verified: true},
			expected:  100,
		},
		{
			name:      "skills only",
			requester: types.Profile{Skills: []string{"wedding"}},
			candidate: types.Profile{Skills: []string{"wedding"}, Location: "Kochi"},
			expected:  70,
		},
		{
			name:      "no skills, same city",
			requester: types.Profile{Location: "Kochi"},
			candidate: types.Profile{Skills: []string{"wedding"}, Location: "kochi"},
			expected:  50,
		},
		{
			name:      "no skills, same city, verified",
			requester: types.Profile{Location: "Kochi"},
			candidate: types.Profile{Location: "Kochi", Verified: true},
			expected:  55,
		},
		{
			name:      "no skills, different city",
			requester: types.Profile{Location: "Kochi"},
			candidate: types.Profile{Skills: []string{"wedding"}, Location: "Pune"},
			expected:  0,
		},
		{
			name:      "nothing in common but verified",
			requester: types.Profile{Skills: []string{"wedding"}},
			candidate: types.Profile{Skills: []string{"drone"}, Verified: true},
			expected:  5,
		},
		{
			name:      "candidate without skills, same city",
			requester: types.Profile{Skills: []string{"wedding"}, Location: "Kochi"},
			candidate: types.Profile{Location: "Kochi"},
			expected:  30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.candidate.ID = uuid.New()
			assert.Equal(t, tt.expected, ScoreCandidate(&tt.requester, &tt.candidate))
		})
	}
}
