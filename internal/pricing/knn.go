// Package pricing suggests a fair market price for marketplace items using
// K-nearest-neighbors regression over a synthetic sales corpus.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/clicksy/clicksy-api/internal/types"
)

const (
	// K is the number of neighbors averaged into a prediction.
	K = 5
	// conditionWeight scales the condition axis: one condition step moves
	// price more than one year of age.
	conditionWeight = 2.0
	// distanceOffset keeps exact matches finite and bounds their weight at 10.
	distanceOffset = 0.1
	// priceStep is the granularity estimates are rounded up to.
	priceStep = 50
)

// ErrInvalidArgument is returned when a caller violates the input contract.
var ErrInvalidArgument = errors.New("invalid argument")

// neighbor is a corpus record with its distance to the query.
type neighbor struct {
	price    float64
	distance float64
}

// EstimatePrice predicts the price of query from corpus. It returns nil when no
// record shares the query's category, and ErrInvalidArgument for a nil corpus.
func EstimatePrice(query types.PriceQuery, corpus []types.MarketListing) (*int, error) {
	if corpus == nil {
		return nil, fmt.Errorf("%w: corpus is nil", ErrInvalidArgument)
	}

	candidates := filterCandidates(query, corpus)
	if len(candidates) == 0 {
		return nil, nil
	}

	neighbors := nearest(query, candidates, K)

	var weightedSum, totalWeight float64
	for _, n := range neighbors {
		weight := 1 / (n.distance + distanceOffset)
		weightedSum += n.price * weight
		totalWeight += weight
	}

	price := roundUp(weightedSum / totalWeight)
	return &price, nil
}

// filterCandidates keeps records with the query's brand and category, falling
// back to category alone when the brand has no history.
func filterCandidates(query types.PriceQuery, corpus []types.MarketListing) []types.MarketListing {
	var exact, sameCategory []types.MarketListing
	for _, listing := range corpus {
		if listing.Category != query.Category {
			continue
		}
		sameCategory = append(sameCategory, listing)
		if listing.Brand == query.Brand {
			exact = append(exact, listing)
		}
	}
	if len(exact) > 0 {
		return exact
	}
	return sameCategory
}

// nearest returns up to k records closest to query. Equal distances keep corpus order.
func nearest(query types.PriceQuery, candidates []types.MarketListing, k int) []neighbor {
	queryCondition := ConditionScore(query.ConditionLabel)

	neighbors := make([]neighbor, 0, len(candidates))
	for _, listing := range candidates {
		neighbors = append(neighbors, neighbor{
			price:    float64(listing.Price),
			distance: distance(query.Year-listing.Year, queryCondition-ConditionScore(listing.ConditionLabel)),
		})
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors
}

// distance is the weighted Euclidean distance over (year, condition).
func distance(yearDiff, conditionDiff int) float64 {
	y := float64(yearDiff)
	c := float64(conditionDiff) * conditionWeight
	return math.Sqrt(y*y + c*c)
}

// roundUp rounds a price up to the next multiple of priceStep. The epsilon absorbs
// float error from the weighted average so an exact multiple is not bumped a step.
func roundUp(price float64) int {
	return int(math.Ceil(price/priceStep-1e-9)) * priceStep
}
