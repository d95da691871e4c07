package pricing

import (
	"sync"

	"github.com/clicksy/clicksy-api/internal/types"
)

// Estimator holds the in-memory corpus shared by concurrent requests. The
// corpus is treated as read-only; Replace swaps in a freshly generated one.
type Estimator struct {
	mu     sync.RWMutex
	corpus []types.MarketListing
}

// NewEstimator creates an Estimator over corpus.
func NewEstimator(corpus []types.MarketListing) *Estimator {
	return &Estimator{corpus: corpus}
}

// Estimate predicts a price for query against the current corpus.
func (e *Estimator) Estimate(query types.PriceQuery) (*int, error) {
	e.mu.RLock()
	corpus := e.corpus
	e.mu.RUnlock()

	return EstimatePrice(query, corpus)
}

// Replace swaps the corpus.
func (e *Estimator) Replace(corpus []types.MarketListing) {
	e.mu.Lock()
	e.corpus = corpus
	e.mu.Unlock()
}

// Size returns the number of records in the current corpus.
func (e *Estimator) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.corpus)
}
