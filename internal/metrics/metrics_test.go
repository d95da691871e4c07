package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordAPIRequest("GET", "/health", 200, 15*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/health", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordRecommendations(t *testing.T) {
	before := testutil.ToFloat64(RecommendationsServed.WithLabelValues("compact"))
	RecordRecommendations("compact", []int{58, 30, 0})
	assert.Equal(t, before+1, testutil.ToFloat64(RecommendationsServed.WithLabelValues("compact")))
}

func TestRecordEstimate(t *testing.T) {
	before := testutil.ToFloat64(PriceEstimates.WithLabelValues("insufficient_data"))
	RecordEstimate("insufficient_data")
	assert.Equal(t, before+1, testutil.ToFloat64(PriceEstimates.WithLabelValues("insufficient_data")))
}

func TestRecordCorpusRefresh(t *testing.T) {
	before := testutil.ToFloat64(CorpusRefreshes)
	RecordCorpusRefresh(420)
	assert.Equal(t, before+1, testutil.ToFloat64(CorpusRefreshes))
	assert.Equal(t, float64(420), testutil.ToFloat64(CorpusSize))
}
