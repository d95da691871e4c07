package pricing

import (
	"sync"
	"testing"

	"github.com/clicksy/clicksy-api/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimator_ReplaceSwapsCorpus(t *testing.T) {
	query := types.PriceQuery{Brand: "Rode", Category: types.CategoryAudio, ConditionLabel: types.ConditionGood, Year: 2023}

	e := NewEstimator([]types.MarketListing{listing("Rode", types.CategoryAudio, types.ConditionGood, 2023, 200)})
	price, err := e.Estimate(query)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, 200, *price)
	assert.Equal(t, 1, e.Size())

	e.Replace([]types.MarketListing{listing("Rode", types.CategoryAudio, types.ConditionGood, 2023, 400)})
	price, err = e.Estimate(query)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, 400, *price)
}

func TestEstimator_ConcurrentUse(t *testing.T) {
	e := NewEstimator(NewGenerator(WithSeed(3)).Generate())
	query := types.PriceQuery{Brand: "Nikon", Category: types.CategoryLens, ConditionLabel: types.ConditionFair, Year: 2021}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				price, err := e.Estimate(query)
				assert.NoError(t, err)
				assert.NotNil(t, price)
			}
			e.Replace(NewGenerator(WithSeed(seed)).Generate())
		}(int64(i))
	}
	wg.Wait()
}
