package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccumulate(t *testing.T) {
	pool := newFundedPool(t, 0, 0, 1000000)

	// The first reserve change initializes the accumulators at zero.
	require.Equal(t, int64(100), pool.LastUpdateTime)
	require.Len(t, pool.CumulativePrices, 2)
	require.Len(t, pool.Observations, 1)
	for _, cp := range pool.CumulativePrices {
		require.True(t, cp.Value.IsZero())
	}

	// A swap 100 seconds later accumulates the pre-trade spot price times
	// the elapsed time: 1 * 100 on a balanced pool, in both directions.
	_, err := pool.ApplySwap(
		200,
		AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)},
		"uluna", nil, nil,
	)
	require.NoError(t, err)

	require.Equal(t, int64(200), pool.LastUpdateTime)
	require.Len(t, pool.Observations, 2)
	for _, cp := range pool.CumulativePrices {
		require.True(t, decimal.NewFromInt(100).Equal(cp.Value))
	}
}

func TestAccumulate_SameTimestamp(t *testing.T) {
	pool := newFundedPool(t, 0, 0, 1000000)

	// Multiple reserve changes within the same second accumulate only once.
	_, err := pool.ApplySwap(
		200, AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)},
		"uluna", nil, nil,
	)
	require.NoError(t, err)
	snapshot := pool.CumulativePrices[0].Value

	_, err = pool.ApplySwap(
		200, AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)},
		"uluna", nil, nil,
	)
	require.NoError(t, err)
	require.True(t, snapshot.Equal(pool.CumulativePrices[0].Value))
	require.Len(t, pool.Observations, 2)
}

func TestCumulativePriceAt(t *testing.T) {
	pool := newFundedPool(t, 0, 0, 1000000)
	_, err := pool.ApplySwap(
		200, AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)},
		"uluna", nil, nil,
	)
	require.NoError(t, err)

	// Exact observation timestamps are returned as stored.
	at100, err := pool.CumulativePriceAt("uusd", "uluna", 100)
	require.NoError(t, err)
	require.True(t, at100.IsZero())

	at200, err := pool.CumulativePriceAt("uusd", "uluna", 200)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(100).Equal(at200))

	// Timestamps between observations interpolate linearly.
	at150, err := pool.CumulativePriceAt("uusd", "uluna", 150)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(50).Equal(at150))

	// Timestamps after the last update extrapolate with the current spot.
	at300, err := pool.CumulativePriceAt("uusd", "uluna", 300)
	require.NoError(t, err)
	require.True(t, at300.GreaterThan(at200))

	// Queries before the history begins are unanswerable.
	_, err = pool.CumulativePriceAt("uusd", "uluna", 50)
	require.ErrorIs(t, err, ErrPriceHistoryTooShort)

	_, err = pool.CumulativePriceAt("uusd", "ubtc", 150)
	require.ErrorIs(t, err, ErrInvalidAssetPair)
}

func TestTWAP(t *testing.T) {
	pool := newFundedPool(t, 0, 0, 1000000)
	_, err := pool.ApplySwap(
		200, AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)},
		"uluna", nil, nil,
	)
	require.NoError(t, err)

	// The price held at 1 over [100, 200].
	twap, err := pool.TWAP("uusd", "uluna", 100, 200)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1).Equal(twap))

	_, err = pool.TWAP("uusd", "uluna", 0, 200)
	require.ErrorIs(t, err, ErrPriceHistoryTooShort)

	_, err = pool.TWAP("uusd", "uluna", 500, 200)
	require.ErrorIs(t, err, ErrPriceHistoryTooShort)
}

func TestObservationsBounded(t *testing.T) {
	pool := newFundedPool(t, 0, 0, 100000000)

	for i := int64(0); i < 100; i++ {
		_, err := pool.ApplySwap(
			200+i, AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(10)},
			"uluna", nil, nil,
		)
		require.NoError(t, err)
	}
	require.Len(t, pool.Observations, MaxObservations)

	// The history keeps the newest observations.
	last := pool.Observations[len(pool.Observations)-1]
	require.Equal(t, int64(299), last.Timestamp)
}
