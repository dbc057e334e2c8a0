package formula

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/pkg/pricing"
)

func sumOpts(reserveIn, reserveOut int64) pricing.Opts {
	return pricing.Opts{
		Reserves: []decimal.Decimal{
			decimal.NewFromInt(reserveIn),
			decimal.NewFromInt(reserveOut),
		},
		InIndex:  0,
		OutIndex: 1,
	}
}

func TestConstantSum(t *testing.T) {
	f := ConstantSum{}

	spot, err := f.SpotPrice(sumOpts(1000, 5000))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1).Equal(spot))

	// Trades exchange at par, bounded by the out reserve.
	out, err := f.OutGivenIn(sumOpts(1000, 5000), decimal.NewFromInt(300))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(300).Equal(out))

	in, err := f.InGivenOut(sumOpts(1000, 5000), decimal.NewFromInt(300))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(300).Equal(in))

	_, err = f.OutGivenIn(sumOpts(1000, 5000), decimal.NewFromInt(5001))
	require.ErrorIs(t, err, pricing.ErrAmountTooBig)

	_, err = f.OutGivenIn(sumOpts(1000, 5000), decimal.Zero)
	require.ErrorIs(t, err, pricing.ErrAmountTooLow)

	d, err := f.Invariant(sumOpts(1000, 5000))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(6000).Equal(d))
}
