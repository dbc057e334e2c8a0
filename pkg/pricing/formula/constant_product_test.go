package formula

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/pkg/pricing"
)

func productOpts(reserveIn, reserveOut int64) pricing.Opts {
	return pricing.Opts{
		Reserves: []decimal.Decimal{
			decimal.NewFromInt(reserveIn),
			decimal.NewFromInt(reserveOut),
		},
		InIndex:  0,
		OutIndex: 1,
	}
}

func TestConstantProduct_SpotPrice(t *testing.T) {
	tests := []struct {
		name string
		opts pricing.Opts
		want decimal.Decimal
	}{
		{"balanced pool", productOpts(1000000, 1000000), decimal.NewFromInt(1)},
		{"out side richer", productOpts(2, 19520), decimal.NewFromInt(9760)},
	}
	f := ConstantProduct{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.SpotPrice(tt.opts)
			require.NoError(t, err)
			require.True(t, tt.want.Equal(got))
		})
	}
}

func TestConstantProduct_OutGivenIn(t *testing.T) {
	tests := []struct {
		name     string
		opts     pricing.Opts
		amountIn int64
		want     int64
	}{
		{"1000 against a 1M/1M pool", productOpts(1000000, 1000000), 1000, 999},
		{"large trade pays heavy slippage", productOpts(10000, 10000), 9000, 4736},
		{"tiny pool", productOpts(10, 10), 1, 0},
	}
	f := ConstantProduct{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.OutGivenIn(tt.opts, decimal.NewFromInt(tt.amountIn))
			if tt.want == 0 {
				require.ErrorIs(t, err, pricing.ErrAmountTooLow)
				return
			}
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(tt.want).Equal(got))
		})
	}
}

func TestConstantProduct_InGivenOut(t *testing.T) {
	f := ConstantProduct{}

	// The required in amount must buy back at least the requested out amount.
	opts := productOpts(1000000, 1000000)
	in, err := f.InGivenOut(opts, decimal.NewFromInt(999))
	require.NoError(t, err)
	require.True(t, in.GreaterThanOrEqual(decimal.NewFromInt(999)))

	out, err := f.OutGivenIn(opts, in)
	require.NoError(t, err)
	require.True(t, out.GreaterThanOrEqual(decimal.NewFromInt(999)))

	_, err = f.InGivenOut(opts, decimal.NewFromInt(1000000))
	require.ErrorIs(t, err, pricing.ErrAmountTooBig)
}

func TestConstantProduct_Errors(t *testing.T) {
	f := ConstantProduct{}

	_, err := f.OutGivenIn(productOpts(0, 1000000), decimal.NewFromInt(10))
	require.ErrorIs(t, err, pricing.ErrBalanceTooLow)

	_, err = f.OutGivenIn(productOpts(1000000, 1000000), decimal.Zero)
	require.ErrorIs(t, err, pricing.ErrAmountTooLow)

	threeAssets := pricing.Opts{
		Reserves: []decimal.Decimal{
			decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.NewFromInt(1),
		},
		InIndex:  0,
		OutIndex: 1,
	}
	_, err = f.SpotPrice(threeAssets)
	require.ErrorIs(t, err, pricing.ErrInvalidOpts)
}

func TestConstantProduct_Invariant(t *testing.T) {
	f := ConstantProduct{}
	k, err := f.Invariant(productOpts(1000000, 1000000))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(1000000000000).Equal(k))

	// The invariant never decreases across a swap.
	opts := productOpts(1000000, 1000000)
	out, err := f.OutGivenIn(opts, decimal.NewFromInt(1000))
	require.NoError(t, err)

	after, err := f.Invariant(productOpts(1001000, 1000000-out.IntPart()))
	require.NoError(t, err)
	require.True(t, after.GreaterThanOrEqual(k))
}
