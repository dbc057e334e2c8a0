package formula

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/pkg/pricing"
)

func stableOpts(amp int64, reserves ...int64) pricing.Opts {
	xs := make([]decimal.Decimal, len(reserves))
	for i, r := range reserves {
		xs[i] = decimal.NewFromInt(r)
	}
	return pricing.Opts{
		Reserves: xs,
		InIndex:  0,
		OutIndex: 1,
		Amp:      decimal.NewFromInt(amp),
	}
}

func TestStableSwap_InvariantBalanced(t *testing.T) {
	// With perfectly balanced reserves the invariant is exactly the sum,
	// regardless of the amplification coefficient.
	tests := []struct {
		name string
		opts pricing.Opts
		want int64
	}{
		{"two assets amp 1", stableOpts(1, 1000000, 1000000), 2000000},
		{"two assets amp 100", stableOpts(100, 1000000, 1000000), 2000000},
		{"two assets max amp", stableOpts(1000000, 1000000, 1000000), 2000000},
		{"three assets", stableOpts(100, 500000, 500000, 500000), 1500000},
	}
	f := StableSwap{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := f.Invariant(tt.opts)
			require.NoError(t, err)
			require.True(t, decimal.NewFromInt(tt.want).Equal(d))
		})
	}
}

func TestStableSwap_InvariantConvergence(t *testing.T) {
	big := decimal.RequireFromString("1000000000000000000000000000000")

	tests := []struct {
		name string
		opts pricing.Opts
	}{
		{"mild imbalance", stableOpts(100, 1000000, 900000)},
		{"10x imbalance amp 1", stableOpts(1, 1000000, 100000)},
		{"10x imbalance max amp", stableOpts(1000000, 1000000, 100000)},
		{"1000x imbalance", stableOpts(100, 1000000000, 1000000)},
		{"huge reserves", pricing.Opts{
			Reserves: []decimal.Decimal{big, big.Div(decimal.NewFromInt(3)).Floor()},
			InIndex:  0, OutIndex: 1,
			Amp: decimal.NewFromInt(100),
		}},
		{"five assets", stableOpts(50, 100000, 200000, 300000, 400000, 500000)},
	}
	f := StableSwap{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := f.Invariant(tt.opts)
			require.NoError(t, err)
			require.True(t, d.IsPositive())

			// D never exceeds the reserve sum, which it approaches as the
			// amplification grows.
			sum := decimal.Zero
			for _, x := range tt.opts.Reserves {
				sum = sum.Add(x)
			}
			require.True(t, d.LessThanOrEqual(sum.Add(decimal.NewFromInt(1))))
		})
	}

	// On an imbalanced pool the invariant grows with the amplification.
	low, err := f.Invariant(stableOpts(1, 1000000, 100000))
	require.NoError(t, err)
	high, err := f.Invariant(stableOpts(1000, 1000000, 100000))
	require.NoError(t, err)
	require.True(t, high.GreaterThan(low))
}

func TestStableSwap_SpotPrice(t *testing.T) {
	f := StableSwap{}

	// Balanced reserves price at par.
	spot, err := f.SpotPrice(stableOpts(100, 1000000, 1000000))
	require.NoError(t, err)
	require.True(t, spot.Sub(decimal.NewFromInt(1)).Abs().
		LessThan(decimal.NewFromFloat(0.000001)))

	// The scarce side gets more expensive, but far less than on a
	// constant-product curve.
	spot, err = f.SpotPrice(stableOpts(100, 1100000, 900000))
	require.NoError(t, err)
	require.True(t, spot.LessThan(decimal.NewFromInt(1)))
	require.True(t, spot.GreaterThan(decimal.NewFromFloat(0.99)))
}

func TestStableSwap_OutGivenIn(t *testing.T) {
	f := StableSwap{}
	opts := stableOpts(100, 1000000, 1000000)
	in := decimal.NewFromInt(1000)

	out, err := f.OutGivenIn(opts, in)
	require.NoError(t, err)
	require.True(t, out.LessThan(in))
	require.True(t, out.GreaterThan(decimal.NewFromInt(990)))

	// A higher amplification flattens the curve, so the same trade on an
	// imbalanced pool returns strictly more.
	imbalanced := stableOpts(1, 1000000, 500000)
	lowAmpOut, err := f.OutGivenIn(imbalanced, in)
	require.NoError(t, err)
	imbalanced.Amp = decimal.NewFromInt(1000)
	highAmpOut, err := f.OutGivenIn(imbalanced, in)
	require.NoError(t, err)
	require.True(t, highAmpOut.GreaterThan(lowAmpOut))

	_, err = f.OutGivenIn(opts, decimal.Zero)
	require.ErrorIs(t, err, pricing.ErrAmountTooLow)
	_, err = f.OutGivenIn(stableOpts(100, 0, 1000000), in)
	require.ErrorIs(t, err, pricing.ErrBalanceTooLow)
}

func TestStableSwap_InGivenOut(t *testing.T) {
	f := StableSwap{}
	opts := stableOpts(100, 1000000, 1000000)
	out := decimal.NewFromInt(1000)

	in, err := f.InGivenOut(opts, out)
	require.NoError(t, err)
	require.True(t, in.GreaterThanOrEqual(out))

	// The computed in amount must buy back at least the requested out.
	boughtBack, err := f.OutGivenIn(opts, in)
	require.NoError(t, err)
	require.True(t, boughtBack.GreaterThanOrEqual(out.Sub(decimal.NewFromInt(1))))

	_, err = f.InGivenOut(opts, decimal.NewFromInt(1000000))
	require.ErrorIs(t, err, pricing.ErrAmountTooBig)
}

func TestStableSwap_InvalidOpts(t *testing.T) {
	f := StableSwap{}

	ampTooLow := stableOpts(0, 1000000, 1000000)
	_, err := f.SpotPrice(ampTooLow)
	require.ErrorIs(t, err, pricing.ErrInvalidOpts)

	ampTooHigh := stableOpts(1000001, 1000000, 1000000)
	_, err = f.Invariant(ampTooHigh)
	require.ErrorIs(t, err, pricing.ErrInvalidOpts)

	sameIndex := stableOpts(100, 1000000, 1000000)
	sameIndex.OutIndex = 0
	_, err = f.OutGivenIn(sameIndex, decimal.NewFromInt(10))
	require.ErrorIs(t, err, pricing.ErrInvalidOpts)
}

func TestResolveAmp(t *testing.T) {
	initial := decimal.NewFromInt(100)
	future := decimal.NewFromInt(200)

	tests := []struct {
		name string
		now  int64
		want int64
	}{
		{"before the ramp", 500, 100},
		{"at ramp start", 1000, 100},
		{"halfway", 1500, 150},
		{"at ramp stop", 2000, 200},
		{"after the ramp", 3000, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveAmp(initial, future, 1000, 2000, tt.now)
			require.True(t, decimal.NewFromInt(tt.want).Equal(got))
		})
	}

	// A zero-width window never interpolates.
	got := ResolveAmp(initial, future, 1000, 1000, 1000)
	require.True(t, initial.Equal(got))
}
