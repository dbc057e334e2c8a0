package formula

import (
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/pricing"
)

// maxNewtonIterations bounds the Newton iteration of both the invariant and
// the reserve inversion. Convergence typically occurs within a handful of
// rounds, hitting the bound means the input is pathological.
const maxNewtonIterations = 64

var (
	// MinAmp is the lowest accepted amplification coefficient.
	MinAmp = decimal.NewFromInt(1)
	// MaxAmp is the highest accepted amplification coefficient.
	MaxAmp = decimal.NewFromInt(1000000)

	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)
)

// StableSwap implements the Curve weighted invariant
//
//	A·n^n·Σx + D = A·D·n^n + D^(n+1) / (n^n·Πx)
//
// solved for D (and for a single missing reserve) by Newton's method.
type StableSwap struct{}

// SpotPrice returns the marginal price out/in, computed from the partial
// derivatives of the invariant at the current reserves.
func (f StableSwap) SpotPrice(opts pricing.Opts) (decimal.Decimal, error) {
	if err := validateStableOpts(opts); err != nil {
		return decimal.Zero, err
	}

	d, err := getD(opts.Reserves, opts.Amp)
	if err != nil {
		return decimal.Zero, err
	}

	n := decimal.NewFromInt(int64(len(opts.Reserves)))
	ann := annCoefficient(opts.Amp, len(opts.Reserves))

	// k = D^(n+1) / (n^n · Πx); the derivative of the invariant along
	// reserve i is ann + k/x_i.
	k := d
	for _, x := range opts.Reserves {
		k = k.Mul(d).Div(x.Mul(n))
	}

	num := ann.Add(k.Div(opts.Reserves[opts.InIndex]))
	den := ann.Add(k.Div(opts.Reserves[opts.OutIndex]))
	return num.Div(den), nil
}

// OutGivenIn computes the invariant over the current reserves, grows the in
// reserve by amountIn and inverts the invariant to find the new out reserve.
// The new out reserve is rounded up so the released amount is floored.
func (f StableSwap) OutGivenIn(
	opts pricing.Opts, amountIn decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateStableOpts(opts); err != nil {
		return decimal.Zero, err
	}
	if !amountIn.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}

	d, err := getD(opts.Reserves, opts.Amp)
	if err != nil {
		return decimal.Zero, err
	}

	xp := cloneReserves(opts.Reserves)
	xp[opts.InIndex] = xp[opts.InIndex].Add(amountIn)

	y, err := solveReserve(xp, opts.OutIndex, opts.Amp, d)
	if err != nil {
		return decimal.Zero, err
	}

	amountOut := opts.Reserves[opts.OutIndex].Sub(y.Ceil())
	if !amountOut.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	return amountOut, nil
}

// InGivenOut shrinks the out reserve by amountOut and inverts the invariant
// to find the required in reserve, rounded up.
func (f StableSwap) InGivenOut(
	opts pricing.Opts, amountOut decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateStableOpts(opts); err != nil {
		return decimal.Zero, err
	}
	if !amountOut.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	if amountOut.GreaterThanOrEqual(opts.Reserves[opts.OutIndex]) {
		return decimal.Zero, pricing.ErrAmountTooBig
	}

	d, err := getD(opts.Reserves, opts.Amp)
	if err != nil {
		return decimal.Zero, err
	}

	xp := cloneReserves(opts.Reserves)
	xp[opts.OutIndex] = xp[opts.OutIndex].Sub(amountOut)

	y, err := solveReserve(xp, opts.InIndex, opts.Amp, d)
	if err != nil {
		return decimal.Zero, err
	}

	amountIn := y.Ceil().Sub(opts.Reserves[opts.InIndex])
	if !amountIn.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	return amountIn, nil
}

// Invariant returns D for the given reserves and amplification coefficient.
func (f StableSwap) Invariant(opts pricing.Opts) (decimal.Decimal, error) {
	if len(opts.Reserves) < 2 {
		return decimal.Zero, pricing.ErrInvalidOpts
	}
	if opts.Amp.LessThan(MinAmp) || opts.Amp.GreaterThan(MaxAmp) {
		return decimal.Zero, pricing.ErrInvalidOpts
	}
	return getD(opts.Reserves, opts.Amp)
}

func (StableSwap) FormulaType() int {
	return pricing.StableSwapType
}

// ResolveAmp returns the effective amplification coefficient at the given
// time: the initial value before rampStart, the future value after rampStop,
// a linear interpolation in between. Modelled as a pure function so that a
// ramp never needs ticking state.
func ResolveAmp(initial, future decimal.Decimal, rampStart, rampStop, now int64) decimal.Decimal {
	if now <= rampStart || rampStop <= rampStart {
		return initial
	}
	if now >= rampStop {
		return future
	}
	elapsed := decimal.NewFromInt(now - rampStart)
	window := decimal.NewFromInt(rampStop - rampStart)
	return initial.Add(future.Sub(initial).Mul(elapsed).Div(window))
}

// getD solves the invariant for D with Newton's method, starting from the
// reserve sum and converging when two successive estimates differ by at most
// one unit.
func getD(xp []decimal.Decimal, amp decimal.Decimal) (decimal.Decimal, error) {
	n := decimal.NewFromInt(int64(len(xp)))
	s := decimal.Zero
	for _, x := range xp {
		if x.IsNegative() {
			return decimal.Zero, pricing.ErrBalanceTooLow
		}
		s = s.Add(x)
	}
	if s.IsZero() {
		return decimal.Zero, nil
	}

	ann := annCoefficient(amp, len(xp))
	d := s
	for i := 0; i < maxNewtonIterations; i++ {
		dp := d
		for _, x := range xp {
			if !x.IsPositive() {
				return decimal.Zero, pricing.ErrBalanceTooLow
			}
			dp = dp.Mul(d).Div(x.Mul(n))
		}
		dPrev := d
		// D = (Ann·S + n·D_P)·D / ((Ann-1)·D + (n+1)·D_P)
		d = ann.Mul(s).Add(n.Mul(dp)).Mul(d).
			Div(ann.Sub(one).Mul(d).Add(n.Add(one).Mul(dp)))

		if d.Sub(dPrev).Abs().LessThanOrEqual(one) {
			return d, nil
		}
	}
	return decimal.Zero, pricing.ErrConvergenceFailure
}

// solveReserve inverts the invariant for the reserve at index, holding D and
// the other reserves fixed. Same Newton structure as getD applied to the
// single-variable polynomial y² + y(b - D) = c.
func solveReserve(
	xp []decimal.Decimal, index int, amp, d decimal.Decimal,
) (decimal.Decimal, error) {
	n := decimal.NewFromInt(int64(len(xp)))
	ann := annCoefficient(amp, len(xp))

	c := d
	s := decimal.Zero
	for i, x := range xp {
		if i == index {
			continue
		}
		if !x.IsPositive() {
			return decimal.Zero, pricing.ErrBalanceTooLow
		}
		s = s.Add(x)
		c = c.Mul(d).Div(x.Mul(n))
	}
	c = c.Mul(d).Div(ann.Mul(n))
	b := s.Add(d.Div(ann))

	y := d
	for i := 0; i < maxNewtonIterations; i++ {
		yPrev := y
		y = y.Mul(y).Add(c).Div(two.Mul(y).Add(b).Sub(d))
		if y.Sub(yPrev).Abs().LessThanOrEqual(one) {
			return y, nil
		}
	}
	return decimal.Zero, pricing.ErrConvergenceFailure
}

func annCoefficient(amp decimal.Decimal, n int) decimal.Decimal {
	ann := amp
	for i := 0; i < n; i++ {
		ann = ann.Mul(decimal.NewFromInt(int64(n)))
	}
	return ann
}

func validateStableOpts(opts pricing.Opts) error {
	if len(opts.Reserves) < 2 {
		return pricing.ErrInvalidOpts
	}
	if opts.InIndex < 0 || opts.InIndex >= len(opts.Reserves) ||
		opts.OutIndex < 0 || opts.OutIndex >= len(opts.Reserves) ||
		opts.InIndex == opts.OutIndex {
		return pricing.ErrInvalidOpts
	}
	if opts.Amp.LessThan(MinAmp) || opts.Amp.GreaterThan(MaxAmp) {
		return pricing.ErrInvalidOpts
	}
	for _, x := range opts.Reserves {
		if !x.IsPositive() {
			return pricing.ErrBalanceTooLow
		}
	}
	return nil
}

func cloneReserves(xp []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(xp))
	copy(out, xp)
	return out
}
