package formula

import (
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/pricing"
)

// ConstantSum implements the 1:1 transmuter curve used by bonded-asset
// pairs: assets exchange at par after decimal normalization, bounded by the
// out-side reserve. The invariant is the reserve sum.
type ConstantSum struct{}

func (ConstantSum) SpotPrice(opts pricing.Opts) (decimal.Decimal, error) {
	if err := opts.Validate(); err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(1), nil
}

func (ConstantSum) OutGivenIn(
	opts pricing.Opts, amountIn decimal.Decimal,
) (decimal.Decimal, error) {
	if err := opts.Validate(); err != nil {
		return decimal.Zero, err
	}
	if !amountIn.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	if amountIn.GreaterThan(opts.Reserves[opts.OutIndex]) {
		return decimal.Zero, pricing.ErrAmountTooBig
	}
	return amountIn.Floor(), nil
}

func (ConstantSum) InGivenOut(
	opts pricing.Opts, amountOut decimal.Decimal,
) (decimal.Decimal, error) {
	if err := opts.Validate(); err != nil {
		return decimal.Zero, err
	}
	if !amountOut.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	if amountOut.GreaterThan(opts.Reserves[opts.OutIndex]) {
		return decimal.Zero, pricing.ErrAmountTooBig
	}
	return amountOut.Ceil(), nil
}

func (ConstantSum) Invariant(opts pricing.Opts) (decimal.Decimal, error) {
	if len(opts.Reserves) < 2 {
		return decimal.Zero, pricing.ErrInvalidOpts
	}
	d := decimal.Zero
	for _, x := range opts.Reserves {
		if x.IsNegative() {
			return decimal.Zero, pricing.ErrBalanceTooLow
		}
		d = d.Add(x)
	}
	return d, nil
}

func (ConstantSum) FormulaType() int {
	return pricing.ConstantSumType
}
