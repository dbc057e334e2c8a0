// Package formula defines the curves implementing the pricing.Formula
// interface.
package formula

import (
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/mathutil"
	"github.com/dexpool-network/poold/pkg/pricing"
)

// ConstantProduct implements the xy=k curve over a two-asset pool.
type ConstantProduct struct{}

// SpotPrice returns the marginal price out/in over the current reserves.
func (ConstantProduct) SpotPrice(opts pricing.Opts) (decimal.Decimal, error) {
	if err := validateProductOpts(opts); err != nil {
		return decimal.Zero, err
	}
	return opts.Reserves[opts.OutIndex].Div(opts.Reserves[opts.InIndex]), nil
}

// OutGivenIn solves k = x*y for the new out reserve after the in reserve
// grows by amountIn. The new out reserve is rounded up so the released
// amount is floored.
func (ConstantProduct) OutGivenIn(
	opts pricing.Opts, amountIn decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateProductOpts(opts); err != nil {
		return decimal.Zero, err
	}
	if !amountIn.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}

	reserveIn, reserveOut := opts.Reserves[opts.InIndex], opts.Reserves[opts.OutIndex]
	k := reserveIn.Mul(reserveOut)
	newReserveOut, err := mathutil.DivCeil(k, reserveIn.Add(amountIn))
	if err != nil {
		return decimal.Zero, err
	}

	amountOut := reserveOut.Sub(newReserveOut)
	if !amountOut.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	return amountOut, nil
}

// InGivenOut solves the same relation backwards: the in amount required for
// the pool to release amountOut, rounded up.
func (ConstantProduct) InGivenOut(
	opts pricing.Opts, amountOut decimal.Decimal,
) (decimal.Decimal, error) {
	if err := validateProductOpts(opts); err != nil {
		return decimal.Zero, err
	}
	if !amountOut.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}

	reserveIn, reserveOut := opts.Reserves[opts.InIndex], opts.Reserves[opts.OutIndex]
	if amountOut.GreaterThanOrEqual(reserveOut) {
		return decimal.Zero, pricing.ErrAmountTooBig
	}

	k := reserveIn.Mul(reserveOut)
	newReserveIn, err := mathutil.DivCeil(k, reserveOut.Sub(amountOut))
	if err != nil {
		return decimal.Zero, err
	}

	amountIn := newReserveIn.Sub(reserveIn)
	if !amountIn.IsPositive() {
		return decimal.Zero, pricing.ErrAmountTooLow
	}
	return amountIn, nil
}

// Invariant returns k, the product of the two reserves.
func (ConstantProduct) Invariant(opts pricing.Opts) (decimal.Decimal, error) {
	if len(opts.Reserves) != 2 {
		return decimal.Zero, pricing.ErrInvalidOpts
	}
	return opts.Reserves[0].Mul(opts.Reserves[1]), nil
}

func (ConstantProduct) FormulaType() int {
	return pricing.ConstantProductType
}

func validateProductOpts(opts pricing.Opts) error {
	if len(opts.Reserves) != 2 {
		return pricing.ErrInvalidOpts
	}
	if opts.InIndex+opts.OutIndex != 1 || opts.InIndex == opts.OutIndex {
		return pricing.ErrInvalidOpts
	}
	if !opts.Reserves[0].IsPositive() || !opts.Reserves[1].IsPositive() {
		return pricing.ErrBalanceTooLow
	}
	return nil
}
