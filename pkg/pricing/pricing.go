// Package pricing defines the curve formulas used to price trades against a
// pool. A formula is a pure function of the pool reserves: fees, slippage
// guards and state mutations are the caller's concern.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	// ConstantProductType identifies the xy=k curve.
	ConstantProductType = 1
	// StableSwapType identifies the weighted-invariant curve solved by
	// Newton iteration.
	StableSwapType = 2
	// ConstantSumType identifies the 1:1 transmuter curve for bonded pairs.
	ConstantSumType = 3
)

var (
	// ErrBalanceTooLow is thrown when any involved reserve is zero.
	ErrBalanceTooLow = errors.New("reserve balance amount is too low")
	// ErrAmountTooLow is thrown when the traded amount prices to nothing.
	ErrAmountTooLow = errors.New("provided amount is too low")
	// ErrAmountTooBig is thrown when the trade would drain the out reserve.
	ErrAmountTooBig = errors.New("provided amount is too big")
	// ErrConvergenceFailure is thrown when the Newton iteration does not
	// converge within the iteration bound. It's fatal for the current call,
	// non-convergence indicates pathological input.
	ErrConvergenceFailure = errors.New("invariant iteration did not converge")
	// ErrInvalidOpts is thrown when the opts don't fit the formula, eg. a
	// constant-product formula applied to more than two reserves.
	ErrInvalidOpts = errors.New("opts are not valid for this formula")
)

// Opts carries the reserve state a formula operates on. Reserves must already
// be normalized to a common decimal precision by the caller.
type Opts struct {
	Reserves []decimal.Decimal
	InIndex  int
	OutIndex int
	// Amp is the stableswap amplification coefficient, already resolved
	// against its ramp window. Ignored by the other curves.
	Amp decimal.Decimal
}

// Validate checks that the reserve set and the in/out indices are coherent.
func (o Opts) Validate() error {
	if len(o.Reserves) < 2 {
		return ErrInvalidOpts
	}
	if o.InIndex < 0 || o.InIndex >= len(o.Reserves) ||
		o.OutIndex < 0 || o.OutIndex >= len(o.Reserves) ||
		o.InIndex == o.OutIndex {
		return ErrInvalidOpts
	}
	return nil
}

// Formula defines the interface for implementing a pool pricing curve.
// OutGivenIn and InGivenOut price the raw trade on the curve, before any
// commission.
type Formula interface {
	// SpotPrice returns the pre-trade marginal price of the in asset
	// expressed in units of the out asset.
	SpotPrice(opts Opts) (decimal.Decimal, error)
	// OutGivenIn returns the amount of out asset released by the pool for
	// the given in amount, floor-rounded in favor of the pool.
	OutGivenIn(opts Opts, amountIn decimal.Decimal) (decimal.Decimal, error)
	// InGivenOut returns the amount of in asset the pool requires to
	// release the given out amount, ceil-rounded in favor of the pool.
	InGivenOut(opts Opts, amountOut decimal.Decimal) (decimal.Decimal, error)
	// Invariant returns the conserved quantity D of the curve over the
	// given reserves.
	Invariant(opts Opts) (decimal.Decimal, error)
	// FormulaType returns the type identifier of the curve.
	FormulaType() int
}
