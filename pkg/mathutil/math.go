// Package mathutil provides the deterministic fixed-point arithmetic used by
// every pricing formula and pool state transition. No floating point is ever
// used: amounts are integer-valued decimal.Decimal values and every
// fractional-to-integer conversion rounds down in favor of the pool.
package mathutil

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

var (
	// ErrDivideByZero is thrown when the divisor of any division is zero.
	ErrDivideByZero = errors.New("division by zero")
	// ErrOverflow is thrown when a result does not fit into a 128-bit amount.
	ErrOverflow = errors.New("amount overflows 128 bits")
	// ErrNegativeAmount is thrown when a negative value is used as an amount.
	ErrNegativeAmount = errors.New("amount must not be negative")
)

// MaxAmount is the largest representable amount (2^128 - 1), matching the
// unsigned 128-bit integers the host runtime uses for token amounts.
var MaxAmount = decimal.NewFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)), 0,
)

func init() {
	decimal.DivisionPrecision = 18
}

// CheckedAmount validates that v can be used as a token amount, ie. it's a
// non-negative integer not exceeding 128 bits. Intermediate values may grow
// arbitrarily large, the check applies only where an amount is produced.
func CheckedAmount(v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	if v.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrOverflow
	}
	return v.Floor(), nil
}

// DivFloor returns x/y rounded towards zero.
func DivFloor(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	q, _ := x.QuoRem(y, 0)
	return q, nil
}

// DivCeil returns x/y rounded away from zero. Used when computing the new
// out-side reserve of a swap, so that the amount leaving the pool is floored.
func DivCeil(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	q, r := x.QuoRem(y, 0)
	if !r.IsZero() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q, nil
}

// Div returns x/y at the package division precision.
func Div(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, ErrDivideByZero
	}
	return x.Div(y), nil
}

// MulFloor returns x*y rounded towards zero.
func MulFloor(x, y decimal.Decimal) decimal.Decimal {
	return x.Mul(y).Floor()
}

// IntegerSqrt returns the floor of the square root of v. It's used by the
// constant-product share-mint formula on the first deposit.
func IntegerSqrt(v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	root := new(big.Int).Sqrt(v.Floor().BigInt())
	return decimal.NewFromBigInt(root, 0), nil
}

// Normalize scales an amount expressed with the given precision to the target
// precision. Target precision is always >= the asset precision within a pool,
// so normalization never loses information.
func Normalize(amount decimal.Decimal, precision, targetPrecision uint) decimal.Decimal {
	if precision == targetPrecision {
		return amount
	}
	return amount.Mul(pow10(targetPrecision - precision))
}

// Denormalize scales an amount back from the target precision to the asset
// precision, flooring the result.
func Denormalize(amount decimal.Decimal, precision, targetPrecision uint) decimal.Decimal {
	if precision == targetPrecision {
		return amount.Floor()
	}
	q, _ := amount.QuoRem(pow10(targetPrecision-precision), 0)
	return q
}

// DenormalizeCeil scales an amount back from the target precision to the
// asset precision rounding up. Used for required offer amounts, which must
// always cover the pool side.
func DenormalizeCeil(amount decimal.Decimal, precision, targetPrecision uint) decimal.Decimal {
	if precision == targetPrecision {
		return amount.Ceil()
	}
	q, r := amount.QuoRem(pow10(targetPrecision-precision), 0)
	if !r.IsZero() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

func pow10(exp uint) decimal.Decimal {
	return decimal.New(1, int32(exp))
}
