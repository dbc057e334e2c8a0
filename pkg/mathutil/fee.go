package mathutil

import (
	"github.com/shopspring/decimal"
)

// TenThousands is the denominator for fees expressed in basis points.
var TenThousands = decimal.NewFromInt(10000)

// LessFee splits an amount into the net amount and the calculated fee, given
// a fee expressed in basis points (ie. 0.25% = 25). The fee is floored, the
// net amount absorbs the remainder.
func LessFee(amount decimal.Decimal, feeAsBasisPoint uint32) (net, calculatedFee decimal.Decimal) {
	calculatedFee = amount.Mul(decimal.NewFromInt(int64(feeAsBasisPoint))).
		Div(TenThousands).Floor()
	net = amount.Sub(calculatedFee)
	return
}

// GrossFromNet returns the smallest gross amount that still nets the given
// amount after subtracting a fee of feeAsBasisPoint, ie. the inverse of
// LessFee rounded up so the pool is never short. Used when pricing reverse
// swaps.
func GrossFromNet(net decimal.Decimal, feeAsBasisPoint uint32) (gross, calculatedFee decimal.Decimal) {
	denominator := TenThousands.Sub(decimal.NewFromInt(int64(feeAsBasisPoint)))
	gross = net.Mul(TenThousands).Div(denominator).Ceil()
	calculatedFee = gross.Sub(net)
	return
}

// FeeShare returns the portion of an already calculated fee that belongs to
// the maker, given the maker share expressed in basis points of the fee
// itself. The share is floored in favor of the pool.
func FeeShare(fee decimal.Decimal, shareAsBasisPoint uint32) decimal.Decimal {
	return fee.Mul(decimal.NewFromInt(int64(shareAsBasisPoint))).
		Div(TenThousands).Floor()
}
