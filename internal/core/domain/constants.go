package domain

import (
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/pricing"
)

const (
	CurveConstantProduct = pricing.ConstantProductType
	CurveStableSwap      = pricing.StableSwapType
	CurveConstantSum     = pricing.ConstantSumType

	// MinPoolAssets and MaxPoolAssets bound the size of the asset list.
	MinPoolAssets = 2
	MaxPoolAssets = 5

	// MaxAssetPrecision is the highest per-asset decimal precision.
	MaxAssetPrecision = 18

	// MinRampDuration is the shortest accepted amplification ramp window in
	// seconds.
	MinRampDuration = 3600

	// MaxObservations caps the price observation history kept per pool.
	MaxObservations = 64
)

const (
	TradeStatusCodeProposed = iota
	TradeStatusCodeSettled
	TradeStatusCodeFailed
)

var (
	// MinimumLiquidity is the share amount permanently locked on the first
	// deposit, preventing share-price manipulation on an empty pool.
	MinimumLiquidity = decimal.NewFromInt(1000)

	// DefaultMaxSpread is the spread fraction beyond which a swap aborts
	// when the trader doesn't supply their own bound.
	DefaultMaxSpread = decimal.NewFromFloat(0.5)

	// SpreadAlarmThreshold is the spread fraction above which previews are
	// flagged to clients.
	SpreadAlarmThreshold = decimal.NewFromFloat(0.005)
)
