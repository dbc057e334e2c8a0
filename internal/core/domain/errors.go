package domain

import "errors"

var (
	// ErrInsufficientLiquidity is thrown when the pool reserves cannot
	// satisfy the requested output.
	ErrInsufficientLiquidity = errors.New("pool has insufficient liquidity")
	// ErrMaxSpreadExceeded is thrown when the executed price degrades beyond
	// the trader's spread bound.
	ErrMaxSpreadExceeded = errors.New("max spread exceeded")
	// ErrSlippageExceeded is thrown when a deposit deviates from the pool
	// ratio beyond the provided tolerance.
	ErrSlippageExceeded = errors.New("slippage tolerance exceeded")
	// ErrMinimumReceiveNotMet is thrown when a withdrawal returns less than
	// the caller's per-asset minimum.
	ErrMinimumReceiveNotMet = errors.New("minimum receive amount not met")
	// ErrInvalidAssetPair is thrown when an asset is not part of the pool.
	ErrInvalidAssetPair = errors.New("asset is not part of the pool")
	// ErrUnauthorized is thrown when the caller lacks permission for a
	// config change.
	ErrUnauthorized = errors.New("caller is not the pool admin")

	// ErrPoolNotTradable is thrown when swapping against a closed pool.
	ErrPoolNotTradable = errors.New("pool is closed for trading")
	// ErrPoolMustBeClosed is thrown when changing config of an open pool.
	ErrPoolMustBeClosed = errors.New("pool must be closed for this operation")

	// ErrInvalidAmount is thrown when an amount is not a positive integer
	// within 128 bits.
	ErrInvalidAmount = errors.New("amount is not valid")
	// ErrInitialDepositTooLow is thrown when the first deposit doesn't cover
	// the locked minimum liquidity.
	ErrInitialDepositTooLow = errors.New("initial deposit below minimum liquidity")
	// ErrDepositTooLow is thrown when a deposit mints no shares.
	ErrDepositTooLow = errors.New("deposit too low to mint shares")
	// ErrInvalidShareAmount is thrown when burning more shares than the
	// redeemable supply.
	ErrInvalidShareAmount = errors.New("share amount exceeds redeemable supply")

	// ErrPoolInvalidAssets ...
	ErrPoolInvalidAssets = errors.New("pool asset list is not valid")
	// ErrPoolInvalidPrecision ...
	ErrPoolInvalidPrecision = errors.New("asset precision is not valid")
	// ErrPoolInvalidPercentageFee ...
	ErrPoolInvalidPercentageFee = errors.New("percentage fee must be in range [0, 10000)")
	// ErrPoolInvalidMakerFee ...
	ErrPoolInvalidMakerFee = errors.New("maker fee must be in range [0, 10000]")
	// ErrPoolInvalidCurve ...
	ErrPoolInvalidCurve = errors.New("curve type is not valid")
	// ErrPoolInvalidAmp ...
	ErrPoolInvalidAmp = errors.New("amplification coefficient out of range")
	// ErrPoolInvalidRamp ...
	ErrPoolInvalidRamp = errors.New("amplification ramp window is not valid")
	// ErrPoolInvalidAdmin ...
	ErrPoolInvalidAdmin = errors.New("pool admin address must not be empty")

	// ErrPriceHistoryTooShort is thrown when a TWAP query points before the
	// oldest stored observation.
	ErrPriceHistoryTooShort = errors.New("price history does not cover the requested time")

	// ErrTradeMustBeProposed is thrown when settling or failing a trade
	// that already reached a final status.
	ErrTradeMustBeProposed = errors.New("trade must be in proposed status")
)
