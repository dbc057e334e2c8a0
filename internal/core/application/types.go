package application

import (
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/internal/core/domain"
)

// Clock returns the current time in Unix seconds. The host environment owns
// time, services never read it on their own.
type Clock func() int64

// SwapRequest describes a forward swap to execute against a pool.
type SwapRequest struct {
	PoolId      string
	OfferAsset  string
	OfferAmount decimal.Decimal
	AskAsset    string
	// BeliefPrice is the price (ask per offer unit) the trader quoted
	// against, optional.
	BeliefPrice *decimal.Decimal
	// MaxSpread is the trader's spread bound, optional.
	MaxSpread *decimal.Decimal
	// Receiver of the ask asset, optional.
	Receiver string
}

// SwapResult reports the executed swap terms along with the trade id.
type SwapResult struct {
	TradeId          string
	AskAmount        decimal.Decimal
	SpreadAmount     decimal.Decimal
	CommissionAmount decimal.Decimal
	MakerAmount      decimal.Decimal
	SpreadAlarm      bool
}

// SimulationResult reports a read-only swap preview. Amount is the ask
// amount for forward simulations, the required offer amount for reverse
// ones.
type SimulationResult struct {
	Amount           decimal.Decimal
	SpreadAmount     decimal.Decimal
	CommissionAmount decimal.Decimal
	SpreadAlarm      bool
}

// ProvideRequest describes a liquidity deposit.
type ProvideRequest struct {
	PoolId            string
	Deposits          []domain.AssetAmount
	SlippageTolerance *decimal.Decimal
	Receiver          string
}

// WithdrawRequest describes a liquidity withdrawal.
type WithdrawRequest struct {
	PoolId             string
	ShareAmount        decimal.Decimal
	MinAssetsToReceive []domain.AssetAmount
}

// CreatePoolRequest describes a new pool. Amp is only read for stableswap
// pools.
type CreatePoolRequest struct {
	Assets        []domain.PoolAsset
	CurveType     int
	Amp           decimal.Decimal
	PercentageFee uint32
	MakerFee      uint32
	Admin         string
}

// PoolInfo is the query view of a pool.
type PoolInfo struct {
	Id            string
	Name          string
	Assets        []domain.PoolAsset
	TotalShares   decimal.Decimal
	CurveType     int
	Amp           *domain.AmpRamp
	PercentageFee uint32
	MakerFee      uint32
	Tradable      bool
}

// CumulativePricesInfo is the query view of the price accumulators.
type CumulativePricesInfo struct {
	Prices         []domain.CumulativePrice
	LastUpdateTime int64
}

func poolInfo(pool *domain.Pool) *PoolInfo {
	return &PoolInfo{
		Id:            pool.Id,
		Name:          pool.Name,
		Assets:        pool.Assets,
		TotalShares:   pool.TotalShares,
		CurveType:     pool.CurveType,
		Amp:           pool.Amp,
		PercentageFee: pool.PercentageFee,
		MakerFee:      pool.MakerFee,
		Tradable:      pool.Tradable,
	}
}
