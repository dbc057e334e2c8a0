package domain

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/pricing"
	"github.com/dexpool-network/poold/pkg/pricing/formula"
)

// PoolAsset holds one side of the pool: the asset identifier, its decimal
// precision and the current reserve in the asset's smallest unit.
type PoolAsset struct {
	Asset     string
	Precision uint
	Reserve   decimal.Decimal
}

// AssetAmount pairs an asset identifier with an amount. It's the unit of
// every deposit, withdrawal and swap request.
type AssetAmount struct {
	Asset  string
	Amount decimal.Decimal
}

// AmpRamp holds the amplification coefficient of a stableswap pool, possibly
// under a time-bounded ramp. The effective value at any time is a pure linear
// interpolation over the window, there is no ticking state.
type AmpRamp struct {
	Initial   decimal.Decimal
	Future    decimal.Decimal
	StartTime int64
	StopTime  int64
}

// Resolve returns the effective amplification coefficient at the given time.
func (r AmpRamp) Resolve(now int64) decimal.Decimal {
	return formula.ResolveAmp(r.Initial, r.Future, r.StartTime, r.StopTime, now)
}

// Pool defines the persisted state of a deployed pair: reserves, outstanding
// share tokens, curve parameters, fee config and price accumulators. All
// state transitions go through the methods of this entity and are
// all-or-nothing: a returned error means the pool was not touched.
type Pool struct {
	// Id is the stable identifier pools are looked up by.
	Id string
	// Name of the pool, derived from the asset list.
	Name string
	// Assets is the ordered asset list with reserves, 2 to 5 elements.
	Assets []PoolAsset
	// TotalShares is the outstanding amount of liquidity-share tokens,
	// including the permanently locked minimum.
	TotalShares decimal.Decimal
	// CurveType selects the pricing formula.
	CurveType int
	// Amp holds the stableswap amplification ramp, nil for other curves.
	Amp *AmpRamp
	// PercentageFee is the total swap fee in basis points of the trade.
	PercentageFee uint32
	// MakerFee is the share of the fee routed to the fee collector,
	// expressed in basis points of the fee itself.
	MakerFee uint32
	// Admin is the only address allowed to change the pool config.
	Admin string
	// Tradable reports whether the pool is open for swaps.
	Tradable bool
	// CumulativePrices holds one time-weighted price sum per ordered asset
	// pair.
	CumulativePrices []CumulativePrice
	// LastUpdateTime is the timestamp of the last accumulator update.
	LastUpdateTime int64
	// Observations is the bounded history of accumulator snapshots used to
	// answer interpolated TWAP queries.
	Observations []Observation
}

// NewPool returns a validated pool with zero reserves and zero shares. The
// amp argument is only read for stableswap pools.
func NewPool(
	assets []PoolAsset, curveType int, amp decimal.Decimal,
	percentageFee, makerFee uint32, admin string,
) (*Pool, error) {
	if len(assets) < MinPoolAssets || len(assets) > MaxPoolAssets {
		return nil, ErrPoolInvalidAssets
	}
	seen := make(map[string]struct{}, len(assets))
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		if !isValidAsset(a.Asset) {
			return nil, ErrPoolInvalidAssets
		}
		if _, ok := seen[a.Asset]; ok {
			return nil, ErrPoolInvalidAssets
		}
		seen[a.Asset] = struct{}{}
		if a.Precision > MaxAssetPrecision {
			return nil, ErrPoolInvalidPrecision
		}
		if !a.Reserve.IsZero() {
			return nil, ErrPoolInvalidAssets
		}
		names = append(names, a.Asset)
	}
	if percentageFee >= 10000 {
		return nil, ErrPoolInvalidPercentageFee
	}
	if makerFee > 10000 {
		return nil, ErrPoolInvalidMakerFee
	}
	if admin == "" {
		return nil, ErrPoolInvalidAdmin
	}

	var ampRamp *AmpRamp
	switch curveType {
	case CurveConstantProduct:
		if len(assets) != 2 {
			return nil, ErrPoolInvalidAssets
		}
	case CurveConstantSum:
		if len(assets) != 2 {
			return nil, ErrPoolInvalidAssets
		}
	case CurveStableSwap:
		if amp.LessThan(formula.MinAmp) || amp.GreaterThan(formula.MaxAmp) {
			return nil, ErrPoolInvalidAmp
		}
		ampRamp = &AmpRamp{Initial: amp, Future: amp}
	default:
		return nil, ErrPoolInvalidCurve
	}

	poolAssets := make([]PoolAsset, len(assets))
	for i, a := range assets {
		poolAssets[i] = PoolAsset{
			Asset:     a.Asset,
			Precision: a.Precision,
			Reserve:   decimal.Zero,
		}
	}

	return &Pool{
		Id:            uuid.New().String(),
		Name:          strings.Join(names, "/"),
		Assets:        poolAssets,
		TotalShares:   decimal.Zero,
		CurveType:     curveType,
		Amp:           ampRamp,
		PercentageFee: percentageFee,
		MakerFee:      makerFee,
		Admin:         admin,
	}, nil
}

// IsTradable returns true if the pool is open for swaps.
func (p *Pool) IsTradable() bool {
	return p.Tradable
}

// IsEmpty returns true if the pool holds no liquidity. An empty pool has
// zero total shares and zero reserves, the two always go together.
func (p *Pool) IsEmpty() bool {
	return p.TotalShares.IsZero()
}

// MakeTradable opens the pool for swaps. An empty pool cannot be opened.
func (p *Pool) MakeTradable() error {
	if p.IsEmpty() {
		return ErrInsufficientLiquidity
	}
	p.Tradable = true
	return nil
}

// MakeNotTradable closes the pool for swaps.
func (p *Pool) MakeNotTradable() {
	p.Tradable = false
}

// ChangeFees updates the fee config. The pool must be closed.
func (p *Pool) ChangeFees(percentageFee, makerFee uint32) error {
	if p.IsTradable() {
		return ErrPoolMustBeClosed
	}
	if percentageFee >= 10000 {
		return ErrPoolInvalidPercentageFee
	}
	if makerFee > 10000 {
		return ErrPoolInvalidMakerFee
	}
	p.PercentageFee = percentageFee
	p.MakerFee = makerFee
	return nil
}

// StartAmpRamp schedules a linear amplification change over the given
// window. The current effective value becomes the new starting point.
func (p *Pool) StartAmpRamp(future decimal.Decimal, startTime, stopTime, now int64) error {
	if p.CurveType != CurveStableSwap {
		return ErrPoolInvalidCurve
	}
	if future.LessThan(formula.MinAmp) || future.GreaterThan(formula.MaxAmp) {
		return ErrPoolInvalidAmp
	}
	if startTime < now || stopTime-startTime < MinRampDuration {
		return ErrPoolInvalidRamp
	}

	p.Amp = &AmpRamp{
		Initial:   p.Amp.Resolve(now),
		Future:    future,
		StartTime: startTime,
		StopTime:  stopTime,
	}
	return nil
}

// StopAmpRamp freezes the amplification coefficient at its current
// effective value.
func (p *Pool) StopAmpRamp(now int64) error {
	if p.CurveType != CurveStableSwap {
		return ErrPoolInvalidCurve
	}
	current := p.Amp.Resolve(now)
	p.Amp = &AmpRamp{Initial: current, Future: current}
	return nil
}

// EffectiveAmp returns the ramp-resolved amplification coefficient, zero for
// non-stableswap pools.
func (p *Pool) EffectiveAmp(now int64) decimal.Decimal {
	if p.Amp == nil {
		return decimal.Zero
	}
	return p.Amp.Resolve(now)
}

// Formula returns the pricing formula matching the pool curve type.
func (p *Pool) Formula() pricing.Formula {
	switch p.CurveType {
	case CurveStableSwap:
		return formula.StableSwap{}
	case CurveConstantSum:
		return formula.ConstantSum{}
	default:
		return formula.ConstantProduct{}
	}
}

// assetIndex returns the position of an asset in the pool list, -1 if the
// asset doesn't belong to the pool.
func (p *Pool) assetIndex(asset string) int {
	for i, a := range p.Assets {
		if a.Asset == asset {
			return i
		}
	}
	return -1
}

// targetPrecision is the common decimal basis reserves are normalized to
// before any invariant math: the highest precision across the pool assets.
func (p *Pool) targetPrecision() uint {
	max := uint(0)
	for _, a := range p.Assets {
		if a.Precision > max {
			max = a.Precision
		}
	}
	return max
}

func isValidAsset(asset string) bool {
	return asset != "" && len(asset) <= 128 && !strings.ContainsAny(asset, " \t\n")
}
