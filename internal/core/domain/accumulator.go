package domain

import (
	"github.com/shopspring/decimal"
)

// CumulativePrice is the time-weighted price sum of one ordered asset pair:
// how much quote asset one base asset has been worth, integrated over time.
type CumulativePrice struct {
	BaseAsset  string
	QuoteAsset string
	Value      decimal.Decimal
}

// Observation is a snapshot of all cumulative price sums at a given time.
// Pools keep a bounded history of observations so that TWAP queries can
// interpolate between the two snapshots bracketing any timestamp.
type Observation struct {
	Timestamp int64
	Prices    []CumulativePrice
}

// accumulate advances every cumulative price sum by the elapsed time since
// the last update, using the instantaneous spot prices of the current (ie.
// pre-change) reserves, then records an observation. It's called by every
// reserve-changing operation before the change applies. Multiple operations
// at the same timestamp leave the accumulators unchanged.
func (p *Pool) accumulate(now int64) {
	if p.LastUpdateTime == 0 {
		p.LastUpdateTime = now
		p.CumulativePrices = p.zeroCumulativePrices()
		p.recordObservation(now)
		return
	}

	elapsed := now - p.LastUpdateTime
	if elapsed <= 0 {
		return
	}

	elapsedDec := decimal.NewFromInt(elapsed)
	f := p.Formula()
	for i := range p.CumulativePrices {
		cp := &p.CumulativePrices[i]
		iIn := p.assetIndex(cp.BaseAsset)
		iOut := p.assetIndex(cp.QuoteAsset)
		spot, err := f.SpotPrice(p.pricingOpts(now, iIn, iOut))
		if err != nil {
			// A drained side has no defined price, the pair simply
			// stops accumulating until liquidity returns.
			continue
		}
		cp.Value = cp.Value.Add(spot.Mul(elapsedDec))
	}

	p.LastUpdateTime = now
	p.recordObservation(now)
}

// CumulativePriceAt returns the cumulative price sum of the pair at the
// given timestamp, linearly interpolated between the two stored observations
// bracketing it. Timestamps after the last reserve change extrapolate with
// the current spot price, since the price has been constant since then.
func (p *Pool) CumulativePriceAt(baseAsset, quoteAsset string, at int64) (decimal.Decimal, error) {
	if _, _, err := p.pairIndices(baseAsset, quoteAsset); err != nil {
		return decimal.Zero, err
	}
	if len(p.Observations) == 0 {
		return decimal.Zero, ErrPriceHistoryTooShort
	}

	if at >= p.LastUpdateTime {
		current := p.cumulativeValue(baseAsset, quoteAsset)
		if at == p.LastUpdateTime {
			return current, nil
		}
		spot, err := p.Formula().SpotPrice(p.pricingOpts(
			at, p.assetIndex(baseAsset), p.assetIndex(quoteAsset),
		))
		if err != nil {
			return decimal.Zero, swapError(err)
		}
		return current.Add(spot.Mul(decimal.NewFromInt(at - p.LastUpdateTime))), nil
	}

	if at < p.Observations[0].Timestamp {
		return decimal.Zero, ErrPriceHistoryTooShort
	}

	for i := len(p.Observations) - 1; i > 0; i-- {
		older, newer := p.Observations[i-1], p.Observations[i]
		if at > newer.Timestamp || at < older.Timestamp {
			continue
		}
		v0 := observedValue(older, baseAsset, quoteAsset)
		v1 := observedValue(newer, baseAsset, quoteAsset)
		if at == older.Timestamp {
			return v0, nil
		}
		if at == newer.Timestamp {
			return v1, nil
		}
		window := decimal.NewFromInt(newer.Timestamp - older.Timestamp)
		elapsed := decimal.NewFromInt(at - older.Timestamp)
		return v0.Add(v1.Sub(v0).Mul(elapsed).Div(window)), nil
	}
	return decimal.Zero, ErrPriceHistoryTooShort
}

// TWAP returns the time-weighted average price of the pair over the window
// ending now: the cumulative price growth divided by the window length.
func (p *Pool) TWAP(baseAsset, quoteAsset string, window, now int64) (decimal.Decimal, error) {
	if window <= 0 || now-window < 0 {
		return decimal.Zero, ErrPriceHistoryTooShort
	}
	cumNow, err := p.CumulativePriceAt(baseAsset, quoteAsset, now)
	if err != nil {
		return decimal.Zero, err
	}
	cumThen, err := p.CumulativePriceAt(baseAsset, quoteAsset, now-window)
	if err != nil {
		return decimal.Zero, err
	}
	return cumNow.Sub(cumThen).Div(decimal.NewFromInt(window)), nil
}

func (p *Pool) zeroCumulativePrices() []CumulativePrice {
	prices := make([]CumulativePrice, 0, len(p.Assets)*(len(p.Assets)-1))
	for _, base := range p.Assets {
		for _, quote := range p.Assets {
			if base.Asset == quote.Asset {
				continue
			}
			prices = append(prices, CumulativePrice{
				BaseAsset:  base.Asset,
				QuoteAsset: quote.Asset,
				Value:      decimal.Zero,
			})
		}
	}
	return prices
}

func (p *Pool) recordObservation(now int64) {
	snapshot := make([]CumulativePrice, len(p.CumulativePrices))
	copy(snapshot, p.CumulativePrices)
	p.Observations = append(p.Observations, Observation{
		Timestamp: now,
		Prices:    snapshot,
	})
	if len(p.Observations) > MaxObservations {
		p.Observations = p.Observations[len(p.Observations)-MaxObservations:]
	}
}

func (p *Pool) cumulativeValue(baseAsset, quoteAsset string) decimal.Decimal {
	for _, cp := range p.CumulativePrices {
		if cp.BaseAsset == baseAsset && cp.QuoteAsset == quoteAsset {
			return cp.Value
		}
	}
	return decimal.Zero
}

func observedValue(obs Observation, baseAsset, quoteAsset string) decimal.Decimal {
	for _, cp := range obs.Prices {
		if cp.BaseAsset == baseAsset && cp.QuoteAsset == quoteAsset {
			return cp.Value
		}
	}
	return decimal.Zero
}
