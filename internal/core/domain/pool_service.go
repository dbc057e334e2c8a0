package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/dexpool-network/poold/pkg/mathutil"
	"github.com/dexpool-network/poold/pkg/pricing"
)

// SwapPreview is the outcome of pricing a swap without executing it.
type SwapPreview struct {
	// AskAmount is the final amount released to the trader, after
	// commission.
	AskAmount decimal.Decimal
	// OfferAmount is the amount entering the pool. On reverse previews
	// it's the computed required offer.
	OfferAmount decimal.Decimal
	// SpreadAmount is the execution-price degradation relative to the
	// pre-trade spot price, in ask-asset units, before commission.
	SpreadAmount decimal.Decimal
	// CommissionAmount is the total fee taken from the raw ask amount.
	CommissionAmount decimal.Decimal
	// MakerAmount is the portion of the commission leaving the pool for
	// the fee collector. The remainder stays in the reserves.
	MakerAmount decimal.Decimal
	// SpreadAlarm is set when the spread fraction exceeds the alarm
	// threshold surfaced to clients.
	SpreadAlarm bool

	// rawAskAmount is the curve output before commission, needed by the
	// caller to update reserves.
	rawAskAmount decimal.Decimal
}

// RawAskAmount returns the curve output before commission deduction.
func (p SwapPreview) RawAskAmount() decimal.Decimal {
	return p.rawAskAmount
}

// SpreadFraction returns the spread relative to the spot-implied output.
func (p SwapPreview) SpreadFraction() decimal.Decimal {
	ideal := p.rawAskAmount.Add(p.SpreadAmount)
	if !ideal.IsPositive() {
		return decimal.Zero
	}
	return p.SpreadAmount.Div(ideal)
}

// Preview prices a forward swap: offer amount in, ask amount out. The pool
// is not mutated.
func (p *Pool) Preview(now int64, offer AssetAmount, askAsset string) (*SwapPreview, error) {
	iIn, iOut, err := p.pairIndices(offer.Asset, askAsset)
	if err != nil {
		return nil, err
	}
	amountIn, err := checkAmount(offer.Amount)
	if err != nil {
		return nil, err
	}

	opts := p.pricingOpts(now, iIn, iOut)
	f := p.Formula()

	spot, err := f.SpotPrice(opts)
	if err != nil {
		return nil, swapError(err)
	}

	tp := p.targetPrecision()
	inNorm := mathutil.Normalize(amountIn, p.Assets[iIn].Precision, tp)

	rawOutNorm, err := f.OutGivenIn(opts, inNorm)
	if err != nil {
		return nil, swapError(err)
	}

	spreadNorm := inNorm.Mul(spot).Sub(rawOutNorm)
	if spreadNorm.IsNegative() {
		spreadNorm = decimal.Zero
	}

	rawOut := mathutil.Denormalize(rawOutNorm, p.Assets[iOut].Precision, tp)
	askAmount, commission := mathutil.LessFee(rawOut, p.PercentageFee)
	if !askAmount.IsPositive() {
		return nil, ErrInsufficientLiquidity
	}
	makerAmount := mathutil.FeeShare(commission, p.MakerFee)
	spread := mathutil.Denormalize(spreadNorm, p.Assets[iOut].Precision, tp)

	preview := &SwapPreview{
		AskAmount:        askAmount,
		OfferAmount:      amountIn,
		SpreadAmount:     spread,
		CommissionAmount: commission,
		MakerAmount:      makerAmount,
		rawAskAmount:     rawOut,
	}
	preview.SpreadAlarm = preview.SpreadFraction().GreaterThan(SpreadAlarmThreshold)
	return preview, nil
}

// PreviewReverse prices a reverse swap: the offer amount required for the
// trader to receive the desired ask amount. Read-only, used for simulation
// queries.
func (p *Pool) PreviewReverse(now int64, ask AssetAmount, offerAsset string) (*SwapPreview, error) {
	iIn, iOut, err := p.pairIndices(offerAsset, ask.Asset)
	if err != nil {
		return nil, err
	}
	askAmount, err := checkAmount(ask.Amount)
	if err != nil {
		return nil, err
	}

	// The commission is taken from the raw curve output, so the curve must
	// release the gross amount.
	rawOut, commission := mathutil.GrossFromNet(askAmount, p.PercentageFee)

	opts := p.pricingOpts(now, iIn, iOut)
	f := p.Formula()

	spot, err := f.SpotPrice(opts)
	if err != nil {
		return nil, swapError(err)
	}

	tp := p.targetPrecision()
	rawOutNorm := mathutil.Normalize(rawOut, p.Assets[iOut].Precision, tp)

	inNorm, err := f.InGivenOut(opts, rawOutNorm)
	if err != nil {
		return nil, swapError(err)
	}

	spreadNorm := inNorm.Mul(spot).Sub(rawOutNorm)
	if spreadNorm.IsNegative() {
		spreadNorm = decimal.Zero
	}

	offerAmount := mathutil.DenormalizeCeil(inNorm, p.Assets[iIn].Precision, tp)
	spread := mathutil.Denormalize(spreadNorm, p.Assets[iOut].Precision, tp)
	makerAmount := mathutil.FeeShare(commission, p.MakerFee)

	preview := &SwapPreview{
		AskAmount:        askAmount,
		OfferAmount:      offerAmount,
		SpreadAmount:     spread,
		CommissionAmount: commission,
		MakerAmount:      makerAmount,
		rawAskAmount:     rawOut,
	}
	preview.SpreadAlarm = preview.SpreadFraction().GreaterThan(SpreadAlarmThreshold)
	return preview, nil
}

// ApplySwap executes a forward swap against the pool: it prices the trade,
// enforces the trader's belief-price and max-spread guards, advances the
// price accumulators with the pre-trade reserves and finally mutates the
// reserves. The maker amount is reported to the caller, which is responsible
// for routing it to the fee collector. Any error leaves the pool untouched.
func (p *Pool) ApplySwap(
	now int64, offer AssetAmount, askAsset string,
	beliefPrice, maxSpread *decimal.Decimal,
) (*SwapPreview, error) {
	if !p.IsTradable() {
		return nil, ErrPoolNotTradable
	}

	preview, err := p.Preview(now, offer, askAsset)
	if err != nil {
		return nil, err
	}

	if err := assertSpreadWithinBounds(preview, beliefPrice, maxSpread); err != nil {
		return nil, err
	}

	iIn := p.assetIndex(offer.Asset)
	iOut := p.assetIndex(askAsset)

	p.accumulate(now)

	p.Assets[iIn].Reserve = p.Assets[iIn].Reserve.Add(preview.OfferAmount)
	// The retained part of the commission stays in the reserves, only the
	// final ask amount and the maker share leave the pool.
	p.Assets[iOut].Reserve = p.Assets[iOut].Reserve.
		Sub(preview.AskAmount).Sub(preview.MakerAmount)

	return preview, nil
}

// Provide deposits the given amounts and returns the amount of share tokens
// minted. The first deposit permanently locks MinimumLiquidity shares.
// Constant-product pools require a deposit for every asset and enforce the
// optional slippage tolerance against the pool ratio; stableswap pools
// accept imbalanced (including single-asset) deposits and charge an
// imbalance fee instead. Any error leaves the pool untouched.
func (p *Pool) Provide(
	now int64, deposits []AssetAmount, slippageTolerance *decimal.Decimal,
) (decimal.Decimal, error) {
	amounts, err := p.depositVector(deposits)
	if err != nil {
		return decimal.Zero, err
	}

	if p.IsEmpty() {
		return p.provideInitial(now, amounts)
	}

	switch p.CurveType {
	case CurveConstantProduct:
		return p.provideBalanced(now, amounts, slippageTolerance)
	default:
		return p.provideByInvariant(now, amounts)
	}
}

// Withdraw burns the given share amount and returns the proportional amount
// of each reserve, floor-rounded. The locked minimum liquidity is never
// redeemable. Any error leaves the pool untouched.
func (p *Pool) Withdraw(
	now int64, shareAmount decimal.Decimal, minAssetsToReceive []AssetAmount,
) ([]AssetAmount, error) {
	shares, err := checkAmount(shareAmount)
	if err != nil {
		return nil, err
	}
	redeemable := p.TotalShares.Sub(MinimumLiquidity)
	if shares.GreaterThan(redeemable) {
		return nil, ErrInvalidShareAmount
	}

	minByAsset := make(map[string]decimal.Decimal, len(minAssetsToReceive))
	for _, min := range minAssetsToReceive {
		if p.assetIndex(min.Asset) < 0 {
			return nil, ErrInvalidAssetPair
		}
		minByAsset[min.Asset] = min.Amount
	}

	returned := make([]AssetAmount, len(p.Assets))
	for i, a := range p.Assets {
		amount, err := mathutil.DivFloor(a.Reserve.Mul(shares), p.TotalShares)
		if err != nil {
			return nil, err
		}
		if min, ok := minByAsset[a.Asset]; ok && amount.LessThan(min) {
			return nil, ErrMinimumReceiveNotMet
		}
		returned[i] = AssetAmount{Asset: a.Asset, Amount: amount}
	}

	p.accumulate(now)

	for i := range p.Assets {
		p.Assets[i].Reserve = p.Assets[i].Reserve.Sub(returned[i].Amount)
	}
	p.TotalShares = p.TotalShares.Sub(shares)

	return returned, nil
}

// VirtualPrice returns the invariant value per outstanding share, a
// monotonically increasing measure of accrued fees on stableswap pools.
func (p *Pool) VirtualPrice(now int64) (decimal.Decimal, error) {
	if p.IsEmpty() {
		return decimal.Zero, ErrInsufficientLiquidity
	}
	d, err := p.Formula().Invariant(p.invariantOpts(now))
	if err != nil {
		return decimal.Zero, swapError(err)
	}
	return d.Div(p.TotalShares), nil
}

func (p *Pool) provideInitial(now int64, amounts []decimal.Decimal) (decimal.Decimal, error) {
	tp := p.targetPrecision()
	normalized := make([]decimal.Decimal, len(amounts))
	for i, amt := range amounts {
		if !amt.IsPositive() {
			return decimal.Zero, ErrInvalidAmount
		}
		normalized[i] = mathutil.Normalize(amt, p.Assets[i].Precision, tp)
	}

	var minted decimal.Decimal
	switch p.CurveType {
	case CurveConstantProduct:
		// Geometric mean of the two deposits.
		sqrt, err := mathutil.IntegerSqrt(normalized[0].Mul(normalized[1]))
		if err != nil {
			return decimal.Zero, err
		}
		minted = sqrt
	default:
		d, err := p.Formula().Invariant(pricing.Opts{
			Reserves: normalized, OutIndex: 1, Amp: p.EffectiveAmp(now),
		})
		if err != nil {
			return decimal.Zero, swapError(err)
		}
		minted = d.Floor()
	}

	shares := minted.Sub(MinimumLiquidity)
	if !shares.IsPositive() {
		return decimal.Zero, ErrInitialDepositTooLow
	}

	p.accumulate(now)
	for i := range p.Assets {
		p.Assets[i].Reserve = amounts[i]
	}
	p.TotalShares = minted
	return shares, nil
}

func (p *Pool) provideBalanced(
	now int64, amounts []decimal.Decimal, slippageTolerance *decimal.Decimal,
) (decimal.Decimal, error) {
	tp := p.targetPrecision()

	var minRatio decimal.Decimal
	for i, amt := range amounts {
		if !amt.IsPositive() {
			return decimal.Zero, ErrInvalidAmount
		}
		reserve := mathutil.Normalize(p.Assets[i].Reserve, p.Assets[i].Precision, tp)
		ratio, err := mathutil.Div(mathutil.Normalize(amt, p.Assets[i].Precision, tp), reserve)
		if err != nil {
			return decimal.Zero, err
		}
		if i == 0 || ratio.LessThan(minRatio) {
			minRatio = ratio
		}
	}

	if slippageTolerance != nil {
		if err := assertDepositWithinTolerance(p, amounts, *slippageTolerance); err != nil {
			return decimal.Zero, err
		}
	}

	shares := p.TotalShares.Mul(minRatio).Floor()
	if !shares.IsPositive() {
		return decimal.Zero, ErrDepositTooLow
	}

	p.accumulate(now)
	// Amounts exceeding the proportional ratio are consumed anyway and stay
	// in the pool in favor of all share holders.
	for i := range p.Assets {
		p.Assets[i].Reserve = p.Assets[i].Reserve.Add(amounts[i])
	}
	p.TotalShares = p.TotalShares.Add(shares)
	return shares, nil
}

// provideByInvariant mints shares proportionally to the invariant growth the
// deposit causes. Stableswap pools charge an imbalance fee on the deviation
// from the ideal balanced deposit, as if the excess were swapped first.
func (p *Pool) provideByInvariant(now int64, amounts []decimal.Decimal) (decimal.Decimal, error) {
	tp := p.targetPrecision()
	amp := p.EffectiveAmp(now)
	f := p.Formula()

	oldReserves := make([]decimal.Decimal, len(p.Assets))
	newReserves := make([]decimal.Decimal, len(p.Assets))
	for i, a := range p.Assets {
		oldReserves[i] = mathutil.Normalize(a.Reserve, a.Precision, tp)
		newReserves[i] = oldReserves[i].Add(mathutil.Normalize(amounts[i], a.Precision, tp))
	}

	d0, err := f.Invariant(pricing.Opts{Reserves: oldReserves, OutIndex: 1, Amp: amp})
	if err != nil {
		return decimal.Zero, swapError(err)
	}
	d1, err := f.Invariant(pricing.Opts{Reserves: newReserves, OutIndex: 1, Amp: amp})
	if err != nil {
		return decimal.Zero, swapError(err)
	}
	if d1.LessThanOrEqual(d0) {
		return decimal.Zero, ErrDepositTooLow
	}

	dMinted := d1
	if p.CurveType == CurveStableSwap && p.PercentageFee > 0 {
		adjusted, err := p.chargeImbalanceFee(oldReserves, newReserves, d0, d1)
		if err != nil {
			return decimal.Zero, err
		}
		dMinted, err = f.Invariant(pricing.Opts{Reserves: adjusted, OutIndex: 1, Amp: amp})
		if err != nil {
			return decimal.Zero, swapError(err)
		}
		if dMinted.LessThanOrEqual(d0) {
			return decimal.Zero, ErrDepositTooLow
		}
	}

	shares, err := mathutil.DivFloor(p.TotalShares.Mul(dMinted.Sub(d0)), d0)
	if err != nil {
		return decimal.Zero, err
	}
	if !shares.IsPositive() {
		return decimal.Zero, ErrDepositTooLow
	}

	p.accumulate(now)
	// The imbalance fee only reduces the minted shares, all deposited
	// tokens stay in the pool.
	for i := range p.Assets {
		p.Assets[i].Reserve = p.Assets[i].Reserve.Add(amounts[i])
	}
	p.TotalShares = p.TotalShares.Add(shares)
	return shares, nil
}

// chargeImbalanceFee returns the new reserves reduced by the imbalance fee:
// fee·n/(4·(n-1)) basis points on each asset's deviation from the ideal
// balanced deposit. Floor rounding throughout, in favor of the pool.
func (p *Pool) chargeImbalanceFee(
	oldReserves, newReserves []decimal.Decimal, d0, d1 decimal.Decimal,
) ([]decimal.Decimal, error) {
	n := int64(len(p.Assets))
	feeBps := decimal.NewFromInt(int64(p.PercentageFee)).
		Mul(decimal.NewFromInt(n)).
		Div(decimal.NewFromInt(4 * (n - 1)))

	adjusted := make([]decimal.Decimal, len(newReserves))
	for i := range newReserves {
		ideal, err := mathutil.DivFloor(d1.Mul(oldReserves[i]), d0)
		if err != nil {
			return nil, err
		}
		diff := newReserves[i].Sub(ideal).Abs()
		fee := mathutil.MulFloor(diff, feeBps.Div(mathutil.TenThousands))
		adjusted[i] = newReserves[i].Sub(fee)
		if !adjusted[i].IsPositive() {
			return nil, ErrDepositTooLow
		}
	}
	return adjusted, nil
}

func (p *Pool) depositVector(deposits []AssetAmount) ([]decimal.Decimal, error) {
	if len(deposits) == 0 {
		return nil, ErrInvalidAmount
	}
	amounts := make([]decimal.Decimal, len(p.Assets))
	for i := range amounts {
		amounts[i] = decimal.Zero
	}
	anyPositive := false
	for _, dep := range deposits {
		i := p.assetIndex(dep.Asset)
		if i < 0 {
			return nil, ErrInvalidAssetPair
		}
		amount := dep.Amount
		if amount.IsNegative() || !amount.Equal(amount.Floor()) {
			return nil, ErrInvalidAmount
		}
		if amount.GreaterThan(mathutil.MaxAmount) {
			return nil, mathutil.ErrOverflow
		}
		amounts[i] = amounts[i].Add(amount)
		anyPositive = anyPositive || amount.IsPositive()
	}
	if !anyPositive {
		return nil, ErrInvalidAmount
	}
	return amounts, nil
}

func (p *Pool) pairIndices(offerAsset, askAsset string) (int, int, error) {
	iIn := p.assetIndex(offerAsset)
	iOut := p.assetIndex(askAsset)
	if iIn < 0 || iOut < 0 || iIn == iOut {
		return 0, 0, ErrInvalidAssetPair
	}
	return iIn, iOut, nil
}

func (p *Pool) pricingOpts(now int64, iIn, iOut int) pricing.Opts {
	tp := p.targetPrecision()
	reserves := make([]decimal.Decimal, len(p.Assets))
	for i, a := range p.Assets {
		reserves[i] = mathutil.Normalize(a.Reserve, a.Precision, tp)
	}
	return pricing.Opts{
		Reserves: reserves,
		InIndex:  iIn,
		OutIndex: iOut,
		Amp:      p.EffectiveAmp(now),
	}
}

func (p *Pool) invariantOpts(now int64) pricing.Opts {
	return p.pricingOpts(now, 0, 1)
}

func assertSpreadWithinBounds(
	preview *SwapPreview, beliefPrice, maxSpread *decimal.Decimal,
) error {
	bound := DefaultMaxSpread
	if maxSpread != nil {
		if maxSpread.IsNegative() || maxSpread.GreaterThan(decimal.NewFromInt(1)) {
			return ErrMaxSpreadExceeded
		}
		bound = *maxSpread
	}

	// Belief price and max spread are independent guards: the belief price
	// shifts the reference output the bound applies to, it never changes
	// the bound itself.
	if beliefPrice != nil && beliefPrice.IsPositive() {
		expected := preview.OfferAmount.Mul(*beliefPrice).Floor()
		minimum := expected.Mul(decimal.NewFromInt(1).Sub(bound)).Floor()
		if preview.AskAmount.LessThan(minimum) {
			return ErrMaxSpreadExceeded
		}
		return nil
	}

	if preview.SpreadFraction().GreaterThan(bound) {
		return ErrMaxSpreadExceeded
	}
	return nil
}

func assertDepositWithinTolerance(
	p *Pool, amounts []decimal.Decimal, tolerance decimal.Decimal,
) error {
	if tolerance.IsNegative() || tolerance.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrSlippageExceeded
	}

	tp := p.targetPrecision()
	depositRatio, err := mathutil.Div(
		mathutil.Normalize(amounts[0], p.Assets[0].Precision, tp),
		mathutil.Normalize(amounts[1], p.Assets[1].Precision, tp),
	)
	if err != nil {
		return err
	}
	poolRatio, err := mathutil.Div(
		mathutil.Normalize(p.Assets[0].Reserve, p.Assets[0].Precision, tp),
		mathutil.Normalize(p.Assets[1].Reserve, p.Assets[1].Precision, tp),
	)
	if err != nil {
		return err
	}

	deviation := depositRatio.Sub(poolRatio).Abs().Div(poolRatio)
	if deviation.GreaterThan(tolerance) {
		return ErrSlippageExceeded
	}
	return nil
}

func checkAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Floor()) {
		return decimal.Zero, ErrInvalidAmount
	}
	checked, err := mathutil.CheckedAmount(amount)
	if err != nil {
		return decimal.Zero, err
	}
	return checked, nil
}

// swapError maps formula-level failures onto the domain taxonomy: a curve
// refusing to price a trade means the pool cannot satisfy it. Arithmetic and
// convergence failures propagate verbatim.
func swapError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrAmountTooLow),
		errors.Is(err, pricing.ErrAmountTooBig),
		errors.Is(err, pricing.ErrBalanceTooLow):
		return ErrInsufficientLiquidity
	default:
		return err
	}
}
