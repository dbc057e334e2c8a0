package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TradeStatus represents the different statuses that a trade can assume.
type TradeStatus struct {
	Code   int
	Failed bool
}

// Trade is the record of a swap executed (or attempted) against a pool. Its
// uuid is the correlation id used by callers that settle asset transfers in
// a separate reply: the trade is stored as proposed when the swap is priced
// and moved to a final status once the transfer outcome is known.
type Trade struct {
	Id               string
	PoolId           string
	OfferAsset       string
	OfferAmount      decimal.Decimal
	AskAsset         string
	AskAmount        decimal.Decimal
	SpreadAmount     decimal.Decimal
	CommissionAmount decimal.Decimal
	MakerAmount      decimal.Decimal
	Receiver         string
	Status           TradeStatus
	FailureReason    string
	CreatedAt        int64
	SettledAt        int64
}

// NewTrade returns a proposed trade for the given pool and swap terms.
func NewTrade(
	poolId string, offer AssetAmount, askAsset, receiver string, now int64,
) *Trade {
	return &Trade{
		Id:          uuid.New().String(),
		PoolId:      poolId,
		OfferAsset:  offer.Asset,
		OfferAmount: offer.Amount,
		AskAsset:    askAsset,
		Receiver:    receiver,
		Status:      TradeStatus{Code: TradeStatusCodeProposed},
		CreatedAt:   now,
	}
}

// Settle records the executed swap terms and moves the trade to its final
// settled status.
func (t *Trade) Settle(preview SwapPreview, now int64) error {
	if t.Status.Code != TradeStatusCodeProposed {
		return ErrTradeMustBeProposed
	}
	t.AskAmount = preview.AskAmount
	t.SpreadAmount = preview.SpreadAmount
	t.CommissionAmount = preview.CommissionAmount
	t.MakerAmount = preview.MakerAmount
	t.Status = TradeStatus{Code: TradeStatusCodeSettled}
	t.SettledAt = now
	return nil
}

// Fail moves the trade to the failed status recording the reason.
func (t *Trade) Fail(reason string, now int64) error {
	if t.Status.Code != TradeStatusCodeProposed {
		return ErrTradeMustBeProposed
	}
	t.Status = TradeStatus{Code: TradeStatusCodeFailed, Failed: true}
	t.FailureReason = reason
	t.SettledAt = now
	return nil
}

// IsSettled returns true if the trade reached the settled status.
func (t *Trade) IsSettled() bool {
	return t.Status.Code == TradeStatusCodeSettled
}
