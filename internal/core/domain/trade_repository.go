package domain

import "context"

// TradeRepository defines the persistence layer for the trade log.
type TradeRepository interface {
	// AddTrade inserts a new trade record.
	AddTrade(ctx context.Context, trade *Trade) error
	// GetTrade returns the trade with the given id.
	GetTrade(ctx context.Context, id string) (*Trade, error)
	// GetAllTrades returns every stored trade.
	GetAllTrades(ctx context.Context) ([]Trade, error)
	// GetTradesByPool returns the trades executed against the given pool.
	GetTradesByPool(ctx context.Context, poolId string) ([]Trade, error)
	// UpdateTrade applies updateFn to the stored trade atomically.
	UpdateTrade(
		ctx context.Context, id string,
		updateFn func(t *Trade) (*Trade, error),
	) error
}
