package inmemory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var (
	// ErrTradeNotExist is thrown when a trade is not found.
	ErrTradeNotExist = errors.New("trade does not exist")
	// ErrTradeAlreadyExist is thrown when inserting a duplicated trade id.
	ErrTradeAlreadyExist = errors.New("trade already exists")
)

// TradeRepositoryImpl represents an in memory storage of trades.
type TradeRepositoryImpl struct {
	trades map[string]domain.Trade

	lock *sync.RWMutex
}

// NewTradeRepositoryImpl returns a new empty TradeRepositoryImpl.
func NewTradeRepositoryImpl() domain.TradeRepository {
	return &TradeRepositoryImpl{
		trades: map[string]domain.Trade{},
		lock:   &sync.RWMutex{},
	}
}

func (r *TradeRepositoryImpl) AddTrade(_ context.Context, trade *domain.Trade) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.trades[trade.Id]; ok {
		return ErrTradeAlreadyExist
	}
	r.trades[trade.Id] = *trade
	return nil
}

func (r *TradeRepositoryImpl) GetTrade(_ context.Context, id string) (*domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trade, ok := r.trades[id]
	if !ok {
		return nil, ErrTradeNotExist
	}
	return &trade, nil
}

func (r *TradeRepositoryImpl) GetAllTrades(_ context.Context) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, 0, len(r.trades))
	for _, t := range r.trades {
		trades = append(trades, t)
	}
	sortTrades(trades)
	return trades, nil
}

func (r *TradeRepositoryImpl) GetTradesByPool(
	_ context.Context, poolId string,
) ([]domain.Trade, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	trades := make([]domain.Trade, 0)
	for _, t := range r.trades {
		if t.PoolId == poolId {
			trades = append(trades, t)
		}
	}
	sortTrades(trades)
	return trades, nil
}

func (r *TradeRepositoryImpl) UpdateTrade(
	_ context.Context, id string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, ok := r.trades[id]
	if !ok {
		return ErrTradeNotExist
	}

	updated, err := updateFn(&current)
	if err != nil {
		return err
	}

	r.trades[id] = *updated
	return nil
}

func sortTrades(trades []domain.Trade) {
	sort.Slice(trades, func(i, j int) bool {
		return trades[i].CreatedAt < trades[j].CreatedAt
	})
}
