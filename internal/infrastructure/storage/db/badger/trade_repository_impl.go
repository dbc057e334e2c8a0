package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var (
	// ErrTradeNotExist is thrown when a trade is not found.
	ErrTradeNotExist = errors.New("trade does not exist")
	// ErrTradeAlreadyExist is thrown when inserting a duplicated trade id.
	ErrTradeAlreadyExist = errors.New("trade already exists")
)

type tradeRepositoryImpl struct {
	db *DbManager
}

// NewTradeRepositoryImpl initializes a badger implementation of the
// domain.TradeRepository.
func NewTradeRepositoryImpl(db *DbManager) domain.TradeRepository {
	return tradeRepositoryImpl{db: db}
}

func (r tradeRepositoryImpl) AddTrade(_ context.Context, trade *domain.Trade) error {
	if err := r.db.TradeStore.Insert(trade.Id, *trade); err != nil {
		if err == badgerhold.ErrKeyExists {
			return ErrTradeAlreadyExist
		}
		return err
	}
	return nil
}

func (r tradeRepositoryImpl) GetTrade(_ context.Context, id string) (*domain.Trade, error) {
	var trade domain.Trade
	if err := r.db.TradeStore.Get(id, &trade); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrTradeNotExist
		}
		return nil, err
	}
	return &trade, nil
}

func (r tradeRepositoryImpl) GetAllTrades(_ context.Context) ([]domain.Trade, error) {
	return r.findTrades((&badgerhold.Query{}).SortBy("CreatedAt"))
}

func (r tradeRepositoryImpl) GetTradesByPool(
	_ context.Context, poolId string,
) ([]domain.Trade, error) {
	query := badgerhold.Where("PoolId").Eq(poolId).SortBy("CreatedAt")
	return r.findTrades(query)
}

func (r tradeRepositoryImpl) UpdateTrade(
	_ context.Context, id string,
	updateFn func(t *domain.Trade) (*domain.Trade, error),
) error {
	trade, err := r.GetTrade(context.Background(), id)
	if err != nil {
		return err
	}

	updated, err := updateFn(trade)
	if err != nil {
		return err
	}

	return r.db.TradeStore.Update(id, *updated)
}

func (r tradeRepositoryImpl) findTrades(query *badgerhold.Query) ([]domain.Trade, error) {
	var trades []domain.Trade
	if err := r.db.TradeStore.Find(&trades, query); err != nil {
		return nil, err
	}
	return trades, nil
}
