package dbbadger

import (
	"context"
	"errors"

	"github.com/timshannon/badgerhold/v4"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var (
	// ErrPoolNotExist is thrown when a pool is not found.
	ErrPoolNotExist = errors.New("pool does not exist")
	// ErrPoolAlreadyExist is thrown when inserting a duplicated pool id.
	ErrPoolAlreadyExist = errors.New("pool already exists")
)

type poolRepositoryImpl struct {
	db *DbManager
}

// NewPoolRepositoryImpl initializes a badger implementation of the
// domain.PoolRepository.
func NewPoolRepositoryImpl(db *DbManager) domain.PoolRepository {
	return poolRepositoryImpl{db: db}
}

func (r poolRepositoryImpl) AddPool(_ context.Context, pool *domain.Pool) error {
	if err := r.db.PoolStore.Insert(pool.Id, *pool); err != nil {
		if err == badgerhold.ErrKeyExists {
			return ErrPoolAlreadyExist
		}
		return err
	}
	return nil
}

func (r poolRepositoryImpl) GetPool(_ context.Context, id string) (*domain.Pool, error) {
	return r.getPool(id)
}

func (r poolRepositoryImpl) GetAllPools(_ context.Context) ([]domain.Pool, error) {
	return r.findPools(&badgerhold.Query{})
}

func (r poolRepositoryImpl) GetTradablePools(_ context.Context) ([]domain.Pool, error) {
	query := badgerhold.Where("Tradable").Eq(true)
	return r.findPools(query)
}

func (r poolRepositoryImpl) UpdatePool(
	_ context.Context, id string,
	updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	pool, err := r.getPool(id)
	if err != nil {
		return err
	}

	updated, err := updateFn(pool)
	if err != nil {
		return err
	}

	return r.db.PoolStore.Update(id, *updated)
}

func (r poolRepositoryImpl) getPool(id string) (*domain.Pool, error) {
	var pool domain.Pool
	if err := r.db.PoolStore.Get(id, &pool); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, ErrPoolNotExist
		}
		return nil, err
	}
	return &pool, nil
}

func (r poolRepositoryImpl) findPools(query *badgerhold.Query) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := r.db.PoolStore.Find(&pools, query); err != nil {
		return nil, err
	}
	return pools, nil
}
