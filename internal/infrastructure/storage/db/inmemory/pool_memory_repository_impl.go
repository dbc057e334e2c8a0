package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var (
	// ErrPoolNotExist is thrown when a pool is not found.
	ErrPoolNotExist = errors.New("pool does not exist")
	// ErrPoolAlreadyExist is thrown when inserting a duplicated pool id.
	ErrPoolAlreadyExist = errors.New("pool already exists")
)

// PoolRepositoryImpl represents an in memory storage of pools.
type PoolRepositoryImpl struct {
	pools map[string]domain.Pool

	lock *sync.RWMutex
}

// NewPoolRepositoryImpl returns a new empty PoolRepositoryImpl.
func NewPoolRepositoryImpl() domain.PoolRepository {
	return &PoolRepositoryImpl{
		pools: map[string]domain.Pool{},
		lock:  &sync.RWMutex{},
	}
}

func (r *PoolRepositoryImpl) AddPool(_ context.Context, pool *domain.Pool) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.pools[pool.Id]; ok {
		return ErrPoolAlreadyExist
	}
	r.pools[pool.Id] = *pool
	return nil
}

func (r *PoolRepositoryImpl) GetPool(_ context.Context, id string) (*domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pool, ok := r.pools[id]
	if !ok {
		return nil, ErrPoolNotExist
	}
	copied := copyPool(pool)
	return &copied, nil
}

func (r *PoolRepositoryImpl) GetAllPools(_ context.Context) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0, len(r.pools))
	for _, p := range r.pools {
		pools = append(pools, copyPool(p))
	}
	return pools, nil
}

func (r *PoolRepositoryImpl) GetTradablePools(_ context.Context) ([]domain.Pool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	pools := make([]domain.Pool, 0)
	for _, p := range r.pools {
		if p.IsTradable() {
			pools = append(pools, copyPool(p))
		}
	}
	return pools, nil
}

func (r *PoolRepositoryImpl) UpdatePool(
	_ context.Context, id string,
	updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	stored, ok := r.pools[id]
	if !ok {
		return ErrPoolNotExist
	}

	// The update function runs on a deep copy so that a failing operation
	// never leaves a partial mutation behind.
	current := copyPool(stored)
	updated, err := updateFn(&current)
	if err != nil {
		return err
	}

	r.pools[id] = *updated
	return nil
}

func copyPool(p domain.Pool) domain.Pool {
	copied := p

	copied.Assets = make([]domain.PoolAsset, len(p.Assets))
	copy(copied.Assets, p.Assets)

	copied.CumulativePrices = make([]domain.CumulativePrice, len(p.CumulativePrices))
	copy(copied.CumulativePrices, p.CumulativePrices)

	copied.Observations = make([]domain.Observation, len(p.Observations))
	for i, obs := range p.Observations {
		prices := make([]domain.CumulativePrice, len(obs.Prices))
		copy(prices, obs.Prices)
		copied.Observations[i] = domain.Observation{
			Timestamp: obs.Timestamp,
			Prices:    prices,
		}
	}

	if p.Amp != nil {
		amp := *p.Amp
		copied.Amp = &amp
	}
	return copied
}
