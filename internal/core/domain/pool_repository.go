package domain

import "context"

// PoolRepository defines the persistence layer for pools. UpdatePool is the
// only way to mutate a stored pool: implementations load the current state,
// run the update function and persist the result atomically, so that a
// failing operation never leaves a partial mutation behind.
type PoolRepository interface {
	// AddPool inserts a new pool. It fails if the id is already taken.
	AddPool(ctx context.Context, pool *Pool) error
	// GetPool returns the pool with the given id.
	GetPool(ctx context.Context, id string) (*Pool, error)
	// GetAllPools returns every stored pool.
	GetAllPools(ctx context.Context) ([]Pool, error)
	// GetTradablePools returns the pools open for trading.
	GetTradablePools(ctx context.Context) ([]Pool, error)
	// UpdatePool applies updateFn to the stored pool atomically.
	UpdatePool(
		ctx context.Context, id string,
		updateFn func(p *Pool) (*Pool, error),
	) error
}
