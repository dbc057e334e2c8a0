package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/internal/core/domain"
)

func newTestPool(t *testing.T) *domain.Pool {
	t.Helper()
	pool, err := domain.NewPool(
		[]domain.PoolAsset{
			{Asset: "uusd", Precision: 6},
			{Asset: "uluna", Precision: 6},
		},
		domain.CurveConstantProduct, decimal.Zero, 30, 0, "admin",
	)
	require.NoError(t, err)
	return pool
}

func TestPoolRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPoolRepositoryImpl()
	pool := newTestPool(t)

	require.NoError(t, repo.AddPool(ctx, pool))
	require.ErrorIs(t, repo.AddPool(ctx, pool), ErrPoolAlreadyExist)

	got, err := repo.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool.Id, got.Id)

	_, err = repo.GetPool(ctx, "missing")
	require.ErrorIs(t, err, ErrPoolNotExist)

	all, err := repo.GetAllPools(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	// The pool is closed, so no tradable pools yet.
	tradable, err := repo.GetTradablePools(ctx)
	require.NoError(t, err)
	require.Empty(t, tradable)
}

func TestPoolRepository_UpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewPoolRepositoryImpl()
	pool := newTestPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	boom := errors.New("boom")
	err := repo.UpdatePool(ctx, pool.Id, func(p *domain.Pool) (*domain.Pool, error) {
		// Mutate before failing: none of this must be visible afterwards.
		p.Assets[0].Reserve = decimal.NewFromInt(123456)
		p.TotalShares = decimal.NewFromInt(999)
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	got, err := repo.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, got.Assets[0].Reserve.IsZero())
	require.True(t, got.TotalShares.IsZero())
}

func TestPoolRepository_CopiesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewPoolRepositoryImpl()
	pool := newTestPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	got, err := repo.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	got.Assets[0].Reserve = decimal.NewFromInt(42)

	fresh, err := repo.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, fresh.Assets[0].Reserve.IsZero())
}
