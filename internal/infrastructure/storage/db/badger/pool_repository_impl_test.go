package dbbadger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/internal/core/domain"
)

func newTestDb(t *testing.T) *DbManager {
	t.Helper()
	db, err := NewDbManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

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
	repo := NewPoolRepositoryImpl(newTestDb(t))
	pool := newTestPool(t)

	require.NoError(t, repo.AddPool(ctx, pool))
	require.ErrorIs(t, repo.AddPool(ctx, pool), ErrPoolAlreadyExist)

	got, err := repo.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool.Id, got.Id)
	require.Equal(t, pool.Name, got.Name)
	require.Len(t, got.Assets, 2)

	_, err = repo.GetPool(ctx, "missing")
	require.ErrorIs(t, err, ErrPoolNotExist)

	err = repo.UpdatePool(ctx, pool.Id, func(p *domain.Pool) (*domain.Pool, error) {
		p.Assets[0].Reserve = decimal.NewFromInt(1000)
		p.Assets[1].Reserve = decimal.NewFromInt(1000)
		p.TotalShares = decimal.NewFromInt(1000)
		p.Tradable = true
		return p, nil
	})
	require.NoError(t, err)

	tradable, err := repo.GetTradablePools(ctx)
	require.NoError(t, err)
	require.Len(t, tradable, 1)
	require.True(t, decimal.NewFromInt(1000).Equal(tradable[0].Assets[0].Reserve))
}

func TestTradeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTradeRepositoryImpl(newTestDb(t))

	offer := domain.AssetAmount{Asset: "uusd", Amount: decimal.NewFromInt(1000)}
	first := domain.NewTrade("pool-1", offer, "uluna", "", 100)
	second := domain.NewTrade("pool-2", offer, "uluna", "", 200)

	require.NoError(t, repo.AddTrade(ctx, first))
	require.NoError(t, repo.AddTrade(ctx, second))
	require.ErrorIs(t, repo.AddTrade(ctx, first), ErrTradeAlreadyExist)

	all, err := repo.GetAllTrades(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.Id, all[0].Id)

	byPool, err := repo.GetTradesByPool(ctx, "pool-2")
	require.NoError(t, err)
	require.Len(t, byPool, 1)
	require.Equal(t, second.Id, byPool[0].Id)

	err = repo.UpdateTrade(ctx, first.Id, func(tr *domain.Trade) (*domain.Trade, error) {
		if err := tr.Fail("transfer rejected", 150); err != nil {
			return nil, err
		}
		return tr, nil
	})
	require.NoError(t, err)

	got, err := repo.GetTrade(ctx, first.Id)
	require.NoError(t, err)
	require.True(t, got.Status.Failed)
	require.Equal(t, "transfer rejected", got.FailureReason)
}
