package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/dexpool-network/poold/internal/core/domain"
)

func TestOperatorAuthorization(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	poolId := f.openPool(t, 30)

	require.ErrorIs(t,
		f.operator.ClosePool(ctx, poolId, "intruder"),
		domain.ErrUnauthorized,
	)
	require.ErrorIs(t,
		f.operator.UpdatePoolFees(ctx, poolId, "intruder", 50, 0),
		domain.ErrUnauthorized,
	)

	require.NoError(t, f.operator.ClosePool(ctx, poolId, "admin"))
	require.NoError(t, f.operator.UpdatePoolFees(ctx, poolId, "admin", 50, 1000))

	info, err := f.trade.GetPool(ctx, poolId)
	require.NoError(t, err)
	require.False(t, info.Tradable)
	require.Equal(t, uint32(50), info.PercentageFee)
	require.Equal(t, uint32(1000), info.MakerFee)
}

func TestOperatorAmpRamp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	info, err := f.operator.CreatePool(ctx, CreatePoolRequest{
		Assets: []domain.PoolAsset{
			{Asset: "usdc", Precision: 6},
			{Asset: "usdt", Precision: 6},
		},
		CurveType:     domain.CurveStableSwap,
		Amp:           decimal.NewFromInt(100),
		PercentageFee: 4,
		Admin:         "admin",
	})
	require.NoError(t, err)

	require.NoError(t, f.operator.StartAmpRamp(
		ctx, info.Id, "admin", decimal.NewFromInt(500), 1000, 1000+7200,
	))

	got, err := f.trade.GetPool(ctx, info.Id)
	require.NoError(t, err)
	require.NotNil(t, got.Amp)
	require.True(t, decimal.NewFromInt(500).Equal(got.Amp.Future))

	require.NoError(t, f.operator.StopAmpRamp(ctx, info.Id, "admin"))
	got, err = f.trade.GetPool(ctx, info.Id)
	require.NoError(t, err)
	require.True(t, got.Amp.Initial.Equal(got.Amp.Future))
}
