package application

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/dexpool-network/poold/internal/core/domain"
)

// LiquidityService covers share-token issuance and redemption.
type LiquidityService interface {
	ProvideLiquidity(ctx context.Context, req ProvideRequest) (decimal.Decimal, error)
	WithdrawLiquidity(ctx context.Context, req WithdrawRequest) ([]domain.AssetAmount, error)
}

type liquidityService struct {
	poolRepository domain.PoolRepository
	now            Clock
}

// NewLiquidityService returns a LiquidityService over the given repository.
func NewLiquidityService(poolRepository domain.PoolRepository, now Clock) LiquidityService {
	return &liquidityService{poolRepository: poolRepository, now: now}
}

// ProvideLiquidity deposits assets into the pool and returns the amount of
// share tokens minted to the receiver. All-or-nothing: a failing deposit
// leaves the pool untouched.
func (s *liquidityService) ProvideLiquidity(
	ctx context.Context, req ProvideRequest,
) (decimal.Decimal, error) {
	now := s.now()

	var shares decimal.Decimal
	err := s.poolRepository.UpdatePool(
		ctx, req.PoolId,
		func(p *domain.Pool) (*domain.Pool, error) {
			var err error
			shares, err = p.Provide(now, req.Deposits, req.SlippageTolerance)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	)
	if err != nil {
		return decimal.Zero, err
	}

	log.WithFields(log.Fields{
		"pool":   req.PoolId,
		"shares": shares.String(),
	}).Info("liquidity provided")
	return shares, nil
}

// WithdrawLiquidity burns shares and returns the proportional amounts of
// each reserve.
func (s *liquidityService) WithdrawLiquidity(
	ctx context.Context, req WithdrawRequest,
) ([]domain.AssetAmount, error) {
	now := s.now()

	var returned []domain.AssetAmount
	err := s.poolRepository.UpdatePool(
		ctx, req.PoolId,
		func(p *domain.Pool) (*domain.Pool, error) {
			var err error
			returned, err = p.Withdraw(now, req.ShareAmount, req.MinAssetsToReceive)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"pool":   req.PoolId,
		"shares": req.ShareAmount.String(),
	}).Info("liquidity withdrawn")
	return returned, nil
}
