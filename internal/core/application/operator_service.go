package application

import (
	"context"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/dexpool-network/poold/internal/core/domain"
)

// OperatorService covers pool creation and admin-gated config changes.
type OperatorService interface {
	CreatePool(ctx context.Context, req CreatePoolRequest) (*PoolInfo, error)
	OpenPool(ctx context.Context, poolId, from string) error
	ClosePool(ctx context.Context, poolId, from string) error
	UpdatePoolFees(
		ctx context.Context, poolId, from string,
		percentageFee, makerFee uint32,
	) error
	StartAmpRamp(
		ctx context.Context, poolId, from string,
		futureAmp decimal.Decimal, startTime, stopTime int64,
	) error
	StopAmpRamp(ctx context.Context, poolId, from string) error
}

type operatorService struct {
	poolRepository domain.PoolRepository
	now            Clock
}

// NewOperatorService returns an OperatorService over the given repository.
func NewOperatorService(poolRepository domain.PoolRepository, now Clock) OperatorService {
	return &operatorService{poolRepository: poolRepository, now: now}
}

func (s *operatorService) CreatePool(
	ctx context.Context, req CreatePoolRequest,
) (*PoolInfo, error) {
	pool, err := domain.NewPool(
		req.Assets, req.CurveType, req.Amp,
		req.PercentageFee, req.MakerFee, req.Admin,
	)
	if err != nil {
		return nil, err
	}

	if err := s.poolRepository.AddPool(ctx, pool); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"pool": pool.Id,
		"name": pool.Name,
	}).Info("pool created")
	return poolInfo(pool), nil
}

func (s *operatorService) OpenPool(ctx context.Context, poolId, from string) error {
	return s.updateAsAdmin(ctx, poolId, from, func(p *domain.Pool) error {
		return p.MakeTradable()
	})
}

func (s *operatorService) ClosePool(ctx context.Context, poolId, from string) error {
	return s.updateAsAdmin(ctx, poolId, from, func(p *domain.Pool) error {
		p.MakeNotTradable()
		return nil
	})
}

func (s *operatorService) UpdatePoolFees(
	ctx context.Context, poolId, from string, percentageFee, makerFee uint32,
) error {
	return s.updateAsAdmin(ctx, poolId, from, func(p *domain.Pool) error {
		return p.ChangeFees(percentageFee, makerFee)
	})
}

func (s *operatorService) StartAmpRamp(
	ctx context.Context, poolId, from string,
	futureAmp decimal.Decimal, startTime, stopTime int64,
) error {
	now := s.now()
	return s.updateAsAdmin(ctx, poolId, from, func(p *domain.Pool) error {
		return p.StartAmpRamp(futureAmp, startTime, stopTime, now)
	})
}

func (s *operatorService) StopAmpRamp(ctx context.Context, poolId, from string) error {
	now := s.now()
	return s.updateAsAdmin(ctx, poolId, from, func(p *domain.Pool) error {
		return p.StopAmpRamp(now)
	})
}

func (s *operatorService) updateAsAdmin(
	ctx context.Context, poolId, from string, fn func(p *domain.Pool) error,
) error {
	return s.poolRepository.UpdatePool(
		ctx, poolId,
		func(p *domain.Pool) (*domain.Pool, error) {
			if p.Admin != from {
				return nil, domain.ErrUnauthorized
			}
			if err := fn(p); err != nil {
				return nil, err
			}
			return p, nil
		},
	)
}
