package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/dexpool-network/poold/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TradeService is the trading surface of the engine: swap execution and the
// read-only simulation and price queries.
type TradeService interface {
	ExecuteSwap(ctx context.Context, req SwapRequest) (*SwapResult, error)
	SimulateSwap(
		ctx context.Context, poolId string,
		offer domain.AssetAmount, askAsset string,
	) (*SimulationResult, error)
	ReverseSimulateSwap(
		ctx context.Context, poolId string,
		ask domain.AssetAmount, offerAsset string,
	) (*SimulationResult, error)
	GetPool(ctx context.Context, poolId string) (*PoolInfo, error)
	ListPools(ctx context.Context) ([]PoolInfo, error)
	ListTradablePools(ctx context.Context) ([]PoolInfo, error)
	GetCumulativePrices(ctx context.Context, poolId string) (*CumulativePricesInfo, error)
	GetTWAP(
		ctx context.Context, poolId, baseAsset, quoteAsset string, window int64,
	) (decimal.Decimal, error)
	GetVirtualPrice(ctx context.Context, poolId string) (decimal.Decimal, error)
	ListTrades(ctx context.Context, poolId string) ([]domain.Trade, error)
}

type tradeService struct {
	poolRepository  domain.PoolRepository
	tradeRepository domain.TradeRepository
	now             Clock
}

// NewTradeService returns a TradeService over the given repositories. The
// clock is injected because the host environment owns time.
func NewTradeService(
	poolRepository domain.PoolRepository,
	tradeRepository domain.TradeRepository,
	now Clock,
) TradeService {
	return &tradeService{
		poolRepository:  poolRepository,
		tradeRepository: tradeRepository,
		now:             now,
	}
}

// ExecuteSwap executes a forward swap atomically: the pool is loaded,
// priced, guarded and persisted in a single repository update. The trade
// record is stored in its final status either way, keyed by a uuid the
// caller can correlate transfer replies with.
func (s *tradeService) ExecuteSwap(ctx context.Context, req SwapRequest) (*SwapResult, error) {
	now := s.now()
	offer := domain.AssetAmount{Asset: req.OfferAsset, Amount: req.OfferAmount}
	trade := domain.NewTrade(req.PoolId, offer, req.AskAsset, req.Receiver, now)

	var preview *domain.SwapPreview
	err := s.poolRepository.UpdatePool(
		ctx, req.PoolId,
		func(p *domain.Pool) (*domain.Pool, error) {
			var err error
			preview, err = p.ApplySwap(now, offer, req.AskAsset, req.BeliefPrice, req.MaxSpread)
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	)
	if err != nil {
		// nolint:errcheck
		trade.Fail(err.Error(), now)
		if addErr := s.tradeRepository.AddTrade(ctx, trade); addErr != nil {
			log.WithError(addErr).Warn("failed to store failed trade")
		}
		return nil, err
	}

	// nolint:errcheck
	trade.Settle(*preview, now)
	if err := s.tradeRepository.AddTrade(ctx, trade); err != nil {
		log.WithError(err).Warn("failed to store settled trade")
	}

	log.WithFields(log.Fields{
		"pool":       req.PoolId,
		"trade":      trade.Id,
		"offer":      req.OfferAmount.String(),
		"ask":        preview.AskAmount.String(),
		"spread":     preview.SpreadAmount.String(),
		"commission": preview.CommissionAmount.String(),
	}).Info("swap executed")

	return &SwapResult{
		TradeId:          trade.Id,
		AskAmount:        preview.AskAmount,
		SpreadAmount:     preview.SpreadAmount,
		CommissionAmount: preview.CommissionAmount,
		MakerAmount:      preview.MakerAmount,
		SpreadAlarm:      preview.SpreadAlarm,
	}, nil
}

func (s *tradeService) SimulateSwap(
	ctx context.Context, poolId string,
	offer domain.AssetAmount, askAsset string,
) (*SimulationResult, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return nil, err
	}

	preview, err := pool.Preview(s.now(), offer, askAsset)
	if err != nil {
		return nil, err
	}
	return &SimulationResult{
		Amount:           preview.AskAmount,
		SpreadAmount:     preview.SpreadAmount,
		CommissionAmount: preview.CommissionAmount,
		SpreadAlarm:      preview.SpreadAlarm,
	}, nil
}

func (s *tradeService) ReverseSimulateSwap(
	ctx context.Context, poolId string,
	ask domain.AssetAmount, offerAsset string,
) (*SimulationResult, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return nil, err
	}

	preview, err := pool.PreviewReverse(s.now(), ask, offerAsset)
	if err != nil {
		return nil, err
	}
	return &SimulationResult{
		Amount:           preview.OfferAmount,
		SpreadAmount:     preview.SpreadAmount,
		CommissionAmount: preview.CommissionAmount,
		SpreadAlarm:      preview.SpreadAlarm,
	}, nil
}

func (s *tradeService) GetPool(ctx context.Context, poolId string) (*PoolInfo, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return nil, err
	}
	return poolInfo(pool), nil
}

func (s *tradeService) ListPools(ctx context.Context) ([]PoolInfo, error) {
	pools, err := s.poolRepository.GetAllPools(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]PoolInfo, 0, len(pools))
	for i := range pools {
		infos = append(infos, *poolInfo(&pools[i]))
	}
	return infos, nil
}

func (s *tradeService) ListTradablePools(ctx context.Context) ([]PoolInfo, error) {
	pools, err := s.poolRepository.GetTradablePools(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]PoolInfo, 0, len(pools))
	for i := range pools {
		infos = append(infos, *poolInfo(&pools[i]))
	}
	return infos, nil
}

func (s *tradeService) GetCumulativePrices(
	ctx context.Context, poolId string,
) (*CumulativePricesInfo, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return nil, err
	}
	return &CumulativePricesInfo{
		Prices:         pool.CumulativePrices,
		LastUpdateTime: pool.LastUpdateTime,
	}, nil
}

func (s *tradeService) GetTWAP(
	ctx context.Context, poolId, baseAsset, quoteAsset string, window int64,
) (decimal.Decimal, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return decimal.Zero, err
	}
	return pool.TWAP(baseAsset, quoteAsset, window, s.now())
}

func (s *tradeService) GetVirtualPrice(
	ctx context.Context, poolId string,
) (decimal.Decimal, error) {
	pool, err := s.poolRepository.GetPool(ctx, poolId)
	if err != nil {
		return decimal.Zero, err
	}
	return pool.VirtualPrice(s.now())
}

func (s *tradeService) ListTrades(ctx context.Context, poolId string) ([]domain.Trade, error) {
	if poolId == "" {
		return s.tradeRepository.GetAllTrades(ctx)
	}
	return s.tradeRepository.GetTradesByPool(ctx, poolId)
}
