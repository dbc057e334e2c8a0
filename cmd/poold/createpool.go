package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
	"github.com/dexpool-network/poold/internal/core/application"
	"github.com/dexpool-network/poold/internal/core/domain"
)

var createpool = cli.Command{
	Name:  "createpool",
	Usage: "create a new liquidity pool",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "asset",
			Usage: "pool asset in <denom>:<precision> format, repeat per asset",
		},
		&cli.StringFlag{
			Name:  "curve",
			Usage: "pricing curve, one of: product, stable, sum",
			Value: "product",
		},
		&cli.Int64Flag{
			Name:  "amp",
			Usage: "amplification coefficient, stable curve only",
			Value: 100,
		},
		&cli.Int64Flag{
			Name:  "percentage_fee",
			Usage: "swap fee in basis points",
			Value: -1,
		},
		&cli.Int64Flag{
			Name:  "maker_fee",
			Usage: "maker share of the swap fee in basis points",
			Value: -1,
		},
	},
	Action: createPoolAction,
}

func createPoolAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	assets, err := parsePoolAssets(ctx.StringSlice("asset"))
	if err != nil {
		return err
	}
	curveType, err := parseCurve(ctx.String("curve"))
	if err != nil {
		return err
	}

	percentageFee := ctx.Int64("percentage_fee")
	if percentageFee < 0 {
		percentageFee = int64(config.GetInt(config.DefaultPercentageFeeKey))
	}
	makerFee := ctx.Int64("maker_fee")
	if makerFee < 0 {
		makerFee = int64(config.GetInt(config.DefaultMakerFeeKey))
	}

	info, err := svc.operator.CreatePool(
		context.Background(), application.CreatePoolRequest{
			Assets:        assets,
			CurveType:     curveType,
			Amp:           decimal.NewFromInt(ctx.Int64("amp")),
			PercentageFee: uint32(percentageFee),
			MakerFee:      uint32(makerFee),
			Admin:         config.GetString(config.AdminKey),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}

func parsePoolAssets(raw []string) ([]domain.PoolAsset, error) {
	assets := make([]domain.PoolAsset, 0, len(raw))
	for _, s := range raw {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid asset %q, expected <denom>:<precision>", s)
		}
		precision, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid precision in asset %q: %v", s, err)
		}
		assets = append(assets, domain.PoolAsset{
			Asset:     parts[0],
			Precision: uint(precision),
			Reserve:   decimal.Zero,
		})
	}
	return assets, nil
}

func parseCurve(s string) (int, error) {
	switch s {
	case "product":
		return domain.CurveConstantProduct, nil
	case "stable":
		return domain.CurveStableSwap, nil
	case "sum":
		return domain.CurveConstantSum, nil
	default:
		return 0, fmt.Errorf("unknown curve %q", s)
	}
}
