package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/core/application"
	"github.com/dexpool-network/poold/internal/core/domain"
)

var provide = cli.Command{
	Name:  "provide",
	Usage: "deposit assets into a pool in exchange for share tokens",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.StringSliceFlag{
			Name:  "deposit",
			Usage: "deposit in <denom>:<amount> format, repeat per asset",
		},
		&cli.StringFlag{
			Name:  "slippage_tolerance",
			Usage: "tolerated ratio deviation, optional",
		},
		&cli.StringFlag{
			Name:  "receiver",
			Usage: "the account receiving the shares, optional",
		},
	},
	Action: provideAction,
}

func provideAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	deposits, err := parseAssetAmounts(ctx.StringSlice("deposit"))
	if err != nil {
		return err
	}
	tolerance, err := parseOptionalDecimal(ctx.String("slippage_tolerance"))
	if err != nil {
		return fmt.Errorf("invalid slippage_tolerance: %v", err)
	}

	shares, err := svc.liquidity.ProvideLiquidity(
		context.Background(), application.ProvideRequest{
			PoolId:            ctx.String("pool"),
			Deposits:          deposits,
			SlippageTolerance: tolerance,
			Receiver:          ctx.String("receiver"),
		},
	)
	if err != nil {
		return err
	}

	fmt.Printf("minted %s shares\n", shares.String())
	return nil
}

func parseAssetAmounts(raw []string) ([]domain.AssetAmount, error) {
	amounts := make([]domain.AssetAmount, 0, len(raw))
	for _, s := range raw {
		parts := strings.Split(s, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid amount %q, expected <denom>:<amount>", s)
		}
		amount, err := decimal.NewFromString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid amount in %q: %v", s, err)
		}
		amounts = append(amounts, domain.AssetAmount{
			Asset:  parts[0],
			Amount: amount,
		})
	}
	return amounts, nil
}
