package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/core/application"
)

var withdraw = cli.Command{
	Name:  "withdraw",
	Usage: "burn share tokens for a proportional cut of the reserves",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.StringFlag{
			Name:  "shares",
			Usage: "the amount of shares to burn",
		},
		&cli.StringSliceFlag{
			Name:  "min_receive",
			Usage: "minimum acceptable amount in <denom>:<amount> format, optional, repeatable",
		},
	},
	Action: withdrawAction,
}

func withdrawAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	shares, err := decimal.NewFromString(ctx.String("shares"))
	if err != nil {
		return fmt.Errorf("invalid shares: %v", err)
	}
	minReceive, err := parseAssetAmounts(ctx.StringSlice("min_receive"))
	if err != nil {
		return err
	}

	returned, err := svc.liquidity.WithdrawLiquidity(
		context.Background(), application.WithdrawRequest{
			PoolId:             ctx.String("pool"),
			ShareAmount:        shares,
			MinAssetsToReceive: minReceive,
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(returned)
	return nil
}
