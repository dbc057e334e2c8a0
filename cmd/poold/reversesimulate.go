package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var reversesimulate = cli.Command{
	Name:  "reversesimulate",
	Usage: "preview the offer amount needed to buy an exact ask amount",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.StringFlag{
			Name:  "ask_asset",
			Usage: "the asset being bought",
		},
		&cli.StringFlag{
			Name:  "ask_amount",
			Usage: "the exact amount to receive, in base units",
		},
		&cli.StringFlag{
			Name:  "offer_asset",
			Usage: "the asset being sold",
		},
	},
	Action: reverseSimulateAction,
}

func reverseSimulateAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	askAmount, err := decimal.NewFromString(ctx.String("ask_amount"))
	if err != nil {
		return fmt.Errorf("invalid ask_amount: %v", err)
	}

	res, err := svc.trade.ReverseSimulateSwap(
		context.Background(),
		ctx.String("pool"),
		domain.AssetAmount{Asset: ctx.String("ask_asset"), Amount: askAmount},
		ctx.String("offer_asset"),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}
