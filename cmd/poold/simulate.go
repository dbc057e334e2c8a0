package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/core/domain"
)

var simulate = cli.Command{
	Name:  "simulate",
	Usage: "preview a swap without touching the pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.StringFlag{
			Name:  "offer_asset",
			Usage: "the asset being sold",
		},
		&cli.StringFlag{
			Name:  "offer_amount",
			Usage: "the amount being sold, in base units",
		},
		&cli.StringFlag{
			Name:  "ask_asset",
			Usage: "the asset being bought",
		},
	},
	Action: simulateAction,
}

func simulateAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	offerAmount, err := decimal.NewFromString(ctx.String("offer_amount"))
	if err != nil {
		return fmt.Errorf("invalid offer_amount: %v", err)
	}

	res, err := svc.trade.SimulateSwap(
		context.Background(),
		ctx.String("pool"),
		domain.AssetAmount{Asset: ctx.String("offer_asset"), Amount: offerAmount},
		ctx.String("ask_asset"),
	)
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}
