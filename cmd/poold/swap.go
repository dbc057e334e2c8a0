package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/core/application"
)

var swap = cli.Command{
	Name:  "swap",
	Usage: "swap an offered amount against a pool",
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
		&cli.StringFlag{
			Name:  "belief_price",
			Usage: "the price the trade was quoted at, optional",
		},
		&cli.StringFlag{
			Name:  "max_spread",
			Usage: "the tolerated spread fraction, optional",
		},
		&cli.StringFlag{
			Name:  "receiver",
			Usage: "the account receiving the ask asset, optional",
		},
	},
	Action: swapAction,
}

func swapAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	offerAmount, err := decimal.NewFromString(ctx.String("offer_amount"))
	if err != nil {
		return fmt.Errorf("invalid offer_amount: %v", err)
	}
	beliefPrice, err := parseOptionalDecimal(ctx.String("belief_price"))
	if err != nil {
		return fmt.Errorf("invalid belief_price: %v", err)
	}
	maxSpread, err := parseOptionalDecimal(ctx.String("max_spread"))
	if err != nil {
		return fmt.Errorf("invalid max_spread: %v", err)
	}

	res, err := svc.trade.ExecuteSwap(
		context.Background(), application.SwapRequest{
			PoolId:      ctx.String("pool"),
			OfferAsset:  ctx.String("offer_asset"),
			OfferAmount: offerAmount,
			AskAsset:    ctx.String("ask_asset"),
			BeliefPrice: beliefPrice,
			MaxSpread:   maxSpread,
			Receiver:    ctx.String("receiver"),
		},
	)
	if err != nil {
		return err
	}

	printRespJSON(res)
	return nil
}

func parseOptionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
