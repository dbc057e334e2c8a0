package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var twap = cli.Command{
	Name:  "twap",
	Usage: "compute the time weighted average price over a recent window",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.StringFlag{
			Name:  "base_asset",
			Usage: "the asset being priced",
		},
		&cli.StringFlag{
			Name:  "quote_asset",
			Usage: "the asset the price is quoted in",
		},
		&cli.Int64Flag{
			Name:  "window",
			Usage: "the averaging window in seconds",
			Value: 3600,
		},
	},
	Action: twapAction,
}

func twapAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	price, err := svc.trade.GetTWAP(
		context.Background(),
		ctx.String("pool"),
		ctx.String("base_asset"), ctx.String("quote_asset"),
		ctx.Int64("window"),
	)
	if err != nil {
		return err
	}

	fmt.Println(price.String())
	return nil
}
