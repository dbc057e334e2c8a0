package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var cumprices = cli.Command{
	Name:  "cumprices",
	Usage: "show the cumulative price accumulators of a pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: cumPricesAction,
}

func cumPricesAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.trade.GetCumulativePrices(context.Background(), ctx.String("pool"))
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}
