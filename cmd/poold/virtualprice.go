package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
)

var virtualprice = cli.Command{
	Name:  "virtualprice",
	Usage: "show the invariant per share of a pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: virtualPriceAction,
}

func virtualPriceAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	price, err := svc.trade.GetVirtualPrice(context.Background(), ctx.String("pool"))
	if err != nil {
		return err
	}

	fmt.Println(price.String())
	return nil
}
