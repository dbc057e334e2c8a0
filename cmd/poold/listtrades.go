package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listtrades = cli.Command{
	Name:  "listtrades",
	Usage: "list executed trades, optionally filtered by pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id, optional",
		},
	},
	Action: listTradesAction,
}

func listTradesAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	trades, err := svc.trade.ListTrades(context.Background(), ctx.String("pool"))
	if err != nil {
		return err
	}

	printRespJSON(trades)
	return nil
}
