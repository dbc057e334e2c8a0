package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var listpools = cli.Command{
	Name:  "listpools",
	Usage: "list all pools",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "tradable_only",
			Usage: "list only pools open for trading",
		},
	},
	Action: listPoolsAction,
}

func listPoolsAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	list := svc.trade.ListPools
	if ctx.Bool("tradable_only") {
		list = svc.trade.ListTradablePools
	}

	pools, err := list(context.Background())
	if err != nil {
		return err
	}

	printRespJSON(pools)
	return nil
}
