package main

import (
	"context"

	"github.com/urfave/cli/v2"
)

var poolinfo = cli.Command{
	Name:  "poolinfo",
	Usage: "show the state of a pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: poolInfoAction,
}

func poolInfoAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	info, err := svc.trade.GetPool(context.Background(), ctx.String("pool"))
	if err != nil {
		return err
	}

	printRespJSON(info)
	return nil
}
