package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
)

var closepool = cli.Command{
	Name:  "close",
	Usage: "close a pool, halting trades",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: closePoolAction,
}

func closePoolAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.operator.ClosePool(
		context.Background(), ctx.String("pool"), config.GetString(config.AdminKey),
	); err != nil {
		return err
	}

	fmt.Println("pool is closed")
	return nil
}
