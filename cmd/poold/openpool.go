package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
)

var openpool = cli.Command{
	Name:  "open",
	Usage: "open a pool for trading",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: openPoolAction,
}

func openPoolAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.operator.OpenPool(
		context.Background(), ctx.String("pool"), config.GetString(config.AdminKey),
	); err != nil {
		return err
	}

	fmt.Println("pool is open")
	return nil
}
