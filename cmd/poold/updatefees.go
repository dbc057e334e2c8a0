package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
)

var updatefees = cli.Command{
	Name:  "updatefees",
	Usage: "update the fees of a closed pool",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.Int64Flag{
			Name:  "percentage_fee",
			Usage: "swap fee in basis points",
		},
		&cli.Int64Flag{
			Name:  "maker_fee",
			Usage: "maker share of the swap fee in basis points",
		},
	},
	Action: updateFeesAction,
}

func updateFeesAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.operator.UpdatePoolFees(
		context.Background(),
		ctx.String("pool"), config.GetString(config.AdminKey),
		uint32(ctx.Int64("percentage_fee")), uint32(ctx.Int64("maker_fee")),
	); err != nil {
		return err
	}

	fmt.Println("pool fees have been updated")
	return nil
}
