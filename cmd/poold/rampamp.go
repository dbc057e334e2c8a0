package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
)

var rampamp = cli.Command{
	Name:  "rampamp",
	Usage: "schedule a gradual change of a stableswap pool amplification",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
		&cli.Int64Flag{
			Name:  "future_amp",
			Usage: "the target amplification coefficient",
		},
		&cli.Int64Flag{
			Name:  "start_time",
			Usage: "ramp start as a Unix timestamp",
		},
		&cli.Int64Flag{
			Name:  "stop_time",
			Usage: "ramp stop as a Unix timestamp",
		},
	},
	Action: rampAmpAction,
}

func rampAmpAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.operator.StartAmpRamp(
		context.Background(),
		ctx.String("pool"), config.GetString(config.AdminKey),
		decimal.NewFromInt(ctx.Int64("future_amp")),
		ctx.Int64("start_time"), ctx.Int64("stop_time"),
	); err != nil {
		return err
	}

	fmt.Println("amplification ramp started")
	return nil
}
