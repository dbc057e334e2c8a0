package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
)

var stopramp = cli.Command{
	Name:  "stopramp",
	Usage: "stop an amplification ramp, freezing the current value",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "pool",
			Usage: "the pool id",
		},
	},
	Action: stopRampAction,
}

func stopRampAction(ctx *cli.Context) error {
	svc, cleanup, err := getServices()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := svc.operator.StopAmpRamp(
		context.Background(), ctx.String("pool"), config.GetString(config.AdminKey),
	); err != nil {
		return err
	}

	fmt.Println("amplification ramp stopped")
	return nil
}
