package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dexpool-network/poold/internal/config"
	"github.com/dexpool-network/poold/internal/core/application"
	"github.com/dexpool-network/poold/internal/core/domain"
	dbbadger "github.com/dexpool-network/poold/internal/infrastructure/storage/db/badger"
	"github.com/dexpool-network/poold/internal/infrastructure/storage/db/inmemory"
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "poold CLI"
	app.Usage = "Command line interface for managing and trading on liquidity pools"
	app.Commands = append(
		app.Commands,
		&createpool,
		&listpools,
		&poolinfo,
		&openpool,
		&closepool,
		&updatefees,
		&rampamp,
		&stopramp,
		&simulate,
		&reversesimulate,
		&swap,
		&provide,
		&withdraw,
		&cumprices,
		&twap,
		&virtualprice,
		&listtrades,
	)

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}

// services wires the repositories and application services over the
// configured database. The returned cleanup must be deferred.
type services struct {
	operator  application.OperatorService
	trade     application.TradeService
	liquidity application.LiquidityService
}

func getServices() (*services, func(), error) {
	if err := config.InitConfig(); err != nil {
		return nil, nil, err
	}

	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	var poolRepository domain.PoolRepository
	var tradeRepository domain.TradeRepository
	cleanup := func() {}

	switch config.GetString(config.DBTypeKey) {
	case config.DBInMemory:
		poolRepository = inmemory.NewPoolRepositoryImpl()
		tradeRepository = inmemory.NewTradeRepositoryImpl()
	default:
		dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
		dbManager, err := dbbadger.NewDbManager(dbDir, nil)
		if err != nil {
			return nil, nil, fmt.Errorf("opening db: %w", err)
		}
		cleanup = func() { _ = dbManager.Close() }
		poolRepository = dbbadger.NewPoolRepositoryImpl(dbManager)
		tradeRepository = dbbadger.NewTradeRepositoryImpl(dbManager)
	}

	now := func() int64 { return time.Now().Unix() }

	return &services{
		operator:  application.NewOperatorService(poolRepository, now),
		trade:     application.NewTradeService(poolRepository, tradeRepository, now),
		liquidity: application.NewLiquidityService(poolRepository, now),
	}, cleanup, nil
}

func printRespJSON(resp interface{}) {
	jsonStr, err := json.MarshalIndent(resp, "", "\t")
	if err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}

	fmt.Println(string(jsonStr))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[poold] %v\n", err)
	}
	os.Exit(1)
}
