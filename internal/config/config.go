package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"

	"github.com/dexpool-network/poold/internal/core/domain"
)

const (
	// DatadirKey is the local data directory to store the internal state of the daemon
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DefaultPercentageFeeKey is the swap fee in basis points applied to pools created without an explicit fee
	DefaultPercentageFeeKey = "DEFAULT_PERCENTAGE_FEE"
	// DefaultMakerFeeKey is the share of the swap fee, in basis points, paid out to the trade receiver
	DefaultMakerFeeKey = "DEFAULT_MAKER_FEE"
	// MaxSpreadKey is the default maximum tolerated spread fraction for swaps
	MaxSpreadKey = "MAX_SPREAD"
	// AdminKey is the account authorized to run pool management operations
	AdminKey = "ADMIN"
	// DBTypeKey is used to switch database type between those supported
	DBTypeKey = "DB_TYPE"

	DbLocation = "db"

	// DBBadger and DBInMemory are the supported values for DBTypeKey.
	DBBadger   = "badger"
	DBInMemory = "inmemory"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("poold", false)

func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("POOLD")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DefaultPercentageFeeKey, 30)
	vip.SetDefault(DefaultMakerFeeKey, 0)
	vip.SetDefault(MaxSpreadKey, domain.DefaultMaxSpread.InexactFloat64())
	vip.SetDefault(AdminKey, "admin")
	vip.SetDefault(DBTypeKey, DBBadger)

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	if err := initDatadir(); err != nil {
		return fmt.Errorf("error while creating datadir: %s", err)
	}

	return nil
}

func GetString(key string) string {
	return vip.GetString(key)
}

func GetInt(key string) int {
	return vip.GetInt(key)
}

func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

func GetBool(key string) bool {
	return vip.GetBool(key)
}

func GetDatadir() string {
	return GetString(DatadirKey)
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("missing datadir")
	}

	percentageFee := GetInt(DefaultPercentageFeeKey)
	if percentageFee < 0 || percentageFee >= 10000 {
		return fmt.Errorf(
			"%s must be in range [0, 10000)", DefaultPercentageFeeKey,
		)
	}

	makerFee := GetInt(DefaultMakerFeeKey)
	if makerFee < 0 || makerFee > 10000 {
		return fmt.Errorf("%s must be in range [0, 10000]", DefaultMakerFeeKey)
	}

	maxSpread := GetFloat(MaxSpreadKey)
	if maxSpread <= 0 || maxSpread >= 1 {
		return fmt.Errorf("%s must be in range (0, 1)", MaxSpreadKey)
	}

	dbType := GetString(DBTypeKey)
	if dbType != DBBadger && dbType != DBInMemory {
		return fmt.Errorf(
			"%s must be either %s or %s", DBTypeKey, DBBadger, DBInMemory,
		)
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	return makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation))
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
