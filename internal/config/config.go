package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// PortKey is the port where the REST interface will listen on.
	PortKey = "PORT"
	// DatadirKey is the local data directory to store the internal state of
	// the coordinator.
	DatadirKey = "DATADIR"
	// LogLevelKey are the different logging levels. For reference on the
	// values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DBTypeKey is used to switch the storage backend between those supported.
	DBTypeKey = "DB_TYPE"
	// ReaperIntervalKey is the interval in seconds between two sweeps of the
	// expiry reaper.
	ReaperIntervalKey = "REAPER_INTERVAL"
	// RateLimitKey is the number of requests per second accepted by the REST
	// interface before throttling kicks in.
	RateLimitKey = "RATE_LIMIT_RPS"

	// DBInMemory and DBBadger are the supported values for DBTypeKey.
	DBInMemory = "inmemory"
	DBBadger   = "badger"

	dbLocation = "db"
)

var vip *viper.Viper

// InitConfig loads the configuration from the environment, applying defaults
// and validating the result.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix("SPARKLE")
	vip.AutomaticEnv()

	vip.SetDefault(PortKey, 4000)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DatadirKey, defaultDatadir())
	vip.SetDefault(DBTypeKey, DBBadger)
	vip.SetDefault(ReaperIntervalKey, 60)
	vip.SetDefault(RateLimitKey, 50)

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

func GetDuration(key string) time.Duration {
	return time.Duration(vip.GetInt(key)) * time.Second
}

// GetDbDir returns the directory where the storage backend keeps its files.
func GetDbDir() string {
	return filepath.Join(GetString(DatadirKey), dbLocation)
}

func validate() error {
	switch dbType := vip.GetString(DBTypeKey); dbType {
	case DBInMemory, DBBadger:
	default:
		return fmt.Errorf("unsupported db type %s", dbType)
	}

	if interval := vip.GetInt(ReaperIntervalKey); interval <= 0 {
		return fmt.Errorf("reaper interval must be a positive number of seconds")
	}

	if rps := vip.GetInt(RateLimitKey); rps <= 0 {
		return fmt.Errorf("rate limit must be a positive number of requests per second")
	}

	return nil
}

func initDatadir() error {
	return makeDirectoryIfNotExists(GetDbDir())
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sparkled"
	}
	return filepath.Join(home, ".sparkled")
}
