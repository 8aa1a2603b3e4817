package config

import (
	"fmt"
	"os"
)

type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Log    LogConfig
	// OwnerID is the implicit single user every CLI/API call acts as.
	OwnerID string
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	// Driver selects the backing store: "sqlite" or "memory".
	Driver string
	// Path is the SQLite file location; empty means the default
	// (~/.progressivity.db), overridable via PV_DB_PATH.
	Path string
	// SeedDemo populates a fresh store with the demo dataset.
	SeedDemo bool
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	driver := getEnv("STORE_DRIVER", "sqlite")
	switch driver {
	case "sqlite", "memory":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q: want sqlite or memory", driver)
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Store: StoreConfig{
			Driver:   driver,
			Path:     getEnv("PV_DB_PATH", ""),
			SeedDemo: getEnv("SEED_DEMO", "") == "true",
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		OwnerID: getEnv("OWNER_ID", "user-1"),
	}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
