// Package config holds the wallet core's ambient runtime configuration:
// which chain profile to target, logging verbosity, and RPC client
// tuning. Kept in the teacher's Default()/FromEnv() shape
// (internal/config/config.go in the original teacher tree), retargeted
// from per-network poll intervals/fees to the façade managers' actual
// needs.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config holds all configurable parameters for the wallet core's CLI and
// manager wiring.
type Config struct {
	ChainID    int64
	RPCURL     string
	RPCTimeout time.Duration
	LogLevel   slog.Level
}

// Default returns a Config populated with the Nor Chain fixture defaults.
func Default() Config {
	return Config{
		ChainID:    65001,
		RPCURL:     "https://rpc.norchain.org",
		RPCTimeout: 15 * time.Second,
		LogLevel:   slog.LevelInfo,
	}
}

// FromEnv returns a Config populated from environment variables, falling
// back to defaults for unset values.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("NORWALLET_CHAIN_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ChainID = n
		}
	}
	if v := os.Getenv("NORWALLET_RPC_URL"); v != "" {
		cfg.RPCURL = v
	}
	if v := os.Getenv("NORWALLET_RPC_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RPCTimeout = d
		}
	}
	if v := os.Getenv("NORWALLET_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}

	return cfg
}
