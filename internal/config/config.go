package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	OpsPath     string
	SeedPath    string
	JournalOut  string
	PGDSN       string
	MetricsAddr string
	HaltOnError bool
	LogLevel    string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MINISWAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("journal-out", "./data/events.jsonl")
	v.SetDefault("halt-on-error", false)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		OpsPath:     v.GetString("ops"),
		SeedPath:    v.GetString("seed"),
		JournalOut:  v.GetString("journal-out"),
		PGDSN:       v.GetString("pg-dsn"),
		MetricsAddr: v.GetString("metrics-addr"),
		HaltOnError: v.GetBool("halt-on-error"),
		LogLevel:    v.GetString("log-level"),
	}

	return cfg, nil
}
