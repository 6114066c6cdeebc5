package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const envPrefix = "SMARTBANK"

type Config struct {
	ServerPort string
	LogLevel   string
	LogFormat  string

	IDLength   int
	BcryptCost int

	MinInitialDeposit         decimal.Decimal
	LargeTransactionThreshold decimal.Decimal
	HistoryDefaultLimit       int

	SeedDemoData bool
}

// Load reads the configuration from SMARTBANK_* environment variables,
// falling back to defaults for anything unset.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		ServerPort:          v.GetString("server_port"),
		LogLevel:            v.GetString("log_level"),
		LogFormat:           v.GetString("log_format"),
		IDLength:            v.GetInt("id_length"),
		BcryptCost:          v.GetInt("bcrypt_cost"),
		HistoryDefaultLimit: v.GetInt("history_default_limit"),
		SeedDemoData:        v.GetBool("seed_demo_data"),
	}

	var err error
	if cfg.MinInitialDeposit, err = decimal.NewFromString(v.GetString("min_initial_deposit")); err != nil {
		return nil, fmt.Errorf("parse %s_MIN_INITIAL_DEPOSIT: %w", envPrefix, err)
	}
	if cfg.LargeTransactionThreshold, err = decimal.NewFromString(v.GetString("large_transaction_threshold")); err != nil {
		return nil, fmt.Errorf("parse %s_LARGE_TRANSACTION_THRESHOLD: %w", envPrefix, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration Load produces with an empty environment.
func Default() *Config {
	return &Config{
		ServerPort:                "8080",
		LogLevel:                  "info",
		LogFormat:                 "json",
		IDLength:                  10,
		BcryptCost:                10,
		MinInitialDeposit:         decimal.NewFromInt(10),
		LargeTransactionThreshold: decimal.NewFromInt(1000),
		HistoryDefaultLimit:       5,
		SeedDemoData:              true,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server_port", d.ServerPort)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("id_length", d.IDLength)
	v.SetDefault("bcrypt_cost", d.BcryptCost)
	v.SetDefault("min_initial_deposit", d.MinInitialDeposit.String())
	v.SetDefault("large_transaction_threshold", d.LargeTransactionThreshold.String())
	v.SetDefault("history_default_limit", d.HistoryDefaultLimit)
	v.SetDefault("seed_demo_data", d.SeedDemoData)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var problems []string

	if c.ServerPort == "" {
		problems = append(problems, "server port is empty")
	}
	if c.IDLength < 1 || c.IDLength > 18 {
		problems = append(problems, "id length must be between 1 and 18")
	}
	// bcrypt accepts costs 4..31
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		problems = append(problems, "bcrypt cost must be between 4 and 31")
	}
	if c.MinInitialDeposit.IsNegative() {
		problems = append(problems, "minimum initial deposit must not be negative")
	}
	if c.HistoryDefaultLimit < 0 {
		problems = append(problems, "history default limit must not be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		problems = append(problems, "log format must be json or text")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return level, nil
}
