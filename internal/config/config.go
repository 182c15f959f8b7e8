package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dgnsrekt/gexray/internal/exposure"
)

type Config struct {
	Symbols  []string        `mapstructure:"symbols"`
	Refresh  RefreshConfig   `mapstructure:"refresh"`
	Engine   exposure.Config `mapstructure:"engine"`
	Provider ProviderConfig  `mapstructure:"provider"`
	Server   ServerConfig    `mapstructure:"server"`
	Logging  LoggingConfig   `mapstructure:"logging"`
}

type RefreshConfig struct {
	IntervalSec     int  `mapstructure:"interval_sec"`
	Workers         int  `mapstructure:"workers"`
	MarketHoursOnly bool `mapstructure:"market_hours_only"`
	RunOnStartup    bool `mapstructure:"run_on_startup"`
}

func (r RefreshConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSec) * time.Second
}

type ProviderConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	TimeoutSec    int    `mapstructure:"timeout_sec"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryDelaySec int    `mapstructure:"retry_delay_sec"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
}

func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

func (p ProviderConfig) RetryDelay() time.Duration {
	return time.Duration(p.RetryDelaySec) * time.Second
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("symbols", []string{"SPY"})
	v.SetDefault("refresh.interval_sec", 60)
	v.SetDefault("refresh.workers", 3)
	v.SetDefault("refresh.market_hours_only", true)
	v.SetDefault("refresh.run_on_startup", true)
	v.SetDefault("engine.risk_free_rate", 0.05)
	v.SetDefault("engine.min_open_interest", 10)
	v.SetDefault("engine.min_gex", 1_000_000)
	v.SetDefault("engine.max_zones", 20)
	v.SetDefault("engine.heatmap_rows", 20)
	v.SetDefault("engine.heatmap_expirations", 8)
	v.SetDefault("engine.wall_window", 10)
	v.SetDefault("engine.delta_tolerance", 0.10)
	v.SetDefault("provider.base_url", "https://api.gexray.io")
	v.SetDefault("provider.timeout_sec", 30)
	v.SetDefault("provider.retry_count", 3)
	v.SetDefault("provider.retry_delay_sec", 5)
	v.SetDefault("provider.rate_per_second", 2)
	v.SetDefault("server.port", "8080")
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("GEXRAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Explicitly bind nested keys to env vars
	_ = v.BindEnv("provider.api_key", "GEXRAY_API_KEY")

	// Load config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
