package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/socketrpc"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	DataSource         string        `mapstructure:"data-source"`
	DBPath             string        `mapstructure:"db-path"`
	SocketPath         string        `mapstructure:"socket-path"`
	Region             string        `mapstructure:"region"`
	RefreshInterval    time.Duration `mapstructure:"refresh-interval"`
	ReverseScrollWheel bool          `mapstructure:"reverse-scroll-wheel"`
	APIKey             string        `mapstructure:"api-key"`
	Model              string        `mapstructure:"model"`
	BaseURL            string        `mapstructure:"base-url"`
	AnalysisTimeout    time.Duration `mapstructure:"analysis-timeout"`
	LogLevel           string        `mapstructure:"log-level"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("RIGHTSMONITOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("data-source", model.DefaultDataSource)
	v.SetDefault("db-path", filepath.Join(home, ".local", "share", "rightsmonitor", "rightsmonitor.duckdb"))
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("region", model.DefaultRegion)
	v.SetDefault("refresh-interval", model.DefaultRefreshInterval)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("api-key", "")
	v.SetDefault("model", model.DefaultAnalysisModel)
	v.SetDefault("base-url", model.DefaultAnalysisBaseURL)
	v.SetDefault("analysis-timeout", 0)
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "rightsmonitor", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	switch cfg.DataSource {
	case model.DataSourceMock, model.DataSourceDuckDB, model.DataSourceSocket:
	default:
		return cfg, fmt.Errorf("invalid data-source: %q (want mock, duckdb or socket)", cfg.DataSource)
	}
	if cfg.RefreshInterval < 0 {
		return cfg, fmt.Errorf("invalid refresh-interval: %s", cfg.RefreshInterval)
	}

	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}
	if strings.HasPrefix(cfg.DBPath, "~/") {
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}

	return cfg, nil
}
