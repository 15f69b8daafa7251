package main

import (
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

const (
	defaultBindHost        = "127.0.0.1"
	defaultAPIPort         = 3000
	defaultDataSource      = model.DataSourceDuckDB
	defaultQueryTimeout    = 30 * time.Second
	defaultRefreshInterval = 0 // re-seed interval; 0 = only on demand
	defaultLogLevel        = "info"
	defaultBackupInterval  = 6 * time.Hour
	defaultBackupKeep      = 24
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	DataSource      string        `mapstructure:"data-source"`
	DBPath          string        `mapstructure:"db-path"`
	QueryTimeout    time.Duration `mapstructure:"query-timeout"`
	RefreshInterval time.Duration `mapstructure:"refresh-interval"`
	APIEnabled      bool          `mapstructure:"api-enabled"`
	APIPort         int           `mapstructure:"api-port"`
	APIAddr         string        `mapstructure:"api-addr"`
	SocketEnabled   bool          `mapstructure:"socket-enabled"`
	SocketPath      string        `mapstructure:"socket-path"`
	APIKey          string        `mapstructure:"api-key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base-url"`
	AnalysisTimeout time.Duration `mapstructure:"analysis-timeout"`
	BackupEnabled   bool          `mapstructure:"backup-enabled"`
	BackupInterval  time.Duration `mapstructure:"backup-interval"`
	BackupDir       string        `mapstructure:"backup-dir"`
	BackupKeep      int           `mapstructure:"backup-keep"`
	LogLevel        string        `mapstructure:"log-level"`
	LogJSON         bool          `mapstructure:"log-json"`
	ConfigPath      string        `mapstructure:"-"` // not from config file
}
