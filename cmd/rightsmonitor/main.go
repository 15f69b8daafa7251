package main

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/socketrpc"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/rightsmonitor/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("RightsMonitor - Dashboard Data Service\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := runServer(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	defaultDBPath := filepath.Join(home, ".local", "share", "rightsmonitor", "rightsmonitor.duckdb")
	defaultBackupDir := filepath.Join(home, ".local", "share", "rightsmonitor", "backups")

	v := viper.New()
	v.SetEnvPrefix("RIGHTSMONITOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("data-source", defaultDataSource)
	v.SetDefault("db-path", defaultDBPath)
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("refresh-interval", defaultRefreshInterval)
	v.SetDefault("api-enabled", true)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("socket-enabled", true)
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("api-key", "")
	v.SetDefault("model", model.DefaultAnalysisModel)
	v.SetDefault("base-url", model.DefaultAnalysisBaseURL)
	v.SetDefault("analysis-timeout", 0)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-json", false)
	v.SetDefault("backup-enabled", false)
	v.SetDefault("backup-interval", defaultBackupInterval)
	v.SetDefault("backup-dir", defaultBackupDir)
	v.SetDefault("backup-keep", defaultBackupKeep)

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
	cfg.ConfigPath = v.ConfigFileUsed()
	if _, err := os.Stat(cfg.ConfigPath); err != nil {
		cfg.ConfigPath = ""
	}

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	switch cfg.DataSource {
	case model.DataSourceMock, model.DataSourceDuckDB:
	default:
		return cfg, fmt.Errorf("invalid data-source: %q (want %s or %s)", cfg.DataSource, model.DataSourceMock, model.DataSourceDuckDB)
	}

	// The analysis key falls back to the unprefixed variable.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("API_KEY")
	}

	if cfg.BackupEnabled && cfg.DataSource != model.DataSourceDuckDB {
		return cfg, fmt.Errorf("backup-enabled requires data-source %s", model.DataSourceDuckDB)
	}

	// Expand ~ in paths
	if strings.HasPrefix(cfg.DBPath, "~/") {
		cfg.DBPath = filepath.Join(home, cfg.DBPath[2:])
	}
	if strings.HasPrefix(cfg.BackupDir, "~/") {
		cfg.BackupDir = filepath.Join(home, cfg.BackupDir[2:])
	}

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(defaultBindHost, strconv.Itoa(cfg.APIPort))
	}

	return cfg, nil
}
