package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thobs40/LLM-Rights-Monitor/internal/duckdb"
	"github.com/thobs40/LLM-Rights-Monitor/internal/logging"
	"github.com/thobs40/LLM-Rights-Monitor/internal/mockdata"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
	"github.com/thobs40/LLM-Rights-Monitor/internal/socketrpc"
	"github.com/thobs40/LLM-Rights-Monitor/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var socketPath string
	var dataSource string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/rightsmonitor/config.yml)")
	flag.StringVar(&dataSource, "source", "", "override data source (mock, duckdb or socket)")
	flag.StringVar(&socketPath, "socket", "", "override socket path to connect to the rightsmonitor service")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("RightsMonitor - Dashboard\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if socketPath != "" {
		cfg.SocketPath = socketPath
	}
	if dataSource != "" {
		cfg.DataSource = dataSource
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	// The terminal belongs to the UI; logs go to the state directory.
	logOut, closeLog := logging.OpenStateLog("rightsmonitor")
	defer closeLog()
	logger := logging.NewLogger(logOut, cfg.LogLevel, false)
	slog.SetDefault(logger)

	provider, cleanup, err := openProvider(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	analyzer := rca.NewClient(rca.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.AnalysisTimeout,
		Logger:  logger,
	})

	dashboard := tui.NewDashboardModel(provider, analyzer, tui.Options{
		Region:             cfg.Region,
		DataSource:         cfg.DataSource,
		RefreshInterval:    cfg.RefreshInterval,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
		Logger:             logger,
	})
	app := tui.NewApp(tui.NewDashboardView(dashboard))
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// openProvider builds the dashboard's data source. The returned func
// releases it.
func openProvider(cfg cliConfig) (model.Provider, func(), error) {
	switch cfg.DataSource {
	case model.DataSourceSocket:
		client, err := socketrpc.Dial(cfg.SocketPath)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot connect to rightsmonitor service at %s: %w\nIs the service running? Start it with: rightsmonitor", cfg.SocketPath, err)
		}
		return client, func() { client.Close() }, nil

	case model.DataSourceDuckDB:
		source, err := mockdata.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load mock data: %w", err)
		}
		store, err := duckdb.NewStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open DuckDB at %s: %w (is the rightsmonitor service holding it? use -source socket)", cfg.DBPath, err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), duckdb.DefaultQueryTimeout)
		defer cancel()
		empty, err := store.Empty(ctx)
		if err == nil && empty {
			err = store.Seed(ctx, source)
		}
		if err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to prepare DuckDB: %w", err)
		}
		return duckdb.NewMirror(store, source), func() { store.Close() }, nil

	case model.DataSourceMock:
		source, err := mockdata.New()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load mock data: %w", err)
		}
		return source, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("invalid data-source: %q (want mock, duckdb or socket)", cfg.DataSource)
	}
}
