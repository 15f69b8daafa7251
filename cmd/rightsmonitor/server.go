package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/thobs40/LLM-Rights-Monitor/internal/backup"
	"github.com/thobs40/LLM-Rights-Monitor/internal/duckdb"
	"github.com/thobs40/LLM-Rights-Monitor/internal/httpserver"
	"github.com/thobs40/LLM-Rights-Monitor/internal/logging"
	"github.com/thobs40/LLM-Rights-Monitor/internal/metrics"
	"github.com/thobs40/LLM-Rights-Monitor/internal/mockdata"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/rca"
	"github.com/thobs40/LLM-Rights-Monitor/internal/socketrpc"
)

// runServer serves the dashboard data over HTTP and the local socket until
// SIGINT or SIGTERM.
func runServer(cfg appConfig) error {
	logger := logging.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON)
	slog.SetDefault(logger)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	source, err := mockdata.New()
	if err != nil {
		return fmt.Errorf("failed to load mock data: %w", err)
	}

	provider, cleanup, err := openProvider(cfg, source, logger)
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
	if cfg.APIKey == "" {
		logger.Warn("no analysis API key configured; analyses will return the fallback diagnosis")
	}

	// Start HTTP API server if enabled
	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, provider, analyzer, httpserver.Options{Logger: logger})
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
	}

	// Start socket RPC server for TUI IPC
	socketUp := false
	if cfg.SocketEnabled {
		sockServer := socketrpc.NewServer(cfg.SocketPath, provider, logger)
		if err := sockServer.Start(); err != nil {
			logger.Warn("failed to start socket server", "error", err)
		} else {
			socketUp = true
			defer sockServer.Stop()
		}
	}

	// Set up context and signal handling before errgroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	printStartupBanner(cfg, socketUp)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		select {
		case <-sigCh:
			fmt.Println("\nShutting down gracefully... (press Ctrl+C again to force)")
			cancel()
		case <-gctx.Done():
			return nil
		}

		// Second signal or a stuck shutdown forces the exit.
		go func() {
			deadline := time.NewTimer(10 * time.Second)
			defer deadline.Stop()
			select {
			case <-sigCh:
				fmt.Println("\nForce shutdown.")
			case <-deadline.C:
				fmt.Println("Shutdown timed out, forcing exit.")
			}
			os.Exit(1)
		}()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("server: errgroup exited with error", "error", err)
	}
	return nil
}

// openProvider returns the data set the server serves. The duckdb source
// seeds an empty database from the mock generator and keeps it mirrored.
func openProvider(cfg appConfig, source *mockdata.Provider, logger *slog.Logger) (model.Provider, func(), error) {
	if cfg.DataSource == model.DataSourceMock {
		return source, func() {}, nil
	}

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize DuckDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.QueryTimeout)
	defer cancel()

	empty, err := store.Empty(ctx)
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("failed to inspect DuckDB: %w", err)
	}
	if empty {
		if err := store.Seed(ctx, source); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("failed to seed DuckDB: %w", err)
		}
		logger.Info("seeded database from mock data", "path", cfg.DBPath)
	}

	mirror := duckdb.NewMirror(store, source)
	refresher := duckdb.NewRefresher(mirror, duckdb.RefresherConfig{
		Interval: cfg.RefreshInterval,
		Logger:   logger,
	})

	backups, err := backup.NewManager(store, backup.Config{
		Enabled:  cfg.BackupEnabled,
		Interval: cfg.BackupInterval,
		LocalDir: cfg.BackupDir,
		KeepLast: cfg.BackupKeep,
		Logger:   logger,
	})
	if err != nil {
		if refresher != nil {
			refresher.Stop()
		}
		store.Close()
		return nil, nil, err
	}

	return mirror, func() {
		if refresher != nil {
			refresher.Stop()
		}
		backups.Stop()
		store.Close()
	}, nil
}

func printStartupBanner(cfg appConfig, socketUp bool) {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	blue := lipgloss.NewStyle().Foreground(lipgloss.Color("#4285F4"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	bold := lipgloss.NewStyle().Bold(true)

	check := green.Render("●")
	dot := dim.Render("●")

	logo := blue.Bold(true).Render(`
    ╦═╗╦╔═╗╦ ╦╔╦╗╔═╗  ╔╦╗╔═╗╔╗╔╦╔╦╗╔═╗╦═╗
    ╠╦╝║║ ╦╠═╣ ║ ╚═╗  ║║║║ ║║║║║ ║ ║ ║╠╦╝
    ╩╚═╩╚═╝╩ ╩ ╩ ╚═╝  ╩ ╩╚═╝╝╚╝╩ ╩ ╚═╝╩╚═`)

	var lines []string
	lines = append(lines, "", logo, "    "+dim.Render("v"+version), "")

	separator := dim.Render("    ─────────────────────────────────")
	lines = append(lines, separator, "")

	row := func(ok bool, label, value string) string {
		mark := dot
		if ok {
			mark = check
		}
		return fmt.Sprintf("    %s  %-14s %s", mark, label, value)
	}

	lines = append(lines, bold.Render("    Gateway"), "")
	if cfg.APIEnabled {
		lines = append(lines, row(true, "HTTP API", blue.Render(cfg.APIAddr)))
	} else {
		lines = append(lines, row(false, "HTTP API", dim.Render("disabled")))
	}
	if socketUp {
		lines = append(lines, row(true, "Unix Socket", blue.Render(shortenPath(cfg.SocketPath))))
	} else {
		lines = append(lines, row(false, "Unix Socket", dim.Render("disabled")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Data"), "")
	if cfg.DataSource == model.DataSourceDuckDB {
		lines = append(lines, row(true, "DuckDB", dim.Render(shortenPath(cfg.DBPath))))
		if cfg.BackupEnabled {
			lines = append(lines, row(true, "Snapshots", dim.Render(shortenPath(cfg.BackupDir)+" every "+cfg.BackupInterval.String())))
		} else {
			lines = append(lines, row(false, "Snapshots", dim.Render("disabled")))
		}
		if cfg.RefreshInterval > 0 {
			lines = append(lines, row(true, "Re-sample", dim.Render("every "+cfg.RefreshInterval.String())))
		} else {
			lines = append(lines, row(false, "Re-sample", dim.Render("on demand")))
		}
	} else {
		lines = append(lines, row(true, "Mock data", dim.Render("in memory")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Analysis"), "")
	if cfg.APIKey != "" {
		lines = append(lines, row(true, "Model", dim.Render(cfg.Model)))
	} else {
		lines = append(lines, row(false, "Model", dim.Render("no API key (fallback only)")))
	}
	lines = append(lines, "")

	lines = append(lines, bold.Render("    Config"), "")
	if cfg.ConfigPath != "" {
		lines = append(lines, row(true, "Config File", dim.Render(shortenPath(cfg.ConfigPath))))
	} else {
		lines = append(lines, row(false, "Config File", dim.Render("default (no file)")))
	}

	lines = append(lines, "", separator, "")
	lines = append(lines, "    "+dim.Render("Press ")+yellow.Render("Ctrl+C")+dim.Render(" to stop"), "")

	fmt.Println(strings.Join(lines, "\n"))
}

func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
