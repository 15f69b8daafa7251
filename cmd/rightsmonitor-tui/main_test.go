package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

func TestLoadCLIConfig(t *testing.T) {
	t.Setenv("RIGHTSMONITOR_REGION", "europe-west4")

	path := filepath.Join(t.TempDir(), "config.yml")
	body := "data-source: socket\nrefresh-interval: 5s\nreverse-scroll-wheel: true\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("loadCLIConfig: %v", err)
	}
	if cfg.DataSource != model.DataSourceSocket {
		t.Errorf("data-source = %q", cfg.DataSource)
	}
	if cfg.Region != "europe-west4" {
		t.Errorf("region = %q, want env override", cfg.Region)
	}
	if cfg.RefreshInterval.Seconds() != 5 || !cfg.ReverseScrollWheel {
		t.Errorf("refresh = %s reverse = %v", cfg.RefreshInterval, cfg.ReverseScrollWheel)
	}
}

func TestLoadCLIConfigRejectsUnknownSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("data-source: http\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadCLIConfig(path); err == nil || !strings.Contains(err.Error(), "invalid data-source") {
		t.Errorf("err = %v", err)
	}
}

func TestOpenProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     cliConfig
		wantErr string
		regen   bool
	}{
		{name: "mock", cfg: cliConfig{DataSource: model.DataSourceMock}, regen: true},
		{name: "duckdb in memory", cfg: cliConfig{DataSource: model.DataSourceDuckDB}, regen: true},
		{name: "socket without server", cfg: cliConfig{DataSource: model.DataSourceSocket, SocketPath: "/nonexistent/rm.sock"}, wantErr: "cannot connect"},
		{name: "unknown", cfg: cliConfig{DataSource: "http"}, wantErr: "invalid data-source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, cleanup, err := openProvider(tt.cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("openProvider: %v", err)
			}
			defer cleanup()

			incidents, err := p.Incidents(context.Background())
			if err != nil || len(incidents) != 4 {
				t.Fatalf("incidents = %d (%v), want 4", len(incidents), err)
			}
			if _, ok := p.(model.Regenerator); ok != tt.regen {
				t.Errorf("Regenerator = %v, want %v", ok, tt.regen)
			}
		})
	}
}
