package model

import "time"

// Shared defaults used by both the server and dashboard binaries.
const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultRegion          = "us-central1"
	DefaultMetricPoints    = 24
	DefaultHistoryPoints   = 12
	DefaultAnalysisModel   = "gemini-3-flash-preview"
	DefaultAnalysisBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultDataSource      = DataSourceMock
)

// Data source names accepted by the data-source config key.
const (
	DataSourceMock   = "mock"
	DataSourceDuckDB = "duckdb"
	// DataSourceSocket reads from a running server over its Unix socket.
	// Only the dashboard accepts it.
	DataSourceSocket = "socket"
)
