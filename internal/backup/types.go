package backup

import (
	"log/slog"
	"time"
)

// Config controls periodic DuckDB snapshots.
type Config struct {
	Enabled  bool
	Interval time.Duration
	LocalDir string
	KeepLast int
	Logger   *slog.Logger
}

// Snapshotter is the store contract the manager needs.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(dstPath string) error
}
