package duckdb

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

func TestSnapshotToRestoresSameData(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "rightsmonitor.duckdb")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	if err := store.Seed(ctx, newTestSource(t)); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	snapshotPath := filepath.Join(t.TempDir(), "backups", "snapshot.duckdb")
	if err := store.SnapshotTo(snapshotPath); err != nil {
		t.Fatalf("SnapshotTo: %v", err)
	}

	restored, err := NewStore(snapshotPath)
	if err != nil {
		t.Fatalf("open snapshot: %v", err)
	}
	t.Cleanup(func() { _ = restored.Close() })

	want, err := store.QualityRules(ctx)
	if err != nil {
		t.Fatalf("QualityRules: %v", err)
	}
	got, err := restored.QualityRules(ctx)
	if err != nil {
		t.Fatalf("restored QualityRules: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("restored %d rules, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("rule %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSnapshotToInMemoryStore(t *testing.T) {
	t.Parallel()

	store := newTestStore(t)
	err := store.SnapshotTo(filepath.Join(t.TempDir(), "snapshot.duckdb"))
	if !errors.Is(err, ErrInMemoryStore) {
		t.Fatalf("err = %v, want %v", err, ErrInMemoryStore)
	}
}

func TestSnapshotToDuringRegenerate(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "rightsmonitor.duckdb")
	store, err := NewStore(dbPath)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	src := newTestSource(t)
	if err := store.Seed(ctx, src); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	mirror := NewMirror(store, src)

	stop := make(chan struct{})
	regenErr := make(chan error, 1)
	go func() {
		defer close(regenErr)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if err := mirror.Regenerate(ctx); err != nil {
				regenErr <- err
				return
			}
		}
	}()

	backupDir := t.TempDir()
	var paths []string
	for i := 0; i < 4; i++ {
		path := filepath.Join(backupDir, fmt.Sprintf("snapshot-%d.duckdb", i))
		if err := store.SnapshotTo(path); err != nil {
			close(stop)
			t.Fatalf("SnapshotTo #%d: %v", i, err)
		}
		paths = append(paths, path)
	}
	close(stop)
	if err := <-regenErr; err != nil {
		t.Fatalf("Regenerate: %v", err)
	}

	for _, path := range paths {
		snap, err := NewStore(path)
		if err != nil {
			t.Fatalf("open %s: %v", path, err)
		}
		rules, rerr := snap.QualityRules(ctx)
		points, perr := snap.Metrics(ctx)
		incs, ierr := snap.Incidents(ctx)
		_ = snap.Close()
		if rerr != nil || perr != nil || ierr != nil {
			t.Fatalf("read %s: %v %v %v", path, rerr, perr, ierr)
		}
		if len(rules) != 5 || len(points) != model.DefaultMetricPoints || len(incs) != 4 {
			t.Errorf("%s holds %d rules, %d points, %d incidents; want a complete data set",
				filepath.Base(path), len(rules), len(points), len(incs))
		}
	}
}
