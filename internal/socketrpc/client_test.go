package socketrpc_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thobs40/LLM-Rights-Monitor/internal/mockdata"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
	"github.com/thobs40/LLM-Rights-Monitor/internal/socketrpc"
)

func startTestServer(t *testing.T, provider model.Provider) string {
	t.Helper()
	sockPath := filepath.Join(t.TempDir(), "test.sock")
	srv := socketrpc.NewServer(sockPath, provider, nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(srv.Stop)
	return sockPath
}

func dialTestClient(t *testing.T, sockPath string) *socketrpc.Client {
	t.Helper()
	client, err := socketrpc.Dial(sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func newProvider(t *testing.T) *mockdata.Provider {
	t.Helper()
	p, err := mockdata.New(mockdata.WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("mockdata.New: %v", err)
	}
	return p
}

func TestRoundtrip(t *testing.T) {
	p := newProvider(t)
	client := dialTestClient(t, startTestServer(t, p))
	ctx := context.Background()

	t.Run("Incidents", func(t *testing.T) {
		got, err := client.Incidents(ctx)
		if err != nil {
			t.Fatalf("Incidents: %v", err)
		}
		want, _ := p.Incidents(ctx)
		if len(got) != len(want) || got[0].ID != want[0].ID || got[0].Title != want[0].Title {
			t.Errorf("got %+v, want %+v", got, want)
		}
	})

	t.Run("Metrics", func(t *testing.T) {
		got, err := client.Metrics(ctx)
		if err != nil {
			t.Fatalf("Metrics: %v", err)
		}
		want, _ := p.Metrics(ctx)
		if len(got) != len(want) || got[5] != want[5] {
			t.Errorf("point 5 = %+v, want %+v", got[5], want[5])
		}
	})

	t.Run("KPIs", func(t *testing.T) {
		got, err := client.KPIs(ctx)
		if err != nil || len(got) != 4 {
			t.Fatalf("KPIs = %d (%v), want 4", len(got), err)
		}
	})

	t.Run("QualityRules", func(t *testing.T) {
		got, err := client.QualityRules(ctx)
		if err != nil || len(got) != 5 {
			t.Fatalf("rules = %d (%v), want 5", len(got), err)
		}
		if got[1].Status != model.RuleCritical {
			t.Errorf("dq-002 status = %s, want Critical", got[1].Status)
		}
	})

	t.Run("RuleHistory", func(t *testing.T) {
		got, err := client.RuleHistory(ctx, "dq-001")
		if err != nil {
			t.Fatalf("RuleHistory: %v", err)
		}
		if got.RuleID != "dq-001" || len(got.Samples) == 0 || len(got.Events) == 0 {
			t.Errorf("history = %+v", got)
		}
	})

	t.Run("RuleHistoryNotFound", func(t *testing.T) {
		_, err := client.RuleHistory(ctx, "missing")
		if !errors.Is(err, model.ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("Telemetry", func(t *testing.T) {
		nodes, err := client.TelemetryNodes(ctx)
		if err != nil || len(nodes) != 4 {
			t.Fatalf("nodes = %d (%v), want 4", len(nodes), err)
		}
		notes, err := client.TelemetryNotes(ctx)
		if err != nil || len(notes) != 3 {
			t.Fatalf("notes = %d (%v), want 3", len(notes), err)
		}
	})

	t.Run("Regenerate", func(t *testing.T) {
		before, _ := client.Metrics(ctx)
		if err := client.Regenerate(ctx); err != nil {
			t.Fatalf("Regenerate: %v", err)
		}
		after, _ := client.Metrics(ctx)
		same := true
		for i := range before {
			if before[i] != after[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("Regenerate did not re-sample the metrics")
		}
	})
}

type readOnly struct{ model.Provider }

func TestRegenerateUnsupported(t *testing.T) {
	t.Parallel()
	client := dialTestClient(t, startTestServer(t, readOnly{newProvider(t)}))

	if err := client.Regenerate(context.Background()); !errors.Is(err, socketrpc.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}

func TestCancelledContextSkipsCall(t *testing.T) {
	t.Parallel()
	client := dialTestClient(t, startTestServer(t, newProvider(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Incidents(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	// The connection stays usable.
	if _, err := client.Incidents(context.Background()); err != nil {
		t.Errorf("Incidents after cancel: %v", err)
	}
}

func TestMalformedRequestKeepsConnection(t *testing.T) {
	t.Parallel()
	sockPath := startTestServer(t, newProvider(t))

	conn, err := net.Dial("unix", sockPath)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("not json\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	buf := make([]byte, 256)
	n, err := conn.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got := string(buf[:n]); !strings.Contains(got, "parse error") {
		t.Errorf("response = %q, want parse error", got)
	}
}

func TestStaleSocketIsReplaced(t *testing.T) {
	t.Parallel()
	sockPath := filepath.Join(t.TempDir(), "stale.sock")
	if err := os.WriteFile(sockPath, nil, 0o600); err != nil {
		t.Fatalf("write stale file: %v", err)
	}

	srv := socketrpc.NewServer(sockPath, newProvider(t), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("start over stale socket: %v", err)
	}
	defer srv.Stop()

	second := socketrpc.NewServer(sockPath, newProvider(t), nil)
	if err := second.Start(); err == nil {
		second.Stop()
		t.Fatal("second server should refuse a live socket")
	}
}

func TestStopRemovesSocket(t *testing.T) {
	t.Parallel()
	sockPath := filepath.Join(t.TempDir(), "stop.sock")
	srv := socketrpc.NewServer(sockPath, newProvider(t), nil)
	if err := srv.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	srv.Stop()
	srv.Stop() // idempotent

	if _, err := os.Stat(sockPath); !os.IsNotExist(err) {
		t.Errorf("socket file still present: %v", err)
	}
	if _, err := socketrpc.Dial(sockPath); err == nil {
		t.Error("dial after stop should fail")
	}
}
