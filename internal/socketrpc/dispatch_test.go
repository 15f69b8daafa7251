package socketrpc

import (
	"encoding/json"
	"math/rand/v2"
	"testing"

	"github.com/thobs40/LLM-Rights-Monitor/internal/mockdata"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// readOnly hides the mock provider's Regenerate method.
type readOnly struct{ model.Provider }

func newTestDispatcher(t *testing.T, wrap bool) *Server {
	t.Helper()
	p, err := mockdata.New(mockdata.WithRand(rand.New(rand.NewPCG(3, 5))))
	if err != nil {
		t.Fatalf("mockdata.New: %v", err)
	}
	if wrap {
		return NewServer("/unused", readOnly{p}, nil)
	}
	return NewServer("/unused", p, nil)
}

func TestDispatchMethods(t *testing.T) {
	t.Parallel()
	srv := newTestDispatcher(t, false)

	tests := []struct {
		method string
		params string
		check  func(t *testing.T, raw json.RawMessage)
	}{
		{"Incidents", "", func(t *testing.T, raw json.RawMessage) {
			var v []model.Incident
			if err := json.Unmarshal(raw, &v); err != nil || len(v) != 4 {
				t.Errorf("incidents = %d (%v), want 4", len(v), err)
			}
		}},
		{"Metrics", "null", func(t *testing.T, raw json.RawMessage) {
			var v []model.MetricPoint
			if err := json.Unmarshal(raw, &v); err != nil || len(v) != model.DefaultMetricPoints {
				t.Errorf("metrics = %d (%v)", len(v), err)
			}
		}},
		{"QualityRules", "", func(t *testing.T, raw json.RawMessage) {
			var v []model.DataQualityRule
			if err := json.Unmarshal(raw, &v); err != nil || len(v) != 5 {
				t.Errorf("rules = %d (%v), want 5", len(v), err)
			}
		}},
		{"RuleHistory", `{"RuleID":"dq-002"}`, func(t *testing.T, raw json.RawMessage) {
			var v model.RuleHistory
			if err := json.Unmarshal(raw, &v); err != nil || v.RuleID != "dq-002" {
				t.Errorf("history = %+v (%v)", v, err)
			}
		}},
		{"TelemetryNodes", "", func(t *testing.T, raw json.RawMessage) {
			var v []model.TelemetryNode
			if err := json.Unmarshal(raw, &v); err != nil || len(v) == 0 {
				t.Errorf("nodes = %d (%v)", len(v), err)
			}
		}},
		{"Regenerate", "", func(t *testing.T, raw json.RawMessage) {
			if string(raw) != "null" {
				t.Errorf("regenerate result = %s, want null", raw)
			}
		}},
	}

	for i, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			resp := srv.dispatch(Request{JSONRPC: "2.0", ID: i + 1, Method: tt.method, Params: json.RawMessage(tt.params)})
			if resp.Error != nil {
				t.Fatalf("error: %v", resp.Error)
			}
			if resp.ID != i+1 {
				t.Errorf("id = %d, want %d", resp.ID, i+1)
			}
			tt.check(t, resp.Result)
		})
	}
}

func TestDispatchErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		readOnly bool
		method   string
		params   string
		code     int
	}{
		{"unknown method", false, "DropTables", "", codeMethodNotFound},
		{"missing rule id", false, "RuleHistory", "{}", codeInvalidParams},
		{"malformed params", false, "RuleHistory", "[1,2", codeInvalidParams},
		{"unknown rule", false, "RuleHistory", `{"RuleID":"dq-999"}`, codeNotFound},
		{"regenerate unsupported", true, "Regenerate", "", codeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestDispatcher(t, tt.readOnly)
			resp := srv.dispatch(Request{JSONRPC: "2.0", ID: 1, Method: tt.method, Params: json.RawMessage(tt.params)})
			if resp.Error == nil {
				t.Fatalf("expected error, got result %s", resp.Result)
			}
			if resp.Error.Code != tt.code {
				t.Errorf("code = %d, want %d (%s)", resp.Error.Code, tt.code, resp.Error.Message)
			}
		})
	}
}
