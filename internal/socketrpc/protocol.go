package socketrpc

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// JSON-RPC 2.0 Method Reference
//
// The socket RPC server exposes model.Provider over a Unix domain socket so
// the dashboard can read from a running service instead of opening the
// database itself.
//
//   Method            Params               Result
//   ──────────────    ─────────────────    ─────────────────────
//   Incidents         (none)               []Incident
//   Metrics           (none)               []MetricPoint
//   KPIs              (none)               []KPI
//   QualityRules      (none)               []DataQualityRule
//   RuleHistory       {RuleID: string}     RuleHistory
//   TelemetryNodes    (none)               []TelemetryNode
//   TelemetryNotes    (none)               []TelemetryNote
//   Regenerate        (none)               null
//
// Error codes follow JSON-RPC 2.0:
//   -32700  Parse error (malformed JSON)
//   -32601  Method not found
//   -32602  Invalid params
//   -32603  Internal error (marshal failure)
//   -32000  Application error (provider failure)
//   -32004  Record not found
//   -32005  Regenerate not supported by the served provider

const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternal       = -32603
	codeApplication    = -32000
	codeNotFound       = -32004
	codeUnsupported    = -32005
)

// Request is a JSON-RPC 2.0 request.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Response is a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC 2.0 error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string { return e.Message }

// DefaultSocketPath returns the default Unix socket path.
// It prefers $XDG_RUNTIME_DIR/rightsmonitor/rightsmonitor.sock, falling back to
// ~/.local/state/rightsmonitor/rightsmonitor.sock.
func DefaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "rightsmonitor", "rightsmonitor.sock")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/rightsmonitor.sock"
	}
	return filepath.Join(home, ".local", "state", "rightsmonitor", "rightsmonitor.sock")
}
