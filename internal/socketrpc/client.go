package socketrpc

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// ErrUnsupported is returned by Regenerate when the served provider cannot
// re-sample its data.
var ErrUnsupported = errors.New("socketrpc: regenerate not supported by server")

// Client implements model.Provider over a Unix domain socket using JSON-RPC 2.0.
type Client struct {
	conn    net.Conn
	mu      sync.Mutex
	nextID  int
	scanner *bufio.Scanner
	encoder *json.Encoder
}

var (
	_ model.Provider    = (*Client)(nil)
	_ model.Regenerator = (*Client)(nil)
)

// Dial connects to the socket RPC server at the given path.
func Dial(socketPath string) (*Client, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("socketrpc: dial: %w", err)
	}
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, scannerInitBufSize), scannerMaxTokenSize)
	return &Client{
		conn:    conn,
		scanner: scanner,
		encoder: json.NewEncoder(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// call performs a JSON-RPC call and unmarshals the result into dest.
// The connection deadline follows ctx, capped at 30 seconds.
func (c *Client) call(ctx context.Context, method string, params any, dest any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID

	paramsData, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("socketrpc: marshal params: %w", err)
	}

	req := Request{
		JSONRPC: "2.0",
		ID:      id,
		Method:  method,
		Params:  paramsData,
	}

	deadline := time.Now().Add(callTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	c.conn.SetDeadline(deadline)
	defer c.conn.SetDeadline(time.Time{})

	if err := c.encoder.Encode(req); err != nil {
		return fmt.Errorf("socketrpc: send: %w", err)
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return fmt.Errorf("socketrpc: read: %w", err)
		}
		return fmt.Errorf("socketrpc: connection closed")
	}

	var resp Response
	if err := json.Unmarshal(c.scanner.Bytes(), &resp); err != nil {
		return fmt.Errorf("socketrpc: unmarshal response: %w", err)
	}

	if resp.Error != nil {
		switch resp.Error.Code {
		case codeNotFound:
			return fmt.Errorf("%w: %s", model.ErrNotFound, resp.Error.Message)
		case codeUnsupported:
			return ErrUnsupported
		}
		return resp.Error
	}

	if dest != nil {
		if err := json.Unmarshal(resp.Result, dest); err != nil {
			return fmt.Errorf("socketrpc: unmarshal result: %w", err)
		}
	}
	return nil
}

func (c *Client) Incidents(ctx context.Context) ([]model.Incident, error) {
	var result []model.Incident
	err := c.call(ctx, "Incidents", nil, &result)
	return result, err
}

func (c *Client) Metrics(ctx context.Context) ([]model.MetricPoint, error) {
	var result []model.MetricPoint
	err := c.call(ctx, "Metrics", nil, &result)
	return result, err
}

func (c *Client) KPIs(ctx context.Context) ([]model.KPI, error) {
	var result []model.KPI
	err := c.call(ctx, "KPIs", nil, &result)
	return result, err
}

func (c *Client) QualityRules(ctx context.Context) ([]model.DataQualityRule, error) {
	var result []model.DataQualityRule
	err := c.call(ctx, "QualityRules", nil, &result)
	return result, err
}

func (c *Client) RuleHistory(ctx context.Context, ruleID string) (model.RuleHistory, error) {
	var result model.RuleHistory
	err := c.call(ctx, "RuleHistory", map[string]any{"RuleID": ruleID}, &result)
	return result, err
}

func (c *Client) TelemetryNodes(ctx context.Context) ([]model.TelemetryNode, error) {
	var result []model.TelemetryNode
	err := c.call(ctx, "TelemetryNodes", nil, &result)
	return result, err
}

func (c *Client) TelemetryNotes(ctx context.Context) ([]model.TelemetryNote, error) {
	var result []model.TelemetryNote
	err := c.call(ctx, "TelemetryNotes", nil, &result)
	return result, err
}

// Regenerate asks the server to re-sample its data.
func (c *Client) Regenerate(ctx context.Context) error {
	return c.call(ctx, "Regenerate", nil, nil)
}
