// Package rca asks a generative model for a root-cause analysis of an incident.
package rca

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/thobs40/LLM-Rights-Monitor/internal/metrics"
	"github.com/thobs40/LLM-Rights-Monitor/internal/model"
)

// Analysis is the model's diagnosis of an incident.
type Analysis struct {
	RootCause   string `json:"rootCause"`
	Remediation string `json:"remediation"`
}

// Fallback is returned whenever the model cannot produce a usable analysis.
var Fallback = Analysis{
	RootCause:   "Anomalous prompt behavior detected in Vertex AI latency spikes.",
	Remediation: "Scale Cloud Run instances and check Vertex AI quota limits.",
}

// promptTemplate keeps the line breaks and indentation the instruction has
// always been sent with.
const promptTemplate = "As an AI Observability Specialist, analyze this incident data and provide a concise Root Cause Analysis and specific remediation steps. \n" +
	"      Incident Data: %s\n" +
	`      Format: Return as JSON with "rootCause" and "remediation" fields.`

// Analyzer produces root-cause analyses for incidents.
type Analyzer interface {
	Analyze(ctx context.Context, inc model.Incident) Analysis
}

// Config configures a Client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// Timeout bounds each request; zero leaves only the caller's context.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	api     *openai.Client
	model   string
	timeout time.Duration
	hasKey  bool
	logger  *slog.Logger
}

var _ Analyzer = (*Client)(nil)

// NewClient builds a Client. A missing key is allowed; every call then
// returns Fallback without touching the network.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = model.DefaultAnalysisModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = model.DefaultAnalysisBaseURL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPClient != nil {
		apiCfg.HTTPClient = cfg.HTTPClient
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		hasKey:  strings.TrimSpace(cfg.APIKey) != "",
		logger:  cfg.Logger.With("component", "rca"),
	}
}

// Analyze returns the model's analysis of inc, or Fallback on any failure.
// Failures are logged and counted but never returned.
func (c *Client) Analyze(ctx context.Context, inc model.Incident) Analysis {
	start := time.Now()
	requestID := uuid.NewString()
	logger := c.logger.With("request_id", requestID, "incident", inc.ID)

	result, err := c.analyze(ctx, inc)
	if err != nil {
		metrics.ObserveAnalysis(time.Since(start), metrics.OutcomeFallback)
		logger.Warn("analysis failed, using fallback", "error", err)
		return Fallback
	}

	metrics.ObserveAnalysis(time.Since(start), metrics.OutcomeSuccess)
	logger.Info("analysis complete", "duration", time.Since(start))
	return result
}

func (c *Client) analyze(ctx context.Context, inc model.Incident) (Analysis, error) {
	if !c.hasKey {
		return Analysis{}, &Error{Op: "config", Err: ErrMissingAPIKey}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(inc)
	if err != nil {
		return Analysis{}, &Error{Op: "encode", Err: err}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, payload)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return Analysis{}, &Error{Op: "request", Err: err}
	}
	if len(resp.Choices) == 0 {
		return Analysis{}, &Error{Op: "response", Err: ErrNoChoices}
	}

	return parseAnalysis(resp.Choices[0].Message.Content)
}

// parseAnalysis decodes the model's reply, which must be a bare JSON object.
// Anything else, a fenced block included, is a decode failure.
func parseAnalysis(content string) (Analysis, error) {
	var out Analysis
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &out); err != nil {
		return Analysis{}, &Error{Op: "decode", Err: err}
	}
	if strings.TrimSpace(out.RootCause) == "" || strings.TrimSpace(out.Remediation) == "" {
		return Analysis{}, &Error{Op: "decode", Err: ErrIncompleteAnalysis}
	}
	return out, nil
}

// Sentinel causes wrapped by Error.
var (
	ErrMissingAPIKey      = errors.New("no API key configured")
	ErrNoChoices          = errors.New("response contained no choices")
	ErrIncompleteAnalysis = errors.New("response missing rootCause or remediation")
)

// Error wraps the failing step of an analysis with its cause.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rca %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
