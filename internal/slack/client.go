package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"matchrelay/internal/config"
	"matchrelay/internal/types"
)

// maxResponseBodyRead limits how much of the Slack response body we read.
// Incoming-webhook responses are tiny ("ok" or a short error string); the
// cap protects against a misbehaving endpoint.
const maxResponseBodyRead = 4096

// DeliveryResult is the outcome of a webhook POST, passed through unchanged
// to the relay's caller. Delivery is best-effort and never retried here.
type DeliveryResult struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

// payload is the incoming-webhook message envelope.
type payload struct {
	Text string `json:"text"`
}

// Client posts rendered messages to Slack incoming webhooks. Outbound calls
// run through a circuit breaker so a dead Slack endpoint fails fast instead
// of tying up request handlers for the full timeout, but there is no retry
// loop: one inbound notification produces at most one outbound POST.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a Client from the Slack configuration.
func NewClient(cfg config.SlackConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "slack-webhook",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    cb,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}
}

// NewClientWithHTTPClient creates a Client with a caller-supplied HTTP
// client. This constructor exists for testing against httptest servers.
func NewClientWithHTTPClient(cfg config.SlackConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	c := NewClient(cfg, logger)
	c.httpClient = httpClient
	return c
}

// Post delivers a rendered message to the given webhook URL and returns the
// Slack status and body verbatim. A transport-level failure (connection
// refused, timeout, open breaker) maps to an upstream AppError; any HTTP
// status Slack returns, including errors, is a completed delivery attempt
// from the relay's point of view and is reported in the result.
func (c *Client) Post(ctx context.Context, url, message string) (DeliveryResult, error) {
	body, err := json.Marshal(payload{Text: message})
	if err != nil {
		return DeliveryResult{}, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to encode slack payload",
			err,
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return DeliveryResult{}, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to build slack request",
			err,
		)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/plain")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if reqID := types.GetRequestID(ctx); reqID != "" {
		req.Header.Set("X-Request-Id", reqID)
	}

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.httpClient.Do(req)
	})
	if err != nil {
		c.logger.ErrorContext(ctx, "slack delivery failed",
			"error", err,
		)
		return DeliveryResult{}, types.NewAppError(
			types.ErrCodeUpstreamSlack,
			"slack webhook unreachable",
			err,
		)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyRead))
	if err != nil {
		respBody = []byte(fmt.Sprintf("failed to read response body: %v", err))
	}

	result := DeliveryResult{
		StatusCode: resp.StatusCode,
		Body:       string(respBody),
	}

	c.logger.InfoContext(ctx, "slack delivery completed",
		"status", result.StatusCode,
		"response", result.Body,
	)

	return result, nil
}
