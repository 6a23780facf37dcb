package workflowapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPStatusError carries the engine's non-2xx response for classification
// and message extraction.
type HTTPStatusError struct {
	Operation  string
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e == nil {
		return "workflow engine status error"
	}
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("workflow %s status: %s", e.Operation, e.Status)
	}
	return fmt.Sprintf("workflow %s status: %s: %s", e.Operation, e.Status, msg)
}

// Message returns the engine-provided human-readable message when the body
// is the usual {"error": "..."} or {"message": "..."} envelope, else the raw
// body.
func (e *HTTPStatusError) Message() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return ""
	}
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return body
}

// doJSON issues one authenticated engine call through the resilience
// executor. payload and out may be nil for body-less requests and empty
// responses.
func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any, operation string) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", operation, err)
		}
	}

	start := time.Now()
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		return c.attempt(ctx, method, path, token, body, out, operation)
	}, classifyEngineError)
	c.observe(operation, err, time.Since(start))
	return translateEngineError(operation, err)
}

func (c *Client) attempt(ctx context.Context, method, path, token string, body []byte, out any, operation string) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", operation, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("workflow %s request: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &HTTPStatusError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", operation, err)
	}
	return nil
}

func (c *Client) observe(operation string, err error, duration time.Duration) {
	if c.observer == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.observer.ObserveRemoteCall(operation, outcome, duration)
}
