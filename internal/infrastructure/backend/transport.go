package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/DocuuAI/docsyncd/internal/core/domain"
)

const requestIDHeader = "X-Request-Id"

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, domain.WrapError(domain.ErrUnauthorized, "fetch token", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if c.observe != nil {
		c.observe(method+" "+path, time.Since(start))
	}
	if err != nil {
		return nil, domain.WrapError(domain.ErrRemoteUnavailable, fmt.Sprintf("%s %s", method, path), err)
	}
	if resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, statusError(method, path, resp)
	}
	return resp, nil
}

// getJSON is the read path: when an executor is configured the call retries
// on transient failures behind the circuit breaker.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	call := func(ctx context.Context) error {
		resp, err := c.do(ctx, http.MethodGet, path, nil, "")
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode GET %s response: %w", path, err)
		}
		return nil
	}
	if c.executor == nil {
		return call(ctx)
	}
	return c.executor.Execute(ctx, "backend.get "+path, call, classifyRemoteError)
}

// sendJSON is the mutation path: exactly one outbound call per invocation,
// never retried here.
func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}
	resp, err := c.do(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.do(ctx, http.MethodDelete, path, nil, "")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func statusError(method, path string, resp *http.Response) error {
	op := fmt.Sprintf("%s %s", method, path)
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = resp.Status
	}

	var kind error
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		kind = domain.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		kind = domain.ErrNotFound
	case resp.StatusCode >= 500:
		kind = domain.ErrRemoteUnavailable
	default:
		return fmt.Errorf("%s status %d: %s", op, resp.StatusCode, msg)
	}
	return domain.WrapError(kind, op, fmt.Errorf("status %d: %s", resp.StatusCode, msg))
}
