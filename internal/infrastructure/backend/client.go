// Package backend is the HTTP client for the remote document-processing
// service. It owns nothing: every call reads or mutates state whose durable
// truth lives on the server.
package backend

import (
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/DocuuAI/docsyncd/internal/core/ports"
	"github.com/DocuuAI/docsyncd/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	tokens     ports.TokenSource
	httpClient *http.Client
	limiter    *rate.Limiter
	executor   *resilience.Executor
	observe    func(operation string, elapsed time.Duration)
}

type Options struct {
	// Timeout bounds every request so a dead backend cannot leave an
	// optimistic mutation pending forever.
	Timeout time.Duration
	// RequestsPerSecond paces all outbound calls; polling loops share the
	// same budget as interactive mutations. Zero disables pacing.
	RequestsPerSecond float64
	// Executor, when set, wraps read-only calls with retry and circuit
	// breaking. Mutations are never retried automatically: retry of an
	// update or delete is the caller's decision.
	Executor *resilience.Executor
	// ObserveRequest, when set, receives the duration of every outbound
	// request attempt.
	ObserveRequest func(operation string, elapsed time.Duration)
}

func New(baseURL string, tokens ports.TokenSource, options Options) *Client {
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if options.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(options.RequestsPerSecond), int(options.RequestsPerSecond)+1)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		executor:   options.Executor,
		observe:    options.ObserveRequest,
	}
}
