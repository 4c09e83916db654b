// Package transport implements engine.Transport over HTTP. It resolves
// request paths against the API base URL, sets the default headers,
// authorizes with the developer token, rate limits outgoing calls and
// retries throttled responses.
package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quic-go/quic-go/http3"
	"golang.org/x/net/http2"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/sydlexius/amkit/engine"
	"github.com/sydlexius/amkit/internal/version"
)

// Defaults for Options fields left zero.
const (
	DefaultBaseURL = "https://api.music.apple.com/v1/"
	DefaultOrigin  = "https://music.apple.com"
	DefaultTimeout = 30 * time.Second
)

// HeaderRequestID tags each outgoing request for log correlation.
const HeaderRequestID = "X-Request-ID"

// maxBackoff caps the wait between retries.
const maxBackoff = 30 * time.Second

// Protocol selects the HTTP version used to reach the API.
type Protocol string

// Supported protocols.
const (
	HTTP1 Protocol = "h1"
	HTTP2 Protocol = "h2"
	HTTP3 Protocol = "h3"
)

// Valid reports whether p is a supported protocol. Empty selects HTTP2.
func (p Protocol) Valid() bool {
	switch p {
	case "", HTTP1, HTTP2, HTTP3:
		return true
	}
	return false
}

// Options configures an HTTP transport.
type Options struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string
	// Tokens supplies the developer token sent as the bearer credential.
	Tokens oauth2.TokenSource
	// UserAgent defaults to amkit/<version>.
	UserAgent string
	// Origin defaults to DefaultOrigin.
	Origin string
	// Timeout bounds each attempt. Defaults to DefaultTimeout.
	Timeout time.Duration
	// RequestsPerSecond limits the outgoing rate; zero disables limiting.
	RequestsPerSecond float64
	// Burst is the limiter bucket size; values below 1 mean 1.
	Burst int
	// MaxRetries is how many times a 429 or 503 reply is retried.
	MaxRetries int
	// Protocol selects the HTTP version.
	Protocol Protocol
	// Base replaces the protocol-specific round tripper, for tests.
	Base http.RoundTripper
	Logger *slog.Logger
}

// HTTP sends engine requests over HTTP. It is safe for concurrent use.
type HTTP struct {
	client     *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *slog.Logger
	userAgent  string
	origin     string
	maxRetries int
	closer     io.Closer
}

var _ engine.Transport = (*HTTP)(nil)

// New creates an HTTP transport.
func New(opts Options) (*HTTP, error) {
	if opts.Tokens == nil {
		return nil, errors.New("transport: developer token source is required")
	}
	if !opts.Protocol.Valid() {
		return nil, fmt.Errorf("transport: unsupported protocol %q", opts.Protocol)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("transport: invalid base URL %q", baseURL)
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	base := opts.Base
	var closer io.Closer
	if base == nil {
		base, closer, err = roundTripper(opts.Protocol)
		if err != nil {
			return nil, err
		}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := max(opts.Burst, 1)

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "amkit/" + version.Version
	}
	origin := opts.Origin
	if origin == "" {
		origin = DefaultOrigin
	}

	return &HTTP{
		client: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: opts.Tokens, Base: base},
		},
		baseURL:    strings.TrimRight(baseURL, "/") + "/",
		limiter:    rate.NewLimiter(limit, burst),
		logger:     logger.With(slog.String("component", "transport")),
		userAgent:  userAgent,
		origin:     origin,
		maxRetries: max(opts.MaxRetries, 0),
		closer:     closer,
	}, nil
}

// roundTripper builds the base round tripper for a protocol.
func roundTripper(p Protocol) (http.RoundTripper, io.Closer, error) {
	switch p {
	case HTTP3:
		t := &http3.Transport{
			TLSClientConfig: &tls.Config{MinVersion: tls.VersionTLS13},
		}
		return t, t, nil
	case HTTP1:
		t := newHTTPTransport()
		// A non-nil empty map disables the automatic HTTP/2 upgrade.
		t.TLSNextProto = map[string]func(string, *tls.Conn) http.RoundTripper{}
		return t, nil, nil
	default:
		t := newHTTPTransport()
		if err := http2.ConfigureTransport(t); err != nil {
			return nil, nil, fmt.Errorf("transport: configuring http2: %w", err)
		}
		return t, nil, nil
	}
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
	}
}

// Send issues req, waiting on the rate limiter before every attempt and
// retrying 429 and 503 replies up to the configured limit.
func (t *HTTP) Send(ctx context.Context, req *engine.Request) (*engine.Reply, error) {
	target := t.baseURL + strings.TrimLeft(req.Path, "/")
	if req.Query != "" {
		target += "?" + req.Query
	}
	requestID := uuid.NewString()
	logger := t.logger.With(
		slog.String("request_id", requestID),
		slog.String("method", req.Method),
		slog.String("path", req.Path),
	)

	for attempt := 0; ; attempt++ {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		httpReq, err := t.newRequest(ctx, req, target, requestID)
		if err != nil {
			return nil, err
		}

		logger.Debug("sending request", slog.Int("attempt", attempt+1))
		resp, err := t.client.Do(httpReq) //nolint:gosec // URL built from configured base + escaped path
		if err != nil {
			return nil, err
		}

		if !retryable(resp.StatusCode) || attempt >= t.maxRetries {
			return &engine.Reply{
				StatusCode: resp.StatusCode,
				Header:     resp.Header,
				Body:       resp.Body,
			}, nil
		}

		wait := retryDelay(resp.Header, attempt, time.Now())
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		resp.Body.Close() //nolint:errcheck

		logger.Warn("retrying throttled request",
			slog.Int("status", resp.StatusCode),
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (t *HTTP) newRequest(ctx context.Context, req *engine.Request, target, requestID string) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", t.userAgent)
	httpReq.Header.Set("Origin", t.origin)
	httpReq.Header.Set(HeaderRequestID, requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, values := range req.Header {
		httpReq.Header.Del(key)
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	return httpReq, nil
}

// Close releases the HTTP/3 connection pool, if any.
func (t *HTTP) Close() error {
	t.client.CloseIdleConnections()
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

func retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// retryDelay honors Retry-After as seconds or an HTTP date, falling back to
// exponential backoff from 500ms.
func retryDelay(h http.Header, attempt int, now time.Time) time.Duration {
	if v := h.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds >= 0 {
			return min(time.Duration(seconds)*time.Second, maxBackoff)
		}
		if at, err := http.ParseTime(v); err == nil {
			return min(max(at.Sub(now), 0), maxBackoff)
		}
	}
	if attempt > 5 {
		return maxBackoff
	}
	return min(500*time.Millisecond<<attempt, maxBackoff)
}
