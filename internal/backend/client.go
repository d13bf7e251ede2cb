package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "http://localhost:8082"
	RequestTimeout   = 30 * time.Second
	DialTimeout      = 10 * time.Second
	IdleConnTimeout  = 90 * time.Second
	KeepAlive        = 30 * time.Second
	MaxIdleConns     = 16
	RetryCount       = 3
	RetryWaitTime    = 100 * time.Millisecond
	RetryWaitTimeMax = 3 * time.Second
	UserAgent        = "mapconf"
)

// Options tune the HTTP client. Zero values use the package defaults.
type Options struct {
	BaseURL          string
	Timeout          time.Duration
	RetryCount       int
	RetryWaitTime    time.Duration
	RetryWaitTimeMax time.Duration
	UserAgent        string
	// Transport replaces the default pooled transport.
	Transport http.RoundTripper
	// NoRetry disables retries, RetryCount is ignored.
	NoRetry bool
}

// Client calls the conversion backend. It is safe for concurrent use.
type Client struct {
	http   *resty.Client
	logger *zap.SugaredLogger
}

// New creates a client. A nil logger discards the request log.
func New(opts Options, logger *zap.SugaredLogger) *Client {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	opts = opts.withDefaults()

	return &Client{
		http:   createHTTPClient(opts, logger),
		logger: logger,
	}
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// R creates a request bound to ctx.
func (c *Client) R(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

type noRetryKey struct{}

// withoutRetry marks requests that store a record, a replay after a failed
// answer could store it twice.
func withoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey{}, true)
}

// jsonR creates a request whose answer is decoded as JSON, even when the
// backend omits the content type.
func (c *Client) jsonR(ctx context.Context) *resty.Request {
	return c.R(ctx).
		SetHeader("Accept", "application/json").
		ExpectContentType("application/json")
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}

	o.BaseURL = strings.TrimRight(o.BaseURL, "/")

	if o.Timeout <= 0 {
		o.Timeout = RequestTimeout
	}

	if o.RetryCount <= 0 {
		o.RetryCount = RetryCount
	}

	if o.NoRetry {
		o.RetryCount = 0
	}

	if o.RetryWaitTime <= 0 {
		o.RetryWaitTime = RetryWaitTime
	}

	if o.RetryWaitTimeMax <= 0 {
		o.RetryWaitTimeMax = RetryWaitTimeMax
	}

	if o.UserAgent == "" {
		o.UserAgent = UserAgent
	}

	if o.Transport == nil {
		o.Transport = createTransport()
	}

	return o
}

func createHTTPClient(opts Options, logger *zap.SugaredLogger) *resty.Client {
	c := resty.New()
	c.SetLogger(logger)
	c.SetBaseURL(opts.BaseURL)
	c.SetHeader("User-Agent", opts.UserAgent)
	c.SetTimeout(opts.Timeout)
	c.SetTransport(opts.Transport)
	c.SetRetryCount(opts.RetryCount)
	c.SetRetryWaitTime(opts.RetryWaitTime)
	c.SetRetryMaxWaitTime(opts.RetryWaitTimeMax)
	c.SetRetryResetReaders(true)
	c.AddRetryCondition(retryCondition)
	c.AddRetryHook(func(res *resty.Response, err error) {
		if err != nil {
			logger.Warnf("HTTP request failed: %s", err)
			return
		}

		logger.Warnf("HTTP %s %s | %d | attempt %d failed", res.Request.Method, res.Request.URL, res.StatusCode(), res.Request.Attempt)
	})
	c.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		logger.Debugf("HTTP %s %s | %d | %s", res.Request.Method, res.Request.URL, res.StatusCode(), res.Time())
		return nil
	})

	return c
}

func retryCondition(res *resty.Response, err error) bool {
	if res != nil && res.Request != nil {
		if once, _ := res.Request.Context().Value(noRetryKey{}).(bool); once {
			return false
		}
	}

	if err != nil {
		// Unknown host, a retry cannot help.
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return false
		}

		return true
	}

	switch res.StatusCode() {
	case
		http.StatusRequestTimeout,
		http.StatusConflict,
		http.StatusLocked,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   DialTimeout,
		KeepAlive: KeepAlive,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          MaxIdleConns,
		MaxIdleConnsPerHost:   MaxIdleConns,
		IdleConnTimeout:       IdleConnTimeout,
		TLSHandshakeTimeout:   DialTimeout,
		ResponseHeaderTimeout: RequestTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// check wraps a transport error or a failed response into an error.
func check(res *resty.Response, err error, fallback string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}

	if res.IsError() {
		return newAPIError(res, fallback)
	}

	return nil
}
