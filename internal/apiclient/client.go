// Package apiclient talks to the remote burial records REST API.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"burialdesk/internal/config"
)

// TokenHeader carries the session token on every API request.
const TokenHeader = "x-auth-token"

// TokenSource yields the current session token ("" when logged out).
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// errorBody covers both error shapes the API emits.
type errorBody struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (b errorBody) text() string {
	if b.Msg != "" {
		return b.Msg
	}
	return b.Message
}

// messageBody is the acknowledgement returned by mutating endpoints.
type messageBody struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (b messageBody) text() string {
	if b.Msg != "" {
		return b.Msg
	}
	return b.Message
}

// Client is a typed client for the remote API. It is safe for concurrent use.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New builds a Client. tokens may be nil for anonymous use.
func New(cfg config.APIConfig, tokens TokenSource, log *zap.Logger) *Client {
	hc := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(retryIdempotent).
		SetLogger(log.Sugar()).
		SetTransport(otelhttp.NewTransport(http.DefaultTransport)).
		SetHeader("Accept", "application/json")

	if tokens != nil {
		hc.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			tok, err := tokens.Token(r.Context())
			if err != nil {
				return fmt.Errorf("read session token: %w", err)
			}
			if tok != "" {
				r.SetHeader(TokenHeader, tok)
			}
			return nil
		})
	}

	return &Client{http: hc, log: log}
}

// retryIdempotent retries reads after a transport error. Writes are never
// resent: a timed-out POST may already have been applied by the server.
func retryIdempotent(r *resty.Response, err error) bool {
	if err == nil || r == nil || r.Request == nil {
		return false
	}
	return r.Request.Method == resty.MethodGet || r.Request.Method == resty.MethodHead
}

// do executes one request. configure adds params/body; out receives a 2xx JSON body.
func (c *Client) do(ctx context.Context, method, path string, configure func(*resty.Request), out any) error {
	var eb errorBody
	req := c.http.R().SetContext(ctx).SetError(&eb)
	if out != nil {
		req.SetResult(out)
	}
	if configure != nil {
		configure(req)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		c.log.Error("api request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		apiErr := &APIError{StatusCode: resp.StatusCode(), Message: eb.text()}
		c.log.Warn("api request rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status_code", apiErr.StatusCode),
			zap.String("message", apiErr.Message),
		)
		return apiErr
	}

	c.log.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("latency", resp.Time()),
	)
	return nil
}

func withID(id string) func(*resty.Request) {
	return func(r *resty.Request) { r.SetPathParam("id", id) }
}
