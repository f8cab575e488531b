package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/quiz-client/internal/config"
	"github.com/spec-kit/quiz-client/internal/observability"
	apperrors "github.com/spec-kit/quiz-client/pkg/util"
)

// TokenSource supplies the current credential. It is consulted fresh on every
// request so a token refreshed or cleared between calls is honored
// immediately.
type TokenSource interface {
	Token() string
}

// Client issues authenticated requests against the quiz API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New builds a client for the configured base URL.
func New(cfg config.APIConfig, tokens TokenSource, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
		tokens:  tokens,
		logger:  logger,
		metrics: metrics,
	}
}

// RequestOptions controls a single request. Method defaults to GET. Headers
// override the client's defaults on key collision.
type RequestOptions struct {
	Method  string
	Body    interface{}
	Headers map[string]string
}

// Do performs a request and normalizes the response. A successful response
// with an empty or non-JSON body yields a nil payload and no error; a
// non-success status yields a RequestError carrying the response body text.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (json.RawMessage, error) {
	url := path
	if !strings.HasPrefix(path, "http") {
		url = c.baseURL + path
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, apperrors.NewTransportError(err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, apperrors.NewTransportError(err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential := c.tokens.Token(); credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("request transport failure",
			zap.String("method", method),
			zap.String("url", url),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
			zap.Error(err))
		return nil, apperrors.NewTransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	responseText, err := io.ReadAll(resp.Body)
	if err != nil {
		responseText = nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordError(path, method, resp.StatusCode)
		c.logger.Debug("request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.String("request_id", req.Header.Get("X-Request-ID")))
		return nil, apperrors.NewRequestError(resp.StatusCode, string(responseText))
	}

	c.metrics.RecordRequest(path, method, resp.StatusCode, time.Since(start))

	if len(responseText) == 0 {
		return nil, nil
	}
	if !json.Valid(responseText) {
		// Non-JSON success bodies carry nothing the client needs.
		c.logger.Warn("api response was not valid json",
			zap.String("method", method),
			zap.String("url", url),
			zap.ByteString("body", responseText))
		return nil, nil
	}
	return json.RawMessage(responseText), nil
}
