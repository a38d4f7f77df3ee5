package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// APIError represents a non-success response from CoinGecko.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("coingecko api error %d: %s", e.StatusCode, e.Message)
}

// Call outcomes recorded in metrics
const (
	outcomeOK        = "ok"
	outcomeHTTPError = "http_error"
	outcomeTimeout   = "timeout"
	outcomeTransport = "transport_error"
)

type response struct {
	status int
	body   []byte
}

// do performs a GET bounded by timeout. It only fails on transport errors;
// the status code is left to the caller.
func (c *Client) do(ctx context.Context, endpoint, path string, query url.Values, timeout time.Duration) (*response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "coingecko."+endpoint)
	defer span.End()
	span.SetAttributes(attribute.String("coingecko.path", path))

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(c.apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		outcome := outcomeTransport
		if errors.Is(err, context.DeadlineExceeded) {
			outcome = outcomeTimeout
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcomeTransport).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcomeTransport)
		return nil, fmt.Errorf("read response: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	outcome := outcomeOK
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = outcomeHTTPError
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	c.logger.Debug("upstream call",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	return &response{status: resp.StatusCode, body: body}, nil
}

// get performs a GET with the standard timeout and returns the body of a
// 2xx response. Every failure is wrapped in ErrUpstreamUnavailable.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values) ([]byte, error) {
	resp, err := c.do(ctx, endpoint, path, query, c.timeout)
	if err != nil {
		c.logger.Warn("upstream call failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrUpstreamUnavailable, endpoint, err)
	}

	if resp.status < 200 || resp.status > 299 {
		apiErr := &APIError{
			StatusCode: resp.status,
			Message:    http.StatusText(resp.status),
			Body:       resp.body,
		}
		c.logger.Warn("upstream returned error status",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.status),
		)
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrUpstreamUnavailable, endpoint, apiErr)
	}

	return resp.body, nil
}

// getJSON performs a GET and decodes the body into result.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, query url.Values, result any) error {
	body, err := c.get(ctx, endpoint, path, query)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("%w: %s: unmarshal response: %w", apperrors.ErrUpstreamUnavailable, endpoint, err)
	}

	return nil
}
