package coingecko

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Currencies used by the gateway
const (
	// ReferenceCurrency denominates market listings
	ReferenceCurrency = "inr"
	CurrencyINR       = "inr"
	CurrencyCAD       = "cad"
)

// QuoteCurrencies are requested together on every batch price lookup
var QuoteCurrencies = []string{CurrencyINR, CurrencyCAD}

const (
	defaultTimeout     = 10 * time.Second
	defaultPingTimeout = 5 * time.Second
)

// Config configures a Client
type Config struct {
	BaseURL      string
	APIKeyHeader string
	// APIKey is optional; the header is only sent when it is set
	APIKey      string
	Timeout     time.Duration
	PingTimeout time.Duration
}

// Client provides access to the CoinGecko REST API.
type Client struct {
	baseURL      string
	apiKeyHeader string
	apiKey       string
	timeout      time.Duration
	pingTimeout  time.Duration

	httpClient *http.Client
	logger     *zap.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new CoinGecko client.
func NewClient(cfg Config, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKeyHeader: cfg.APIKeyHeader,
		apiKey:       cfg.APIKey,
		timeout:      cfg.Timeout,
		pingTimeout:  cfg.PingTimeout,
		// Deadlines come from the per-call context, the transport is pooled.
		httpClient: &http.Client{},
		logger:     logger.Named("coingecko"),
		tracer:     otel.Tracer("github.com/Aidin1998/marketgw/internal/coingecko"),
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.pingTimeout <= 0 {
		c.pingTimeout = defaultPingTimeout
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}
