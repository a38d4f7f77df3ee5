package coingecko

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Config)) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := Config{
		BaseURL:      srv.URL + "/api/v3",
		APIKeyHeader: "x-cg-demo-api-key",
		Timeout:      time.Second,
		PingTimeout:  time.Second,
	}
	for _, m := range mutate {
		m(&cfg)
	}
	return NewClient(cfg, zap.NewNop()), &calls
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://api.example.com/api/v3/"}, zap.NewNop())
	assert.Equal(t, "https://api.example.com/api/v3", c.baseURL)
	assert.Equal(t, 10*time.Second, c.timeout)
	assert.Equal(t, 5*time.Second, c.pingTimeout)

	hc := &http.Client{}
	c = NewClient(Config{BaseURL: "x"}, zap.NewNop(), WithHTTPClient(hc))
	assert.Same(t, hc, c.httpClient)
}

func TestListCoins(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/coins/list", r.URL.Path)
		assert.Empty(t, r.Header.Get("x-cg-demo-api-key"))
		writeJSON(w, `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin"},{"id":"ethereum","symbol":"eth","name":"Ethereum"}]`)
	})

	coins, err := c.ListCoins(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CoinSummary{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
	}, coins)
	assert.EqualValues(t, 1, atomic.LoadInt32(calls))
}

func TestAPIKeyHeader(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret-key", r.Header.Get("x-cg-pro-api-key"))
		writeJSON(w, `[]`)
	}, func(cfg *Config) {
		cfg.APIKeyHeader = "x-cg-pro-api-key"
		cfg.APIKey = "secret-key"
	})

	_, err := c.ListCoins(context.Background())
	require.NoError(t, err)
}

func TestUpstreamErrorStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	})

	_, err := c.ListCoins(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Contains(t, string(apiErr.Body), "rate limited")
}

func TestUpstreamTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, func(cfg *Config) {
		cfg.Timeout = 50 * time.Millisecond
	})

	_, err := c.ListCategories(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func TestUpstreamMalformedBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"not":"a list"`)
	})

	_, err := c.ListCoins(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))

	_, err = c.ListCategories(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func TestCallerCancellation(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListMarkets(ctx, MarketsParams{Category: "layer-1", Page: 1, PerPage: 10})
	assert.True(t, errors.Is(err, apperrors.ErrUpstreamUnavailable))
}

func TestListCategories_IDFallback(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/coins/categories/list", r.URL.Path)
		writeJSON(w, `[
			{"category_id":"layer-1","name":"Layer 1 (L1)"},
			{"id":"meme-token","name":"Meme"},
			{"category_id":"","id":"defi","name":"DeFi"},
			{"name":"Nameless"}
		]`)
	})

	categories, err := c.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CategorySummary{
		{CategoryID: "layer-1", Name: "Layer 1 (L1)"},
		{CategoryID: "meme-token", Name: "Meme"},
		{CategoryID: "defi", Name: "DeFi"},
		{CategoryID: "", Name: "Nameless"},
	}, categories)
}

func TestListMarkets_Query(t *testing.T) {
	t.Run("with filters", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "/api/v3/coins/markets", r.URL.Path)
			assert.Equal(t, "inr", q.Get("vs_currency"))
			assert.Equal(t, "market_cap_desc", q.Get("order"))
			assert.Equal(t, "25", q.Get("per_page"))
			assert.Equal(t, "2", q.Get("page"))
			assert.Equal(t, "false", q.Get("sparkline"))
			assert.Equal(t, "bitcoin,ethereum", q.Get("ids"))
			assert.Equal(t, "layer-1", q.Get("category"))
			writeJSON(w, `[
				{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"https://img/btc.png","market_cap_rank":1,"current_price":5000000},
				{"id":"ethereum","symbol":"eth","name":"Ethereum","image":null,"market_cap_rank":null}
			]`)
		})

		records, err := c.ListMarkets(context.Background(), MarketsParams{
			IDs:      []string{"bitcoin", "ethereum"},
			Category: "layer-1",
			Page:     2,
			PerPage:  25,
		})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "bitcoin", records[0].ID)
		require.NotNil(t, records[0].Image)
		assert.Equal(t, "https://img/btc.png", *records[0].Image)
		require.NotNil(t, records[0].MarketCapRank)
		assert.Equal(t, 1, *records[0].MarketCapRank)
		assert.Nil(t, records[1].Image)
		assert.Nil(t, records[1].MarketCapRank)
	})

	t.Run("without filters", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			_, hasIDs := q["ids"]
			_, hasCategory := q["category"]
			assert.False(t, hasIDs)
			assert.False(t, hasCategory)
			writeJSON(w, `[]`)
		})

		records, err := c.ListMarkets(context.Background(), MarketsParams{Page: 1, PerPage: 10})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestBatchPrices_EmptyIDsSkipsNetwork(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected upstream call")
	})

	prices, err := c.BatchPrices(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, prices)
	assert.Empty(t, prices)
	assert.EqualValues(t, 0, atomic.LoadInt32(calls))
}

func TestBatchPrices(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/v3/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin,dogecoin", q.Get("ids"))
		assert.Equal(t, "inr,cad", q.Get("vs_currencies"))
		assert.Equal(t, "true", q.Get("include_market_cap"))
		assert.Equal(t, "true", q.Get("include_24hr_vol"))
		assert.Equal(t, "true", q.Get("include_24hr_change"))
		assert.Equal(t, "true", q.Get("include_last_updated_at"))
		writeJSON(w, `{
			"bitcoin": {
				"inr": 5432100.12,
				"inr_market_cap": 107000000000000,
				"inr_24h_vol": 2500000000000.5,
				"inr_24h_change": -1.25,
				"cad": 89000,
				"cad_market_cap": 1750000000000,
				"cad_24h_vol": 41000000000,
				"last_updated_at": 1700000000
			}
		}`)
	})

	prices, err := c.BatchPrices(context.Background(), []string{"bitcoin", "dogecoin"})
	require.NoError(t, err)
	require.Len(t, prices, 1)

	inr := prices["bitcoin"].Quote(CurrencyINR)
	assert.True(t, inr.Price.Decimal.Equal(decimal.RequireFromString("5432100.12")))
	assert.True(t, inr.MarketCap.Decimal.Equal(decimal.RequireFromString("107000000000000")))
	assert.True(t, inr.Volume24h.Decimal.Equal(decimal.RequireFromString("2500000000000.5")))
	assert.True(t, inr.Change24h.Decimal.Equal(decimal.RequireFromString("-1.25")))
	require.NotNil(t, inr.LastUpdatedAt)
	assert.EqualValues(t, 1700000000, *inr.LastUpdatedAt)

	cad := prices["bitcoin"].Quote(CurrencyCAD)
	assert.True(t, cad.Price.Valid)
	assert.False(t, cad.Change24h.Valid, "missing field must stay absent, not zero")

	assert.True(t, prices["dogecoin"].Quote(CurrencyINR).IsEmpty())
}

func TestPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v3/ping", r.URL.Path)
			writeJSON(w, `{"gecko_says":"(V3) To the Moon!"}`)
		})
		assert.True(t, c.Ping(context.Background()))
	})

	t.Run("non-200 success status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		assert.False(t, c.Ping(context.Background()))
	})

	t.Run("server error", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		assert.False(t, c.Ping(context.Background()))
	})

	t.Run("timeout", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, func(cfg *Config) {
			cfg.PingTimeout = 50 * time.Millisecond
		})
		assert.False(t, c.Ping(context.Background()))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := NewClient(Config{BaseURL: url, PingTimeout: time.Second}, zap.NewNop())
		assert.False(t, c.Ping(context.Background()))
	})
}
