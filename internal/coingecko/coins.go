package coingecko

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ListCoins returns every coin supported by the provider.
func (c *Client) ListCoins(ctx context.Context) ([]models.CoinSummary, error) {
	var coins []models.CoinSummary
	if err := c.getJSON(ctx, "coins_list", "/coins/list", nil, &coins); err != nil {
		return nil, err
	}
	return coins, nil
}

// ListCategories returns every coin category. The id is read from
// "category_id", falling back to "id" and then to "".
func (c *Client) ListCategories(ctx context.Context) ([]models.CategorySummary, error) {
	body, err := c.get(ctx, "categories_list", "/coins/categories/list", nil)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !root.IsArray() {
		return nil, fmt.Errorf("%w: categories_list: expected a JSON array", apperrors.ErrUpstreamUnavailable)
	}

	categories := make([]models.CategorySummary, 0, len(root.Array()))
	root.ForEach(func(_, entry gjson.Result) bool {
		id := entry.Get("category_id").String()
		if id == "" {
			id = entry.Get("id").String()
		}
		categories = append(categories, models.CategorySummary{
			CategoryID: id,
			Name:       entry.Get("name").String(),
		})
		return true
	})

	return categories, nil
}

// ListMarkets returns one page of market listings ordered by descending
// market cap and priced in the reference currency. The provider does the
// paging; ids and category are only sent when set.
func (c *Client) ListMarkets(ctx context.Context, params MarketsParams) ([]MarketRecord, error) {
	query := url.Values{}
	query.Set("vs_currency", ReferenceCurrency)
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(params.PerPage))
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("sparkline", "false")
	if len(params.IDs) > 0 {
		query.Set("ids", strings.Join(params.IDs, ","))
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	var records []MarketRecord
	if err := c.getJSON(ctx, "coins_markets", "/coins/markets", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// BatchPrices looks up INR and CAD quotes for ids in one call. An empty id
// list returns an empty map without touching the network.
func (c *Client) BatchPrices(ctx context.Context, ids []string) (map[string]PriceRecord, error) {
	if len(ids) == 0 {
		return map[string]PriceRecord{}, nil
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	query.Set("vs_currencies", strings.Join(QuoteCurrencies, ","))
	query.Set("include_market_cap", "true")
	query.Set("include_24hr_vol", "true")
	query.Set("include_24hr_change", "true")
	query.Set("include_last_updated_at", "true")

	body, err := c.get(ctx, "simple_price", "/simple/price", query)
	if err != nil {
		return nil, err
	}

	root := gjson.ParseBytes(body)
	if !gjson.ValidBytes(body) || !root.IsObject() {
		return nil, fmt.Errorf("%w: simple_price: expected a JSON object", apperrors.ErrUpstreamUnavailable)
	}

	prices := make(map[string]PriceRecord, len(ids))
	root.ForEach(func(key, entry gjson.Result) bool {
		if !entry.IsObject() {
			return true
		}
		quotes := make(map[string]models.CurrencyQuote, len(QuoteCurrencies))
		for _, currency := range QuoteCurrencies {
			quotes[currency] = parseQuote(entry, currency)
		}
		prices[key.String()] = PriceRecord{Quotes: quotes}
		return true
	})

	return prices, nil
}

// Ping reports whether the provider answered /ping with exactly 200 within
// the ping timeout. It never returns an error.
func (c *Client) Ping(ctx context.Context) bool {
	resp, err := c.do(ctx, "ping", "/ping", nil, c.pingTimeout)
	if err != nil {
		c.logger.Warn("ping failed", zap.Error(err))
		return false
	}
	return resp.status == http.StatusOK
}
