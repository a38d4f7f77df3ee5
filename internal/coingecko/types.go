package coingecko

import (
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// MarketsParams represents parameters for market listing requests
type MarketsParams struct {
	// IDs filters by specific coin ids; omitted when empty
	IDs []string
	// Category filters by coin category; omitted when empty
	Category string
	// Page number for pagination (1-based)
	Page int
	// PerPage is the number of results per page (1-250)
	PerPage int
}

// MarketRecord is one entry of a /coins/markets listing.
type MarketRecord struct {
	ID            string  `json:"id"`
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Image         *string `json:"image"`
	MarketCapRank *int    `json:"market_cap_rank"`
}

// PriceRecord holds the quotes of one coin from /simple/price, keyed by
// currency. A currency the provider did not report is absent from Quotes.
type PriceRecord struct {
	Quotes map[string]models.CurrencyQuote
}

// Quote returns the quote for currency; missing data yields an empty quote
func (r PriceRecord) Quote(currency string) models.CurrencyQuote {
	return r.Quotes[currency]
}

// parseQuote reads the per-currency fields of a simple/price entry:
// <cur>, <cur>_market_cap, <cur>_24h_vol, <cur>_24h_change, last_updated_at.
func parseQuote(entry gjson.Result, currency string) models.CurrencyQuote {
	return models.CurrencyQuote{
		Price:         nullDecimal(entry.Get(currency)),
		MarketCap:     nullDecimal(entry.Get(currency + "_market_cap")),
		Volume24h:     nullDecimal(entry.Get(currency + "_24h_vol")),
		Change24h:     nullDecimal(entry.Get(currency + "_24h_change")),
		LastUpdatedAt: optionalInt(entry.Get("last_updated_at")),
	}
}

func nullDecimal(res gjson.Result) decimal.NullDecimal {
	switch res.Type {
	case gjson.Number:
		if d, err := decimal.NewFromString(res.Raw); err == nil {
			return decimal.NewNullDecimal(d)
		}
		return decimal.NewNullDecimal(decimal.NewFromFloat(res.Float()))
	case gjson.String:
		if d, err := decimal.NewFromString(res.Str); err == nil {
			return decimal.NewNullDecimal(d)
		}
	}
	return decimal.NullDecimal{}
}

func optionalInt(res gjson.Result) *int64 {
	if res.Type != gjson.Number {
		return nil
	}
	v := res.Int()
	return &v
}
