package models

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// TokenTypeBearer is the only token kind issued by the gateway
const TokenTypeBearer = "bearer"

// User represents an authenticated principal
type User struct {
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}

// Token represents a login response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CoinSummary represents an entry of the upstream coin list
type CoinSummary struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// CategorySummary represents a coin category
type CategorySummary struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
}

// CurrencyQuote is a snapshot of market data in one currency.
// Fields the upstream did not report are null, never zero.
type CurrencyQuote struct {
	Price         decimal.NullDecimal `json:"price"`
	MarketCap     decimal.NullDecimal `json:"market_cap"`
	Volume24h     decimal.NullDecimal `json:"volume_24h"`
	Change24h     decimal.NullDecimal `json:"change_24h"`
	LastUpdatedAt *int64              `json:"last_updated_at"`
}

// IsEmpty reports whether no field of the quote carries a value
func (q CurrencyQuote) IsEmpty() bool {
	return !q.Price.Valid && !q.MarketCap.Valid && !q.Volume24h.Valid &&
		!q.Change24h.Valid && q.LastUpdatedAt == nil
}

// MarshalJSON writes decimals as bare JSON numbers, matching the upstream
// payloads, and absent fields as null.
func (q CurrencyQuote) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Price         json.RawMessage `json:"price"`
		MarketCap     json.RawMessage `json:"market_cap"`
		Volume24h     json.RawMessage `json:"volume_24h"`
		Change24h     json.RawMessage `json:"change_24h"`
		LastUpdatedAt *int64          `json:"last_updated_at"`
	}{
		Price:         jsonNumber(q.Price),
		MarketCap:     jsonNumber(q.MarketCap),
		Volume24h:     jsonNumber(q.Volume24h),
		Change24h:     jsonNumber(q.Change24h),
		LastUpdatedAt: q.LastUpdatedAt,
	})
}

func jsonNumber(d decimal.NullDecimal) json.RawMessage {
	if !d.Valid {
		return json.RawMessage("null")
	}
	return json.RawMessage(d.Decimal.String())
}

// CoinMarketEntry represents a coin with market data in INR and CAD
type CoinMarketEntry struct {
	ID            string        `json:"id"`
	Symbol        string        `json:"symbol"`
	Name          string        `json:"name"`
	Image         *string       `json:"image"`
	MarketCapRank *int          `json:"market_cap_rank"`
	INR           CurrencyQuote `json:"inr"`
	CAD           CurrencyQuote `json:"cad"`
}

// PageQuery carries the pagination parameters shared by all listing endpoints
type PageQuery struct {
	PageNum int `form:"page_num,default=1" json:"page_num" binding:"min=1"`
	PerPage int `form:"per_page,default=10" json:"per_page" binding:"min=1,max=250"`
}

// MarketsQuery carries the filters of the coin markets endpoint
type MarketsQuery struct {
	IDs      []string
	Category string
	PageQuery
}

// HasFilter reports whether at least one of ids or category is set
func (q MarketsQuery) HasFilter() bool {
	return len(q.IDs) > 0 || strings.TrimSpace(q.Category) != ""
}
