package marketfeeds

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/Aidin1998/marketgw/common/errors"
	"github.com/Aidin1998/marketgw/internal/coingecko"
	"github.com/Aidin1998/marketgw/pkg/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// MarketFeedService defines the market data read operations.
type MarketFeedService interface {
	ListCoins(ctx context.Context, q models.PageQuery) (models.Page[models.CoinSummary], error)
	ListCategories(ctx context.Context, q models.PageQuery) (models.Page[models.CategorySummary], error)
	ListCoinMarkets(ctx context.Context, q models.MarketsQuery) (models.Page[models.CoinMarketEntry], error)
}

// Upstream is the market data provider the service reads from.
type Upstream interface {
	ListCoins(ctx context.Context) ([]models.CoinSummary, error)
	ListCategories(ctx context.Context) ([]models.CategorySummary, error)
	ListMarkets(ctx context.Context, params coingecko.MarketsParams) ([]coingecko.MarketRecord, error)
	BatchPrices(ctx context.Context, ids []string) (map[string]coingecko.PriceRecord, error)
}

// Service implements MarketFeedService. It holds no mutable state.
type Service struct {
	logger   *zap.Logger
	upstream Upstream
	tracer   trace.Tracer
}

// NewService creates a new MarketFeedService
func NewService(logger *zap.Logger, upstream Upstream) *Service {
	return &Service{
		logger:   logger.Named("marketfeeds"),
		upstream: upstream,
		tracer:   otel.Tracer("github.com/Aidin1998/marketgw/internal/marketfeeds"),
	}
}

// ParseIDs splits a comma separated id list, trimming blanks and dropping
// empty entries.
func ParseIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// ListCoins fetches the full coin list and pages it locally.
func (s *Service) ListCoins(ctx context.Context, q models.PageQuery) (models.Page[models.CoinSummary], error) {
	coins, err := s.upstream.ListCoins(ctx)
	if err != nil {
		return models.Page[models.CoinSummary]{}, fmt.Errorf("list coins: %w", err)
	}
	return models.Paginate(coins, q.PageNum, q.PerPage), nil
}

// ListCategories fetches the full category list and pages it locally.
func (s *Service) ListCategories(ctx context.Context, q models.PageQuery) (models.Page[models.CategorySummary], error) {
	categories, err := s.upstream.ListCategories(ctx)
	if err != nil {
		return models.Page[models.CategorySummary]{}, fmt.Errorf("list categories: %w", err)
	}
	return models.Paginate(categories, q.PageNum, q.PerPage), nil
}

// ListCoinMarkets returns one page of market listings merged with INR and
// CAD quotes. The provider pages the listing, so the result carries
// approximate totals (see models.ApproximatePage).
//
// At least one of IDs or Category must be set; this is checked before any
// upstream call. Either both upstream calls succeed or the whole call fails.
func (s *Service) ListCoinMarkets(ctx context.Context, q models.MarketsQuery) (models.Page[models.CoinMarketEntry], error) {
	if !q.HasFilter() {
		return models.Page[models.CoinMarketEntry]{}, apperrors.ErrMissingFilter
	}

	ctx, span := s.tracer.Start(ctx, "marketfeeds.ListCoinMarkets")
	defer span.End()
	span.SetAttributes(
		attribute.Int("markets.ids", len(q.IDs)),
		attribute.String("markets.category", q.Category),
		attribute.Int("markets.page_num", q.PageNum),
		attribute.Int("markets.per_page", q.PerPage),
	)

	listing, err := s.upstream.ListMarkets(ctx, coingecko.MarketsParams{
		IDs:      q.IDs,
		Category: q.Category,
		Page:     q.PageNum,
		PerPage:  q.PerPage,
	})
	if err != nil {
		return models.Page[models.CoinMarketEntry]{}, fmt.Errorf("list markets: %w", err)
	}
	if len(listing) == 0 {
		return models.EmptyPage[models.CoinMarketEntry](q.PageNum, q.PerPage), nil
	}

	ids := make([]string, 0, len(listing))
	for _, record := range listing {
		ids = append(ids, record.ID)
	}

	prices, err := s.upstream.BatchPrices(ctx, ids)
	if err != nil {
		return models.Page[models.CoinMarketEntry]{}, fmt.Errorf("batch prices: %w", err)
	}

	entries := make([]models.CoinMarketEntry, 0, len(listing))
	missing := 0
	for _, record := range listing {
		price, ok := prices[record.ID]
		if !ok {
			missing++
		}
		entries = append(entries, mergeEntry(record, price))
	}

	if missing > 0 {
		s.logger.Debug("price data missing for some listed coins", zap.Int("missing", missing))
	}

	return models.ApproximatePage(entries, q.PageNum, q.PerPage), nil
}

// mergeEntry combines a listing record with its quotes; a zero PriceRecord
// yields quotes with every field absent.
func mergeEntry(record coingecko.MarketRecord, price coingecko.PriceRecord) models.CoinMarketEntry {
	return models.CoinMarketEntry{
		ID:            record.ID,
		Symbol:        record.Symbol,
		Name:          record.Name,
		Image:         record.Image,
		MarketCapRank: record.MarketCapRank,
		INR:           price.Quote(coingecko.CurrencyINR),
		CAD:           price.Quote(coingecko.CurrencyCAD),
	}
}
