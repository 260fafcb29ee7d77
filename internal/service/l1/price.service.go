package l1_service

import (
	"context"
	"sort"
	"strings"
	"time"

	"foliotrack/internal/domain"
	"foliotrack/internal/logger"
	"foliotrack/internal/repository"
)

/**

behavior - a full refresh issues one batched quote fetch and one
history fetch for the whole symbol set, never one call per symbol.

repeated renders inside the validity window should not hit the network
again, so results are cached keyed by the exact symbol set requested.
entries expire by age only.

*/

const cacheTTL = 5 * time.Minute

// PriceService fronts the market-data collaborators with a short-lived
// cache.
type PriceService interface {
	GetLatestQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error)
	GetHistory(ctx context.Context, symbols []string, lookback time.Duration) (map[string][]domain.AssetPrice, error)
}

type priceServiceHandler struct {
	QuoteRepository        repository.QuoteRepository
	PriceHistoryRepository repository.PriceHistoryRepository

	quoteCache   map[string]quoteCacheEntry
	historyCache map[string]historyCacheEntry

	now func() time.Time
}

type quoteCacheEntry struct {
	fetchedAt time.Time
	quotes    map[string]domain.Quote
}

type historyCacheEntry struct {
	fetchedAt time.Time
	series    map[string][]domain.AssetPrice
}

func NewPriceService(quoteRepository repository.QuoteRepository, priceHistoryRepository repository.PriceHistoryRepository) PriceService {
	return &priceServiceHandler{
		QuoteRepository:        quoteRepository,
		PriceHistoryRepository: priceHistoryRepository,
		quoteCache:             map[string]quoteCacheEntry{},
		historyCache:           map[string]historyCacheEntry{},
		now:                    time.Now,
	}
}

// cacheKey canonicalizes a symbol set so {MSFT, AAPL} and {AAPL, MSFT}
// share an entry.
func cacheKey(symbols []string) string {
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		normalized = append(normalized, domain.NormalizeSymbol(s))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}

func (h *priceServiceHandler) GetLatestQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	if len(symbols) == 0 {
		return map[string]domain.Quote{}, nil
	}

	key := cacheKey(symbols)
	if entry, ok := h.quoteCache[key]; ok && h.now().Sub(entry.fetchedAt) < cacheTTL {
		return entry.quotes, nil
	}

	quotes, err := h.QuoteRepository.GetLatestQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}

	h.quoteCache[key] = quoteCacheEntry{
		fetchedAt: h.now(),
		quotes:    quotes,
	}
	logger.FromContext(ctx).Infof("fetched %d/%d quotes", len(quotes), len(symbols))

	return quotes, nil
}

func (h *priceServiceHandler) GetHistory(ctx context.Context, symbols []string, lookback time.Duration) (map[string][]domain.AssetPrice, error) {
	if len(symbols) == 0 {
		return map[string][]domain.AssetPrice{}, nil
	}

	key := cacheKey(symbols) + "|" + lookback.String()
	if entry, ok := h.historyCache[key]; ok && h.now().Sub(entry.fetchedAt) < cacheTTL {
		return entry.series, nil
	}

	series, err := h.PriceHistoryRepository.ListHistory(ctx, symbols, lookback)
	if err != nil {
		return nil, err
	}

	h.historyCache[key] = historyCacheEntry{
		fetchedAt: h.now(),
		series:    series,
	}

	return series, nil
}
