package integration_tests

import (
	"context"
	"time"

	"foliotrack/internal/domain"
	"foliotrack/internal/repository"
	"foliotrack/internal/util"

	"github.com/shopspring/decimal"
)

// Canned market data for the flow tests. AAPL is up versus its buy
// price, MSFT is down, and anything else comes back unquoted so the
// degradation path gets exercised too.

func NewMockQuoteRepositoryForTests() repository.QuoteRepository {
	return mockQuoteRepositoryHandler{}
}

type mockQuoteRepositoryHandler struct{}

func (m mockQuoteRepositoryHandler) GetLatestQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	known := map[string]domain.Quote{
		"AAPL": {
			Symbol:    "AAPL",
			Name:      "Apple Inc.",
			Sector:    "Technology",
			Price:     util.DecimalPointer(decimal.NewFromInt(180)),
			MarketCap: 2_800_000_000_000,
			PERatio:   util.FloatPointer(29.5),
		},
		"MSFT": {
			Symbol:           "MSFT",
			Name:             "Microsoft Corporation",
			Sector:           "Technology",
			Price:            util.DecimalPointer(decimal.NewFromInt(290)),
			MarketCap:        2_100_000_000_000,
			PERatio:          util.FloatPointer(32.1),
			DividendYieldPct: util.FloatPointer(0.9),
		},
	}

	quotes := map[string]domain.Quote{}
	for _, symbol := range symbols {
		if q, ok := known[symbol]; ok {
			quotes[symbol] = q
		}
	}
	return quotes, nil
}

func NewMockPriceHistoryRepositoryForTests() repository.PriceHistoryRepository {
	return mockPriceHistoryRepositoryHandler{}
}

type mockPriceHistoryRepositoryHandler struct{}

func (m mockPriceHistoryRepositoryHandler) ListHistory(ctx context.Context, symbols []string, lookback time.Duration) (map[string][]domain.AssetPrice, error) {
	known := map[string][]domain.AssetPrice{
		"AAPL": {
			bar("AAPL", util.NewDate(2026, 1, 5), 170),
			bar("AAPL", util.NewDate(2026, 1, 6), 174),
			bar("AAPL", util.NewDate(2026, 1, 7), 180),
		},
		"MSFT": {
			bar("MSFT", util.NewDate(2026, 1, 5), 300),
			bar("MSFT", util.NewDate(2026, 1, 6), 295),
			bar("MSFT", util.NewDate(2026, 1, 7), 290),
		},
	}

	series := map[string][]domain.AssetPrice{}
	for _, symbol := range symbols {
		if bars, ok := known[symbol]; ok {
			series[symbol] = bars
		}
	}
	return series, nil
}

func bar(symbol string, date time.Time, price float64) domain.AssetPrice {
	return domain.AssetPrice{
		Symbol: symbol,
		Date:   date,
		Price:  decimal.NewFromFloat(price),
	}
}
