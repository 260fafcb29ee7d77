package repository

import (
	"context"
	"time"

	"foliotrack/internal/domain"
	"foliotrack/internal/logger"
	"foliotrack/internal/util"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// QuoteRepository fetches the latest quote for a batch of symbols.
// Unknown or delisted symbols are omitted from the result, never an
// error for the whole batch.
type QuoteRepository interface {
	GetLatestQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error)
}

// PriceHistoryRepository fetches daily close series per symbol over a
// lookback window. Symbols whose fetch fails are omitted.
type PriceHistoryRepository interface {
	ListHistory(ctx context.Context, symbols []string, lookback time.Duration) (map[string][]domain.AssetPrice, error)
}

func NewYahooRepository() YahooRepository {
	return yahooRepositoryHandler{}
}

// YahooRepository serves both quote and history fetches from Yahoo
// Finance.
type YahooRepository interface {
	QuoteRepository
	PriceHistoryRepository
}

type yahooRepositoryHandler struct{}

func (h yahooRepositoryHandler) GetLatestQuotes(ctx context.Context, symbols []string) (map[string]domain.Quote, error) {
	log := logger.FromContext(ctx)
	quotes := map[string]domain.Quote{}
	if len(symbols) == 0 {
		return quotes, nil
	}

	iter := equity.List(symbols)
	for iter.Next() {
		q := iter.Equity()
		if q == nil || q.Symbol == "" {
			continue
		}
		quote := domain.Quote{
			Symbol:    domain.NormalizeSymbol(q.Symbol),
			Name:      q.LongName,
			MarketCap: q.MarketCap,
		}
		if quote.Name == "" {
			quote.Name = q.ShortName
		}
		if q.RegularMarketPrice > 0 {
			quote.Price = util.DecimalPointer(decimal.NewFromFloat(q.RegularMarketPrice))
		}
		if q.TrailingPE > 0 {
			quote.PERatio = util.FloatPointer(q.TrailingPE)
		}
		if q.TrailingAnnualDividendYield > 0 {
			quote.DividendYieldPct = util.FloatPointer(q.TrailingAnnualDividendYield * 100)
		}
		quotes[quote.Symbol] = quote
	}
	if err := iter.Err(); err != nil {
		// a batch-level transport failure still returns whatever
		// symbols came back before it
		log.Warnf("quote fetch ended early: %s", err.Error())
	}

	for _, s := range symbols {
		if _, ok := quotes[domain.NormalizeSymbol(s)]; !ok {
			log.Infof("no quote returned for %s", s)
		}
	}

	return quotes, nil
}

func (h yahooRepositoryHandler) ListHistory(ctx context.Context, symbols []string, lookback time.Duration) (map[string][]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)
	out := map[string][]domain.AssetPrice{}

	end := time.Now()
	start := end.Add(-lookback)

	for _, s := range symbols {
		symbol := domain.NormalizeSymbol(s)
		series, err := fetchDailyBars(symbol, start, end)
		if err != nil {
			log.Warnf("failed to fetch history for %s: %s", symbol, err.Error())
			continue
		}
		if len(series) > 0 {
			out[symbol] = series
		}
	}

	return out, nil
}

func fetchDailyBars(symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	series := []domain.AssetPrice{}
	for iter.Next() {
		series = append(series, domain.AssetPrice{
			Symbol: symbol,
			Date:   util.TruncateToDay(time.Unix(int64(iter.Bar().Timestamp), 0).UTC()),
			Price:  iter.Bar().AdjClose,
		})
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	return series, nil
}
