package l3_service

import (
	"testing"

	"foliotrack/internal/domain"
	l2_service "foliotrack/internal/service/l2"
	"foliotrack/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newPosition(symbol string, quantity, buyPrice float64) domain.Position {
	return domain.Position{
		Symbol:   symbol,
		Quantity: decimal.NewFromFloat(quantity),
		BuyPrice: decimal.NewFromFloat(buyPrice),
	}
}

func newQuote(symbol string, price float64, sector string) domain.Quote {
	return domain.Quote{
		Symbol: symbol,
		Sector: sector,
		Price:  util.DecimalPointer(decimal.NewFromFloat(price)),
	}
}

func point(date int, value float64) domain.HistoryPoint {
	return domain.HistoryPoint{
		Date:       util.NewDate(2024, 1, date),
		TotalValue: decimal.NewFromFloat(value),
	}
}

func codes(recs []domain.Recommendation) []domain.RecommendationCode {
	out := []domain.RecommendationCode{}
	for _, r := range recs {
		out = append(out, r.Code)
	}
	return out
}

func TestSummarize(t *testing.T) {
	t.Run("totals and concentration", func(t *testing.T) {
		valued := l2_service.Value(
			[]domain.Position{
				newPosition("AAPL", 10, 150),
				newPosition("MSFT", 5, 300),
			},
			map[string]domain.Quote{
				"AAPL": newQuote("AAPL", 180, "Technology"),
				"MSFT": newQuote("MSFT", 290, "Technology"),
			},
		)

		analytics, err := Summarize(valued, nil)
		require.NoError(t, err)

		require.True(t, analytics.TotalValue.Equal(decimal.NewFromInt(3250)))
		require.True(t, analytics.TotalCost.Equal(decimal.NewFromInt(3000)))
		require.True(t, analytics.TotalReturn.Equal(decimal.NewFromInt(250)))
		require.InDelta(t, 100.0*250/3000, *analytics.TotalReturnPct, 1e-9)

		// unweighted mean of 20 and -3.33..
		require.InDelta(t, (20.0-10.0/3)/2, *analytics.MeanReturnPct, 1e-9)

		require.InDelta(t, 100.0*1800/3250, *analytics.ConcentrationPct, 1e-9)
		require.Equal(t, 2, analytics.PositionCount)
		require.Equal(t, 2, analytics.PricedCount)

		require.Nil(t, analytics.VolatilityPct)

		require.Equal(t, "AAPL", analytics.BestPerformer.Symbol)
		require.Equal(t, "MSFT", analytics.WorstPerformer.Symbol)

		require.Equal(t,
			[]domain.RecommendationCode{
				domain.RecommendationConcentration,
				domain.RecommendationFewSectors,
			},
			codes(analytics.Recommendations),
		)
	})

	t.Run("sector groups", func(t *testing.T) {
		valued := l2_service.Value(
			[]domain.Position{
				newPosition("AAPL", 10, 150),
				newPosition("XOM", 10, 100),
				newPosition("MYST", 1, 10),
			},
			map[string]domain.Quote{
				"AAPL": newQuote("AAPL", 180, "Technology"),
				"XOM":  newQuote("XOM", 110, "Energy"),
				"MYST": newQuote("MYST", 12, ""),
			},
		)

		analytics, err := Summarize(valued, nil)
		require.NoError(t, err)

		require.Equal(t, 3, analytics.SectorCount)
		require.Len(t, analytics.Sectors, 3)

		// alphabetical: Energy, Technology, Unknown
		require.Equal(t, "Energy", analytics.Sectors[0].Sector)
		require.Equal(t, "Technology", analytics.Sectors[1].Sector)
		require.Equal(t, "Unknown", analytics.Sectors[2].Sector)

		energy := analytics.Sectors[0]
		require.True(t, energy.TotalValue.Equal(decimal.NewFromInt(1100)))
		require.Equal(t, 1, energy.PositionCount)
		require.InDelta(t, 10.0, *energy.MeanReturnPct, 1e-9)
		require.InDelta(t, 100.0*1100/2912, *energy.WeightPct, 1e-9)

		weightSum := 0.0
		for _, g := range analytics.Sectors {
			weightSum += *g.WeightPct
		}
		require.InDelta(t, 100.0, weightSum, 1e-6)
	})

	t.Run("balanced portfolio gets the single balanced signal", func(t *testing.T) {
		valued := l2_service.Value(
			[]domain.Position{
				newPosition("A", 1, 100),
				newPosition("B", 1, 100),
				newPosition("C", 1, 100),
				newPosition("D", 1, 100),
			},
			map[string]domain.Quote{
				"A": newQuote("A", 105, "Technology"),
				"B": newQuote("B", 104, "Energy"),
				"C": newQuote("C", 103, "Healthcare"),
				"D": newQuote("D", 102, "Utilities"),
			},
		)

		// barely-moving value series keeps volatility under threshold
		history := []domain.HistoryPoint{
			point(1, 1000), point(2, 1001), point(3, 1000.5), point(4, 1001.2),
		}

		analytics, err := Summarize(valued, history)
		require.NoError(t, err)
		require.NotNil(t, analytics.VolatilityPct)
		require.Less(t, *analytics.VolatilityPct, 20.0)

		require.Equal(t,
			[]domain.RecommendationCode{domain.RecommendationBalanced},
			codes(analytics.Recommendations),
		)
	})

	t.Run("negative mean and high volatility flags", func(t *testing.T) {
		valued := l2_service.Value(
			[]domain.Position{
				newPosition("A", 1, 100),
				newPosition("B", 1, 100),
				newPosition("C", 1, 100),
				newPosition("D", 1, 100),
			},
			map[string]domain.Quote{
				"A": newQuote("A", 95, "Technology"),
				"B": newQuote("B", 96, "Energy"),
				"C": newQuote("C", 97, "Healthcare"),
				"D": newQuote("D", 98, "Utilities"),
			},
		)

		history := []domain.HistoryPoint{
			point(1, 1000), point(2, 1100), point(3, 950), point(4, 1050),
		}

		analytics, err := Summarize(valued, history)
		require.NoError(t, err)
		require.Greater(t, *analytics.VolatilityPct, 20.0)

		require.Equal(t,
			[]domain.RecommendationCode{
				domain.RecommendationNegativeMean,
				domain.RecommendationHighVol,
			},
			codes(analytics.Recommendations),
		)
	})

	t.Run("empty portfolio reports no data, not balanced", func(t *testing.T) {
		analytics, err := Summarize(nil, nil)
		require.NoError(t, err)

		require.True(t, analytics.TotalValue.IsZero())
		require.True(t, analytics.TotalCost.IsZero())
		require.Nil(t, analytics.TotalReturnPct)
		require.Nil(t, analytics.MeanReturnPct)
		require.Nil(t, analytics.ConcentrationPct)
		require.Nil(t, analytics.BestPerformer)
		require.Nil(t, analytics.WorstPerformer)
		require.Equal(t, 0, analytics.PositionCount)

		require.Equal(t,
			[]domain.RecommendationCode{domain.RecommendationNoData},
			codes(analytics.Recommendations),
		)
	})

	t.Run("fully unpriced portfolio also reports no data", func(t *testing.T) {
		valued := l2_service.Value(
			[]domain.Position{newPosition("AAPL", 10, 150)},
			map[string]domain.Quote{},
		)

		analytics, err := Summarize(valued, nil)
		require.NoError(t, err)

		require.Equal(t, 1, analytics.PositionCount)
		require.Equal(t, 0, analytics.PricedCount)
		require.Equal(t,
			[]domain.RecommendationCode{domain.RecommendationNoData},
			codes(analytics.Recommendations),
		)
	})
}
