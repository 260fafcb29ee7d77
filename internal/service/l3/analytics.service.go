package l3_service

import (
	"fmt"
	"sort"

	"foliotrack/internal/calculator"
	"foliotrack/internal/domain"
	"foliotrack/internal/util"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

// Fixed rule thresholds, in the same percent units the values are
// reported in.
const (
	concentrationThresholdPct = 30.0
	minSectorCount            = 3
	meanReturnThresholdPct    = 0.0
	volatilityThresholdPct    = 20.0
)

const unknownSector = "Unknown"

// Summarize rolls a valuation pass and the reconstructed value history
// up into portfolio-level analytics. Aggregates cover priced positions
// only; unpriced positions count toward PositionCount but contribute to
// nothing else.
func Summarize(valued []domain.ValuedPosition, history []domain.HistoryPoint) (domain.PortfolioAnalytics, error) {
	analytics := domain.PortfolioAnalytics{
		PositionCount:   len(valued),
		Sectors:         []domain.SectorGroup{},
		Recommendations: []domain.Recommendation{},
	}

	priced := []domain.ValuedPosition{}
	for _, v := range valued {
		if v.Priced() {
			priced = append(priced, v)
		}
	}
	analytics.PricedCount = len(priced)

	totalValue := decimal.Zero
	totalCost := decimal.Zero
	returnPcts := []float64{}
	for _, v := range priced {
		totalValue = totalValue.Add(*v.MarketValue)
		totalCost = totalCost.Add(v.Cost)
		returnPcts = append(returnPcts, *v.ReturnPct)
	}
	analytics.TotalValue = totalValue
	analytics.TotalCost = totalCost
	analytics.TotalReturn = totalValue.Sub(totalCost)
	if totalCost.IsPositive() {
		analytics.TotalReturnPct = util.FloatPointer(
			analytics.TotalReturn.Div(totalCost).InexactFloat64() * 100,
		)
	}

	if len(returnPcts) > 0 {
		// unweighted mean, deliberately not value-weighted
		mean, err := stats.Mean(returnPcts)
		if err != nil {
			return analytics, fmt.Errorf("failed to compute mean return: %w", err)
		}
		analytics.MeanReturnPct = util.FloatPointer(mean)
	}

	volatility, err := calculator.AnnualizedVolatility(history)
	if err != nil {
		return analytics, fmt.Errorf("failed to compute volatility: %w", err)
	}
	analytics.VolatilityPct = volatility

	analytics.Sectors = sectorGroups(priced, totalValue)
	analytics.SectorCount = len(analytics.Sectors)

	if totalValue.IsPositive() {
		maxValue := decimal.Zero
		for _, v := range priced {
			if v.MarketValue.GreaterThan(maxValue) {
				maxValue = *v.MarketValue
			}
		}
		analytics.ConcentrationPct = util.FloatPointer(
			maxValue.Div(totalValue).InexactFloat64() * 100,
		)
	}

	analytics.BestPerformer, analytics.WorstPerformer = bestAndWorst(priced)
	analytics.Recommendations = recommendations(analytics)

	return analytics, nil
}

func sectorGroups(priced []domain.ValuedPosition, totalValue decimal.Decimal) []domain.SectorGroup {
	bySector := map[string][]domain.ValuedPosition{}
	for _, v := range priced {
		sector := v.Sector
		if sector == "" {
			sector = unknownSector
		}
		bySector[sector] = append(bySector[sector], v)
	}

	groups := make([]domain.SectorGroup, 0, len(bySector))
	for sector, members := range bySector {
		group := domain.SectorGroup{
			Sector:        sector,
			PositionCount: len(members),
		}
		returns := make([]float64, 0, len(members))
		for _, m := range members {
			group.TotalValue = group.TotalValue.Add(*m.MarketValue)
			returns = append(returns, *m.ReturnPct)
		}
		if mean, err := stats.Mean(returns); err == nil {
			group.MeanReturnPct = util.FloatPointer(mean)
		}
		if totalValue.IsPositive() {
			group.WeightPct = util.FloatPointer(
				group.TotalValue.Div(totalValue).InexactFloat64() * 100,
			)
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Sector < groups[j].Sector
	})

	return groups
}

func bestAndWorst(priced []domain.ValuedPosition) (*domain.ValuedPosition, *domain.ValuedPosition) {
	if len(priced) == 0 {
		return nil, nil
	}

	best := priced[0]
	worst := priced[0]
	for _, v := range priced[1:] {
		if *v.ReturnPct > *best.ReturnPct {
			best = v
		}
		if *v.ReturnPct < *worst.ReturnPct {
			worst = v
		}
	}
	return &best, &worst
}

// recommendations evaluates every rule independently, in fixed order.
// "Balanced" only appears when there was data to judge and no rule
// fired; an empty or fully-unpriced portfolio reports no data instead.
func recommendations(a domain.PortfolioAnalytics) []domain.Recommendation {
	if a.PricedCount == 0 {
		return []domain.Recommendation{{
			Code:    domain.RecommendationNoData,
			Message: "No priced positions to analyze. Add assets or refresh quotes.",
		}}
	}

	out := []domain.Recommendation{}
	if a.ConcentrationPct != nil && *a.ConcentrationPct > concentrationThresholdPct {
		out = append(out, domain.Recommendation{
			Code:    domain.RecommendationConcentration,
			Message: "High concentration in a single asset. Consider diversifying.",
		})
	}
	if a.SectorCount < minSectorCount {
		out = append(out, domain.Recommendation{
			Code:    domain.RecommendationFewSectors,
			Message: "Few sectors represented. Add sector diversification.",
		})
	}
	if a.MeanReturnPct != nil && *a.MeanReturnPct < meanReturnThresholdPct {
		out = append(out, domain.Recommendation{
			Code:    domain.RecommendationNegativeMean,
			Message: "Average return is negative. Review your strategy.",
		})
	}
	if a.VolatilityPct != nil && *a.VolatilityPct > volatilityThresholdPct {
		out = append(out, domain.Recommendation{
			Code:    domain.RecommendationHighVol,
			Message: "High volatility. Consider more stable assets.",
		})
	}
	if len(out) == 0 {
		out = append(out, domain.Recommendation{
			Code:    domain.RecommendationBalanced,
			Message: "Portfolio looks diversified and balanced.",
		})
	}

	return out
}
