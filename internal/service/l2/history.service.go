package l2_service

import (
	"sort"
	"time"

	"foliotrack/internal/domain"
)

// Aggregate reconstructs the total portfolio value series from
// per-symbol daily closes, weighted by the quantity held today. The
// engine does not model historical quantity changes; the series answers
// "what would my current holdings have been worth", which is a known
// approximation.
//
// Days are the union of every symbol's trading days. A symbol with no
// bar on a day in the union carries its last known price forward, so
// exchange holidays and partial listings do not drop days. Before a
// symbol's first bar it contributes zero (no backward fill).
func Aggregate(positions []domain.Position, series map[string][]domain.AssetPrice) []domain.HistoryPoint {
	if len(positions) == 0 || len(series) == 0 {
		return []domain.HistoryPoint{}
	}

	held := map[string][]domain.AssetPrice{}
	daySet := map[time.Time]bool{}
	for _, p := range positions {
		bars, ok := series[p.Symbol]
		if !ok || len(bars) == 0 {
			continue
		}
		sorted := make([]domain.AssetPrice, len(bars))
		copy(sorted, bars)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Date.Before(sorted[j].Date)
		})
		held[p.Symbol] = sorted
		for _, bar := range sorted {
			daySet[bar.Date] = true
		}
	}
	if len(daySet) == 0 {
		return []domain.HistoryPoint{}
	}

	days := make([]time.Time, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	points := make([]domain.HistoryPoint, len(days))
	for i, day := range days {
		points[i] = domain.HistoryPoint{Date: day}
	}

	for _, p := range positions {
		bars, ok := held[p.Symbol]
		if !ok {
			continue
		}
		next := 0
		var lastPrice *domain.AssetPrice
		for i, day := range days {
			for next < len(bars) && !bars[next].Date.After(day) {
				lastPrice = &bars[next]
				next++
			}
			if lastPrice == nil {
				// not listed yet, contributes nothing
				continue
			}
			points[i].TotalValue = points[i].TotalValue.Add(lastPrice.Price.Mul(p.Quantity))
		}
	}

	return points
}
