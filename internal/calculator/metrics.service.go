package calculator

import (
	"math"

	"foliotrack/internal/domain"
	"foliotrack/internal/util"

	"github.com/montanaflynn/stats"
)

// DailyReturns converts a portfolio value series into day-over-day
// percent changes. Days with a zero previous value (nothing listed yet)
// produce no return.
func DailyReturns(history []domain.HistoryPoint) []float64 {
	returns := []float64{}
	for i := 1; i < len(history); i++ {
		prev := history[i-1].TotalValue
		if !prev.IsPositive() {
			continue
		}
		ret := history[i].TotalValue.Sub(prev).Div(prev).InexactFloat64() * 100
		returns = append(returns, ret)
	}
	return returns
}

// AnnualizedVolatility is the sample stdev of daily percent changes
// scaled by sqrt(252), in percent. Nil when the series is too short to
// produce two returns.
func AnnualizedVolatility(history []domain.HistoryPoint) (*float64, error) {
	returns := DailyReturns(history)
	if len(returns) < 2 {
		return nil, nil
	}

	stdev, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return nil, err
	}

	return util.FloatPointer(stdev * math.Sqrt(252)), nil
}
