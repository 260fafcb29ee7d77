package l2_service

import (
	"foliotrack/internal/domain"
	"foliotrack/internal/util"

	"github.com/shopspring/decimal"
)

// Value enriches each position with its derived fields from the given
// quotes. Pure: same inputs produce the same output and the position
// list is never mutated.
//
// Positions without a usable quote keep nil derived fields and are
// excluded from the weight denominator, but stay in the output in
// their original order.
func Value(positions []domain.Position, quotes map[string]domain.Quote) []domain.ValuedPosition {
	valued := make([]domain.ValuedPosition, 0, len(positions))

	pricedTotal := decimal.Zero
	for _, p := range positions {
		v := domain.ValuedPosition{
			Position: p,
			Cost:     p.TotalCost(),
		}

		if quote, ok := quotes[p.Symbol]; ok && quote.Price != nil {
			v.Name = quote.Name
			v.Sector = quote.Sector
			v.MarketCap = quote.MarketCap
			v.PERatio = quote.PERatio
			v.DividendYieldPct = quote.DividendYieldPct

			price := *quote.Price
			marketValue := price.Mul(p.Quantity)
			v.CurrentPrice = util.DecimalPointer(price)
			v.MarketValue = util.DecimalPointer(marketValue)
			v.ProfitLoss = util.DecimalPointer(marketValue.Sub(v.Cost))
			// buy price > 0 is a store invariant, the division is safe
			v.ReturnPct = util.FloatPointer(
				price.Div(p.BuyPrice).Sub(decimal.NewFromInt(1)).InexactFloat64() * 100,
			)

			pricedTotal = pricedTotal.Add(marketValue)
		}

		valued = append(valued, v)
	}

	// weights are undefined unless some priced value exists
	if pricedTotal.IsPositive() {
		for i := range valued {
			if valued[i].MarketValue == nil {
				continue
			}
			valued[i].WeightPct = util.FloatPointer(
				valued[i].MarketValue.Div(pricedTotal).InexactFloat64() * 100,
			)
		}
	}

	return valued
}

// PricedTotalValue sums market value over priced positions.
func PricedTotalValue(valued []domain.ValuedPosition) decimal.Decimal {
	total := decimal.Zero
	for _, v := range valued {
		if v.MarketValue != nil {
			total = total.Add(*v.MarketValue)
		}
	}
	return total
}
