package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrValidation marks rejected mutations. The store is unchanged
// whenever an error wraps this.
var ErrValidation = errors.New("validation failed")

// Position is one held lot: a symbol, how many units we hold, and the
// average price paid per unit. Everything else is derived at valuation
// time and never stored.
type Position struct {
	Symbol   string          `json:"symbol"`
	Quantity decimal.Decimal `json:"quantity"`
	BuyPrice decimal.Decimal `json:"buy_price"`
}

func (p Position) TotalCost() decimal.Decimal {
	return p.BuyPrice.Mul(p.Quantity)
}

func (p Position) Validate() error {
	if strings.TrimSpace(p.Symbol) == "" {
		return fmt.Errorf("%w: symbol must not be empty", ErrValidation)
	}
	if p.Quantity.IsNegative() {
		return fmt.Errorf("%w: quantity must be >= 0, got %s", ErrValidation, p.Quantity)
	}
	if !p.BuyPrice.IsPositive() {
		return fmt.Errorf("%w: buy price must be > 0, got %s", ErrValidation, p.BuyPrice)
	}
	return nil
}

// NormalizeSymbol maps user input onto the canonical symbol key.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValuedPosition is a Position enriched with the latest quote. Pointer
// fields are nil when the quote for the symbol could not be fetched;
// such positions stay in the listing but are excluded from weight and
// aggregate calculations.
type ValuedPosition struct {
	Position

	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"`

	CurrentPrice *decimal.Decimal `json:"current_price"`
	MarketValue  *decimal.Decimal `json:"market_value"`
	Cost         decimal.Decimal  `json:"total_cost"`
	ProfitLoss   *decimal.Decimal `json:"profit_loss"`
	ReturnPct    *float64         `json:"return_pct"`
	WeightPct    *float64         `json:"weight_pct"`

	MarketCap        int64    `json:"market_cap,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	DividendYieldPct *float64 `json:"dividend_yield_pct,omitempty"`
}

// Priced reports whether the position has a usable current price.
func (v ValuedPosition) Priced() bool {
	return v.CurrentPrice != nil
}

func HeldSymbols(positions []Position) []string {
	symbols := make([]string, 0, len(positions))
	for _, p := range positions {
		symbols = append(symbols, p.Symbol)
	}
	return symbols
}
