package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the latest fetched market data for one symbol. Price is nil
// when the provider returned the symbol without a usable price; callers
// treat that the same as a missing quote.
type Quote struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name,omitempty"`
	Sector string `json:"sector,omitempty"`

	Price *decimal.Decimal `json:"price"`

	MarketCap        int64    `json:"market_cap,omitempty"`
	PERatio          *float64 `json:"pe_ratio,omitempty"`
	DividendYieldPct *float64 `json:"dividend_yield_pct,omitempty"`
}

// AssetPrice is one daily close for a symbol.
type AssetPrice struct {
	Symbol string
	Date   time.Time
	Price  decimal.Decimal
}

// HistoryPoint is the reconstructed total portfolio value on one
// trading day.
type HistoryPoint struct {
	Date       time.Time       `json:"date"`
	TotalValue decimal.Decimal `json:"total_value"`
}
