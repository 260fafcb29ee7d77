package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SectorGroup aggregates the priced positions of one sector.
type SectorGroup struct {
	Sector        string          `json:"sector"`
	TotalValue    decimal.Decimal `json:"total_value"`
	MeanReturnPct *float64        `json:"mean_return_pct"`
	PositionCount int             `json:"position_count"`
	WeightPct     *float64        `json:"weight_pct"`
}

// RecommendationCode identifies one rule-based portfolio signal.
type RecommendationCode string

const (
	RecommendationNoData        RecommendationCode = "no_data"
	RecommendationConcentration RecommendationCode = "high_concentration"
	RecommendationFewSectors    RecommendationCode = "few_sectors"
	RecommendationNegativeMean  RecommendationCode = "negative_mean_return"
	RecommendationHighVol       RecommendationCode = "high_volatility"
	RecommendationBalanced      RecommendationCode = "balanced"
)

type Recommendation struct {
	Code    RecommendationCode `json:"code"`
	Message string             `json:"message"`
}

// PortfolioAnalytics is the portfolio-level roll-up of a valuation
// pass. Aggregates cover priced positions only; pointer fields are nil
// when undefined (empty portfolio, zero cost, too little history).
type PortfolioAnalytics struct {
	TotalValue     decimal.Decimal `json:"total_value"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalReturn    decimal.Decimal `json:"total_return"`
	TotalReturnPct *float64        `json:"total_return_pct"`

	MeanReturnPct *float64 `json:"mean_return_pct"`
	// Annualized stdev of daily portfolio value changes, in percent.
	VolatilityPct *float64 `json:"volatility_pct"`

	Sectors []SectorGroup `json:"sectors"`

	ConcentrationPct *float64 `json:"concentration_pct"`
	SectorCount      int      `json:"sector_count"`
	PositionCount    int      `json:"position_count"`
	PricedCount      int      `json:"priced_count"`

	BestPerformer  *ValuedPosition `json:"best_performer,omitempty"`
	WorstPerformer *ValuedPosition `json:"worst_performer,omitempty"`

	Recommendations []Recommendation `json:"recommendations"`

	RefreshedAt *time.Time `json:"refreshed_at,omitempty"`
}
