package app

import (
	"context"
	"sync"
	"time"

	"foliotrack/internal/domain"
	"foliotrack/internal/logger"
	l1_service "foliotrack/internal/service/l1"
	l2_service "foliotrack/internal/service/l2"
	l3_service "foliotrack/internal/service/l3"
	"foliotrack/internal/util"

	"github.com/robfig/cron/v3"
)

// DefaultLookback covers roughly one trading year of daily bars.
const DefaultLookback = 365 * 24 * time.Hour

// RefreshHandler runs a full portfolio refresh: one batched quote
// fetch and one history fetch for the held symbols, then valuation,
// history aggregation and analytics. Quote failures for individual
// symbols degrade those positions, they never abort the pass.
type RefreshHandler struct {
	PositionService l1_service.PositionService
	PriceService    l1_service.PriceService
	Lookback        time.Duration

	// Mu serializes refreshes with the API's mutations; user-triggered
	// actions run to completion one at a time.
	Mu sync.Mutex

	lastRefreshedAt *time.Time
	now             func() time.Time
}

type RefreshResult struct {
	Positions []domain.ValuedPosition
	History   []domain.HistoryPoint
	Analytics domain.PortfolioAnalytics
}

func NewRefreshHandler(positionService l1_service.PositionService, priceService l1_service.PriceService) *RefreshHandler {
	return &RefreshHandler{
		PositionService: positionService,
		PriceService:    priceService,
		Lookback:        DefaultLookback,
		now:             time.Now,
	}
}

// Refresh assumes the caller holds Mu.
func (h *RefreshHandler) Refresh(ctx context.Context) (*RefreshResult, error) {
	positions := h.PositionService.List()
	symbols := domain.HeldSymbols(positions)

	quotes, err := h.PriceService.GetLatestQuotes(ctx, symbols)
	if err != nil {
		return nil, err
	}
	series, err := h.PriceService.GetHistory(ctx, symbols, h.Lookback)
	if err != nil {
		return nil, err
	}

	valued := l2_service.Value(positions, quotes)
	history := l2_service.Aggregate(positions, series)

	analytics, err := l3_service.Summarize(valued, history)
	if err != nil {
		return nil, err
	}

	h.lastRefreshedAt = util.TimePointer(h.now())
	analytics.RefreshedAt = h.lastRefreshedAt

	return &RefreshResult{
		Positions: valued,
		History:   history,
		Analytics: analytics,
	}, nil
}

func (h *RefreshHandler) LastRefreshedAt() *time.Time {
	return h.lastRefreshedAt
}

// StartSchedule re-runs the refresh on the given cron spec, e.g.
// "*/15 9-16 * * 1-5". The returned cron is already started.
func (h *RefreshHandler) StartSchedule(cronSpec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(cronSpec, func() {
		log := logger.New()
		ctx := logger.AddToContext(context.Background(), log)

		h.Mu.Lock()
		defer h.Mu.Unlock()
		if _, err := h.Refresh(ctx); err != nil {
			log.Errorf("scheduled refresh failed: %s", err.Error())
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()

	return c, nil
}
