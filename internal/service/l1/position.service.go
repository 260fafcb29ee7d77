package l1_service

import (
	"context"
	"fmt"

	"foliotrack/internal/domain"
	"foliotrack/internal/logger"
	"foliotrack/internal/repository"

	"github.com/shopspring/decimal"
)

// PositionService is the in-memory position store for one session. It
// keeps insertion order, enforces the mutation invariants, and saves
// through to the portfolio repository on every successful mutation.
//
// Not safe for concurrent use; callers serialize mutations.
type PositionService interface {
	AddOrUpdate(ctx context.Context, input AddPositionInput) (domain.Position, error)
	Remove(ctx context.Context, symbol string) error
	Replace(ctx context.Context, positions []domain.Position) error
	List() []domain.Position
	IsEmpty() bool
	// Dirty reports whether in-memory state has diverged from the
	// persisted file because the last save failed.
	Dirty() bool
}

type AddPositionInput struct {
	Symbol   string
	Quantity decimal.Decimal
	BuyPrice decimal.Decimal
}

type positionServiceHandler struct {
	PortfolioRepository repository.PortfolioRepository

	positions []domain.Position
	dirty     bool
}

// NewPositionService loads the persisted portfolio and returns a store
// seeded with it.
func NewPositionService(portfolioRepository repository.PortfolioRepository) (PositionService, error) {
	positions, err := portfolioRepository.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	return &positionServiceHandler{
		PortfolioRepository: portfolioRepository,
		positions:           positions,
	}, nil
}

func (h *positionServiceHandler) AddOrUpdate(ctx context.Context, input AddPositionInput) (domain.Position, error) {
	position := domain.Position{
		Symbol:   domain.NormalizeSymbol(input.Symbol),
		Quantity: input.Quantity,
		BuyPrice: input.BuyPrice,
	}
	if err := position.Validate(); err != nil {
		return domain.Position{}, err
	}

	updated := false
	for i, p := range h.positions {
		if p.Symbol == position.Symbol {
			// update in place keeps the original ordering
			h.positions[i] = position
			updated = true
			break
		}
	}
	if !updated {
		h.positions = append(h.positions, position)
	}

	if err := h.save(ctx); err != nil {
		return position, err
	}

	return position, nil
}

func (h *positionServiceHandler) Remove(ctx context.Context, symbol string) error {
	symbol = domain.NormalizeSymbol(symbol)
	for i, p := range h.positions {
		if p.Symbol == symbol {
			h.positions = append(h.positions[:i], h.positions[i+1:]...)
			return h.save(ctx)
		}
	}

	// absent symbol is a no-op, the store is unchanged
	return nil
}

// Replace swaps the whole position list, e.g. from an imported file.
// Every incoming position must validate or nothing changes.
func (h *positionServiceHandler) Replace(ctx context.Context, positions []domain.Position) error {
	replacement := make([]domain.Position, 0, len(positions))
	seen := map[string]int{}
	for _, p := range positions {
		p.Symbol = domain.NormalizeSymbol(p.Symbol)
		if err := p.Validate(); err != nil {
			return fmt.Errorf("rejecting imported position %q: %w", p.Symbol, err)
		}
		if i, ok := seen[p.Symbol]; ok {
			replacement[i] = p
			continue
		}
		seen[p.Symbol] = len(replacement)
		replacement = append(replacement, p)
	}

	h.positions = replacement
	return h.save(ctx)
}

func (h *positionServiceHandler) List() []domain.Position {
	out := make([]domain.Position, len(h.positions))
	copy(out, h.positions)
	return out
}

func (h *positionServiceHandler) IsEmpty() bool {
	return len(h.positions) == 0
}

func (h *positionServiceHandler) Dirty() bool {
	return h.dirty
}

func (h *positionServiceHandler) save(ctx context.Context) error {
	if err := h.PortfolioRepository.Save(h.positions); err != nil {
		// in-memory state stays authoritative for the session, but
		// callers get told it is not durable
		h.dirty = true
		logger.FromContext(ctx).Errorf("portfolio save failed, in-memory state not durable: %s", err.Error())
		return fmt.Errorf("failed to persist portfolio: %w", err)
	}
	h.dirty = false
	return nil
}
