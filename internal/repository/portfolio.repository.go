package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"foliotrack/internal/domain"

	"github.com/shopspring/decimal"
)

// PortfolioRepository persists the position list. The backing format is
// a JSON array of {symbol, quantity, buy_price} records so the file
// stays hand-editable and round-trips through other tools.
type PortfolioRepository interface {
	Load() ([]domain.Position, error)
	Save(positions []domain.Position) error
}

type positionRecord struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	BuyPrice float64 `json:"buy_price"`
}

func NewPortfolioRepository(path string) PortfolioRepository {
	return portfolioRepositoryHandler{
		Path: path,
	}
}

type portfolioRepositoryHandler struct {
	Path string
}

// Load reads the portfolio file. A missing file is an empty portfolio,
// not an error.
func (h portfolioRepositoryHandler) Load() ([]domain.Position, error) {
	contents, err := os.ReadFile(h.Path)
	if os.IsNotExist(err) {
		return []domain.Position{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read portfolio file %s: %w", h.Path, err)
	}

	records := []positionRecord{}
	if err := json.Unmarshal(contents, &records); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio file %s: %w", h.Path, err)
	}

	positions := make([]domain.Position, 0, len(records))
	for _, r := range records {
		positions = append(positions, domain.Position{
			Symbol:   domain.NormalizeSymbol(r.Symbol),
			Quantity: decimal.NewFromFloat(r.Quantity),
			BuyPrice: decimal.NewFromFloat(r.BuyPrice),
		})
	}

	return positions, nil
}

// Save writes the full position list. The write goes to a temp file in
// the same directory and is renamed over the target, so a crash
// mid-write cannot clobber the previous good file.
func (h portfolioRepositoryHandler) Save(positions []domain.Position) error {
	records := make([]positionRecord, 0, len(positions))
	for _, p := range positions {
		records = append(records, positionRecord{
			Symbol:   p.Symbol,
			Quantity: p.Quantity.InexactFloat64(),
			BuyPrice: p.BuyPrice.InexactFloat64(),
		})
	}

	contents, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	dir := filepath.Dir(h.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(h.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp portfolio file: %w", err)
	}

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write portfolio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp portfolio file: %w", err)
	}

	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace portfolio file %s: %w", h.Path, err)
	}

	return nil
}
