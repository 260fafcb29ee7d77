package repository

import (
	"fmt"
	"io"

	"foliotrack/internal/domain"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

type positionCSVRecord struct {
	Symbol   string  `csv:"symbol"`
	Quantity float64 `csv:"quantity"`
	BuyPrice float64 `csv:"buy_price"`
}

func WritePositionsCSV(w io.Writer, positions []domain.Position) error {
	records := make([]positionCSVRecord, 0, len(positions))
	for _, p := range positions {
		records = append(records, positionCSVRecord{
			Symbol:   p.Symbol,
			Quantity: p.Quantity.InexactFloat64(),
			BuyPrice: p.BuyPrice.InexactFloat64(),
		})
	}

	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write positions csv: %w", err)
	}
	return nil
}

func ReadPositionsCSV(r io.Reader) ([]domain.Position, error) {
	records := []positionCSVRecord{}
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("failed to parse positions csv: %w", err)
	}

	positions := make([]domain.Position, 0, len(records))
	for _, rec := range records {
		positions = append(positions, domain.Position{
			Symbol:   domain.NormalizeSymbol(rec.Symbol),
			Quantity: decimal.NewFromFloat(rec.Quantity),
			BuyPrice: decimal.NewFromFloat(rec.BuyPrice),
		})
	}

	return positions, nil
}
