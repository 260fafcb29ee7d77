package l1_service

import (
	"context"
	"fmt"
	"testing"

	"foliotrack/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type fakePortfolioRepository struct {
	positions []domain.Position
	saveCalls int
	failSave  bool
}

func (f *fakePortfolioRepository) Load() ([]domain.Position, error) {
	return f.positions, nil
}

func (f *fakePortfolioRepository) Save(positions []domain.Position) error {
	f.saveCalls++
	if f.failSave {
		return fmt.Errorf("disk full")
	}
	f.positions = positions
	return nil
}

func newPosition(symbol string, quantity, buyPrice float64) domain.Position {
	return domain.Position{
		Symbol:   symbol,
		Quantity: decimal.NewFromFloat(quantity),
		BuyPrice: decimal.NewFromFloat(buyPrice),
	}
}

func newTestPositionService(t *testing.T, repo *fakePortfolioRepository) PositionService {
	t.Helper()
	svc, err := NewPositionService(repo)
	require.NoError(t, err)
	return svc
}

func TestPositionService_AddOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("adds with normalized symbol and saves through", func(t *testing.T) {
		repo := &fakePortfolioRepository{}
		svc := newTestPositionService(t, repo)

		position, err := svc.AddOrUpdate(ctx, AddPositionInput{
			Symbol:   " aapl ",
			Quantity: decimal.NewFromInt(10),
			BuyPrice: decimal.NewFromInt(150),
		})
		require.NoError(t, err)
		require.Equal(t, "AAPL", position.Symbol)

		require.Equal(t, 1, repo.saveCalls)
		require.Equal(t, "", cmp.Diff([]domain.Position{newPosition("AAPL", 10, 150)}, repo.positions))
		require.False(t, svc.Dirty())
	})

	t.Run("second call with same symbol updates in place", func(t *testing.T) {
		repo := &fakePortfolioRepository{}
		svc := newTestPositionService(t, repo)

		_, err := svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), BuyPrice: decimal.NewFromInt(150)})
		require.NoError(t, err)
		_, err = svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "MSFT", Quantity: decimal.NewFromInt(5), BuyPrice: decimal.NewFromInt(300)})
		require.NoError(t, err)
		_, err = svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "aapl", Quantity: decimal.NewFromInt(20), BuyPrice: decimal.NewFromInt(160)})
		require.NoError(t, err)

		// exactly one AAPL row, still first, with the second call's values
		require.Equal(t, "", cmp.Diff(
			[]domain.Position{
				newPosition("AAPL", 20, 160),
				newPosition("MSFT", 5, 300),
			},
			svc.List(),
		))
	})

	t.Run("rejects bad input before any mutation", func(t *testing.T) {
		repo := &fakePortfolioRepository{}
		svc := newTestPositionService(t, repo)

		cases := []AddPositionInput{
			{Symbol: "", Quantity: decimal.NewFromInt(1), BuyPrice: decimal.NewFromInt(1)},
			{Symbol: "   ", Quantity: decimal.NewFromInt(1), BuyPrice: decimal.NewFromInt(1)},
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(-1), BuyPrice: decimal.NewFromInt(1)},
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(1), BuyPrice: decimal.Zero},
			{Symbol: "AAPL", Quantity: decimal.NewFromInt(1), BuyPrice: decimal.NewFromInt(-5)},
		}
		for _, input := range cases {
			_, err := svc.AddOrUpdate(ctx, input)
			require.ErrorIs(t, err, domain.ErrValidation)
		}

		require.True(t, svc.IsEmpty())
		require.Equal(t, 0, repo.saveCalls)
	})

	t.Run("zero quantity is allowed", func(t *testing.T) {
		repo := &fakePortfolioRepository{}
		svc := newTestPositionService(t, repo)

		_, err := svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "AAPL", Quantity: decimal.Zero, BuyPrice: decimal.NewFromInt(150)})
		require.NoError(t, err)
	})

	t.Run("failed save surfaces and flags state as not durable", func(t *testing.T) {
		repo := &fakePortfolioRepository{failSave: true}
		svc := newTestPositionService(t, repo)

		_, err := svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "AAPL", Quantity: decimal.NewFromInt(10), BuyPrice: decimal.NewFromInt(150)})
		require.Error(t, err)

		// in-memory state stays authoritative for the session
		require.Len(t, svc.List(), 1)
		require.True(t, svc.Dirty())

		repo.failSave = false
		_, err = svc.AddOrUpdate(ctx, AddPositionInput{Symbol: "MSFT", Quantity: decimal.NewFromInt(5), BuyPrice: decimal.NewFromInt(300)})
		require.NoError(t, err)
		require.False(t, svc.Dirty())
	})
}

func TestPositionService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes and saves", func(t *testing.T) {
		repo := &fakePortfolioRepository{
			positions: []domain.Position{
				newPosition("AAPL", 10, 150),
				newPosition("MSFT", 5, 300),
			},
		}
		svc := newTestPositionService(t, repo)

		require.NoError(t, svc.Remove(ctx, "aapl"))
		require.Equal(t, "", cmp.Diff([]domain.Position{newPosition("MSFT", 5, 300)}, svc.List()))
		require.Equal(t, 1, repo.saveCalls)
	})

	t.Run("absent symbol is a no-op", func(t *testing.T) {
		repo := &fakePortfolioRepository{
			positions: []domain.Position{newPosition("AAPL", 10, 150)},
		}
		svc := newTestPositionService(t, repo)

		require.NoError(t, svc.Remove(ctx, "TSLA"))
		require.Len(t, svc.List(), 1)
		require.Equal(t, 0, repo.saveCalls)
	})
}

func TestPositionService_Replace(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the whole list, last duplicate wins", func(t *testing.T) {
		repo := &fakePortfolioRepository{
			positions: []domain.Position{newPosition("OLD", 1, 1)},
		}
		svc := newTestPositionService(t, repo)

		err := svc.Replace(ctx, []domain.Position{
			newPosition("aapl", 10, 150),
			newPosition("MSFT", 5, 300),
			newPosition("AAPL", 12, 155),
		})
		require.NoError(t, err)

		require.Equal(t, "", cmp.Diff(
			[]domain.Position{
				newPosition("AAPL", 12, 155),
				newPosition("MSFT", 5, 300),
			},
			svc.List(),
		))
	})

	t.Run("one invalid row rejects the whole import", func(t *testing.T) {
		repo := &fakePortfolioRepository{
			positions: []domain.Position{newPosition("OLD", 1, 1)},
		}
		svc := newTestPositionService(t, repo)

		err := svc.Replace(ctx, []domain.Position{
			newPosition("AAPL", 10, 150),
			newPosition("BAD", 1, 0),
		})
		require.ErrorIs(t, err, domain.ErrValidation)
		require.Equal(t, "", cmp.Diff([]domain.Position{newPosition("OLD", 1, 1)}, svc.List()))
	})
}

func TestPositionService_List(t *testing.T) {
	t.Run("returned slice is a copy", func(t *testing.T) {
		repo := &fakePortfolioRepository{
			positions: []domain.Position{newPosition("AAPL", 10, 150)},
		}
		svc := newTestPositionService(t, repo)

		listed := svc.List()
		listed[0].Symbol = "MUTATED"
		require.Equal(t, "AAPL", svc.List()[0].Symbol)
	})
}
