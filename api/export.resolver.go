package api

import (
	"fmt"
	"strings"
	"time"

	"foliotrack/internal/domain"
	"foliotrack/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func (m *ApiHandler) exportPortfolio(c *gin.Context) {
	m.RefreshHandler.Mu.Lock()
	positions := m.PositionService.List()
	m.RefreshHandler.Mu.Unlock()

	filename := fmt.Sprintf("portfolio_%s.csv", time.Now().UTC().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "text/csv")

	if err := repository.WritePositionsCSV(c.Writer, positions); err != nil {
		returnErrorJson(err, c)
		return
	}
}

type importPositionRecord struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	BuyPrice float64 `json:"buy_price"`
}

// importPortfolio replaces the stored portfolio with an uploaded one.
// JSON bodies use the same records as the portfolio file; csv bodies
// use the export format.
func (m *ApiHandler) importPortfolio(c *gin.Context) {
	var positions []domain.Position

	if strings.Contains(c.ContentType(), "csv") {
		parsed, err := repository.ReadPositionsCSV(c.Request.Body)
		if err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		positions = parsed
	} else {
		records := []importPositionRecord{}
		if err := c.ShouldBindJSON(&records); err != nil {
			returnErrorJsonCode(err, c, 400)
			return
		}
		for _, r := range records {
			positions = append(positions, domain.Position{
				Symbol:   r.Symbol,
				Quantity: decimal.NewFromFloat(r.Quantity),
				BuyPrice: decimal.NewFromFloat(r.BuyPrice),
			})
		}
	}

	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	if err := m.PositionService.Replace(c.Request.Context(), positions); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, map[string]any{
		"message":  "ok",
		"imported": len(positions),
	})
}
