package api

import (
	"foliotrack/internal/domain"
	l1_service "foliotrack/internal/service/l1"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type addPositionRequest struct {
	Symbol   string  `json:"symbol"`
	Quantity float64 `json:"quantity"`
	BuyPrice float64 `json:"buy_price"`
}

type addPositionResponse struct {
	Position domain.Position `json:"position"`
	Durable  bool            `json:"durable"`
}

func (m *ApiHandler) addPosition(c *gin.Context) {
	var requestBody addPositionRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	position, err := m.PositionService.AddOrUpdate(c.Request.Context(), l1_service.AddPositionInput{
		Symbol:   requestBody.Symbol,
		Quantity: decimal.NewFromFloat(requestBody.Quantity),
		BuyPrice: decimal.NewFromFloat(requestBody.BuyPrice),
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, addPositionResponse{
		Position: position,
		Durable:  !m.PositionService.Dirty(),
	})
}

func (m *ApiHandler) removePosition(c *gin.Context) {
	symbol := c.Param("symbol")

	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	if err := m.PositionService.Remove(c.Request.Context(), symbol); err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, map[string]string{"message": "ok"})
}

type getPortfolioResponse struct {
	Positions []domain.ValuedPosition `json:"positions"`
	Durable   bool                    `json:"durable"`
}

func (m *ApiHandler) getPortfolio(c *gin.Context) {
	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	result, err := m.RefreshHandler.Refresh(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, getPortfolioResponse{
		Positions: result.Positions,
		Durable:   !m.PositionService.Dirty(),
	})
}
