package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

type commentaryResponse struct {
	Commentary string `json:"commentary"`
}

func (m *ApiHandler) commentary(c *gin.Context) {
	if m.GptRepository == nil {
		returnErrorJsonCode(fmt.Errorf("commentary is not configured"), c, 503)
		return
	}

	m.RefreshHandler.Mu.Lock()
	result, err := m.RefreshHandler.Refresh(c.Request.Context())
	m.RefreshHandler.Mu.Unlock()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	commentary, err := m.GptRepository.DescribePortfolio(c.Request.Context(), result.Analytics)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, commentaryResponse{Commentary: commentary})
}
