package api

import (
	"github.com/gin-gonic/gin"
)

func (m *ApiHandler) getAnalytics(c *gin.Context) {
	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	result, err := m.RefreshHandler.Refresh(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result.Analytics)
}

func (m *ApiHandler) getHistory(c *gin.Context) {
	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	result, err := m.RefreshHandler.Refresh(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result.History)
}

func (m *ApiHandler) refresh(c *gin.Context) {
	m.RefreshHandler.Mu.Lock()
	defer m.RefreshHandler.Mu.Unlock()

	result, err := m.RefreshHandler.Refresh(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
