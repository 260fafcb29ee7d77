package api

import (
	"errors"
	"fmt"
	"time"

	"foliotrack/internal/app"
	"foliotrack/internal/domain"
	"foliotrack/internal/logger"
	"foliotrack/internal/repository"
	l1_service "foliotrack/internal/service/l1"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ApiHandler struct {
	Logger          *zap.SugaredLogger
	PositionService l1_service.PositionService
	RefreshHandler  *app.RefreshHandler
	// GptRepository is optional; the commentary endpoint 503s when it
	// is nil.
	GptRepository repository.GptRepository
}

func (m *ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to foliotrack"})
	})

	router.GET("/portfolio", m.getPortfolio)
	router.POST("/positions", m.addPosition)
	router.DELETE("/positions/:symbol", m.removePosition)
	router.GET("/analytics", m.getAnalytics)
	router.GET("/history", m.getHistory)
	router.POST("/refresh", m.refresh)
	router.GET("/portfolio/export", m.exportPortfolio)
	router.POST("/portfolio/import", m.importPortfolio)
	router.POST("/commentary", m.commentary)

	return router
}

func (m *ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	code := 500
	if errors.Is(err, domain.ErrValidation) {
		code = 400
	}
	returnErrorJsonCode(err, c, code)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func (m *ApiHandler) logRequestMiddleware(ctx *gin.Context) {
	requestID := uuid.NewString()
	log := m.Logger.With(
		"requestId", requestID,
		"method", ctx.Request.Method,
		"route", ctx.Request.URL.Path,
	)
	ctx.Request = ctx.Request.WithContext(
		logger.AddToContext(ctx.Request.Context(), log),
	)
	ctx.Header("X-Request-Id", requestID)

	start := time.Now().UTC()
	ctx.Next()

	log.Infow("handled request",
		"status", ctx.Writer.Status(),
		"durationMs", time.Since(start).Milliseconds(),
	)
}
