package api

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"foliotrack/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func Test_returnErrorJson(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("validation failures map to 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		returnErrorJson(fmt.Errorf("%w: quantity must be >= 0", domain.ErrValidation), c)

		require.Equal(t, 400, w.Code)
		require.Contains(t, w.Body.String(), "quantity must be")
	})

	t.Run("everything else maps to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		returnErrorJson(fmt.Errorf("upstream down"), c)

		require.Equal(t, 500, w.Code)
	})
}
