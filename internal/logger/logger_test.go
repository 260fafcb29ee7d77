package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Run("round trips through context", func(t *testing.T) {
		log := New()
		ctx := AddToContext(context.Background(), log)
		require.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to a fresh logger", func(t *testing.T) {
		require.NotNil(t, FromContext(context.Background()))
	})
}
