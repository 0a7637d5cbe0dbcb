package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ergasia-marketplace/internal/usecase"
)

func TestHealthUsecase_Check(t *testing.T) {
	ctx := context.Background()
	up := usecase.PingFunc(func(context.Context) error { return nil })
	down := usecase.PingFunc(func(context.Context) error { return errors.New("refused") })

	t.Run("All dependencies up", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up}).Check(ctx)
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"status": "ok", "database": "up"}, status)
	})

	t.Run("A failing dependency degrades the status", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(map[string]usecase.Pinger{"database": up, "redis": down, "absent": nil}).Check(ctx)
		assert.False(t, ok)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "down", status["redis"])
		assert.NotContains(t, status, "absent")
	})
}
