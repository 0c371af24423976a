package usecase_test

import (
	"context"
	"errors"
	"testing"

	"job-portal-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("unreachable") }

	t.Run("Should be up when required probes pass", func(t *testing.T) {
		status := usecase.NewHealthUsecase(
			map[string]usecase.Probe{"database": ok},
			map[string]usecase.Probe{"redis": fail},
		).Check(context.Background())

		assert.Equal(t, "UP", status.Status)
		assert.Equal(t, map[string]string{"database": "UP", "redis": "DOWN"}, status.Dependencies)
	})

	t.Run("Should be down when a required probe fails", func(t *testing.T) {
		status := usecase.NewHealthUsecase(
			map[string]usecase.Probe{"database": fail, "uploads": ok}, nil,
		).Check(context.Background())

		assert.Equal(t, "DOWN", status.Status)
		assert.Equal(t, "UP", status.Dependencies["uploads"])
	})
}
