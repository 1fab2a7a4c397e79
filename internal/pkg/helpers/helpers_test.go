package helpers_test

import (
	"testing"
	"time"

	"backoffice-service/internal/pkg/helpers"

	"github.com/stretchr/testify/assert"
)

func TestDurationCalculation(t *testing.T) {
	t.Run("future instant yields the remaining delay", func(t *testing.T) {
		d := helpers.DurationCalculation(time.Now().Add(30 * time.Minute))

		assert.Greater(t, d, 29*time.Minute)
		assert.LessOrEqual(t, d, 30*time.Minute)
	})

	t.Run("past instant is floored at zero", func(t *testing.T) {
		d := helpers.DurationCalculation(time.Now().Add(-time.Minute))

		assert.Equal(t, time.Duration(0), d)
	})
}
