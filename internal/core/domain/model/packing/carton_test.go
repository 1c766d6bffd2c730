package packing_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/packing"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDimensions(t *testing.T, length, width, height int64) kernel.Dimensions {
	t.Helper()

	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(length), decimal.NewFromInt(width), decimal.NewFromInt(height))
	require.NoError(t, err)
	return dims
}

func buildUnit(t *testing.T, weightKg, volumeCm3 float64) *packing.FinishedUnit {
	t.Helper()

	unit, err := packing.NewFinishedUnit(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"TEE-BLK", "M", decimal.NewFromFloat(weightKg), decimal.NewFromFloat(volumeCm3))
	require.NoError(t, err)
	return unit
}

func buildCarton(t *testing.T) *packing.Carton {
	t.Helper()

	carton, err := packing.NewCarton(
		kernel.NewUUID(), kernel.NewUUID(),
		buildDimensions(t, 40, 30, 25), decimal.NewFromFloat(0.5))
	require.NoError(t, err)
	return carton
}

func TestNewCarton(t *testing.T) {
	t.Run("should create an open empty carton", func(t *testing.T) {
		carton := buildCarton(t)

		require.NoError(t, carton.Validate())
		assert.Equal(t, packing.Open, carton.Status())
		assert.Empty(t, carton.Contents())
		assert.Empty(t, carton.Code())
		assert.Nil(t, carton.Measurements())
		assert.Nil(t, carton.ClosedAt())
	})

	t.Run("should reject negative tare weight", func(t *testing.T) {
		_, err := packing.NewCarton(
			kernel.NewUUID(), kernel.NewUUID(),
			buildDimensions(t, 40, 30, 25), decimal.NewFromFloat(-0.1))

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestCarton_AddContent(t *testing.T) {
	t.Run("should append rows while open", func(t *testing.T) {
		carton := buildCarton(t)

		content, err := packing.NewContent(buildUnit(t, 0.15, 300), 1)
		require.NoError(t, err)

		require.NoError(t, carton.AddContent(content))
		assert.Len(t, carton.Contents(), 1)
	})

	t.Run("should reject a second row for the same unit", func(t *testing.T) {
		carton := buildCarton(t)
		unit := buildUnit(t, 0.15, 300)

		content, err := packing.NewContent(unit, 1)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))

		err = carton.AddContent(content)

		require.Error(t, err)
		assert.ErrorIs(t, err, packing.ErrUnitAlreadyInCarton)
		assert.IsType(t, &errs.ConflictError{}, err)
		assert.Len(t, carton.Contents(), 1)
	})

	t.Run("should reject adding to a closed carton", func(t *testing.T) {
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.15, 300), 1)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))
		require.NoError(t, carton.Close("CTN-0001", 0, time.Now()))

		other, err := packing.NewContent(buildUnit(t, 0.2, 400), 1)
		require.NoError(t, err)

		err = carton.AddContent(other)
		require.Error(t, err)
		assert.IsType(t, &errs.InvalidTransitionError{}, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := packing.NewContent(buildUnit(t, 0.15, 300), 0)
		require.Error(t, err)
	})
}

func TestCarton_Close(t *testing.T) {
	t.Run("should compute measurements for three units", func(t *testing.T) {
		// tare 0.5kg, 3 units of 0.15kg / 300cm3, carton 40x30x25cm
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.15, 300), 3)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))
		closedAt := time.Date(2026, 8, 2, 16, 0, 0, 0, time.UTC)

		require.NoError(t, carton.Close("CTN-0042", 0, closedAt))

		assert.Equal(t, packing.Closed, carton.Status())
		assert.Equal(t, "CTN-0042", carton.Code())
		require.NotNil(t, carton.ClosedAt())
		assert.Equal(t, closedAt, *carton.ClosedAt())

		m := carton.Measurements()
		require.NotNil(t, m)
		assert.True(t, m.ActualWeightKg.Equal(decimal.NewFromFloat(0.95)),
			"actual weight is tare plus unit weights, got %s", m.ActualWeightKg)
		assert.True(t, m.FillPercent.Equal(decimal.NewFromInt(3)),
			"900cm3 of 30000cm3 is 3 percent, got %s", m.FillPercent)
		assert.True(t, m.DimWeightKg.Equal(decimal.NewFromInt(6)),
			"30000cm3 over divisor 5000 is 6kg, got %s", m.DimWeightKg)
	})

	t.Run("should clamp fill percent at 100", func(t *testing.T) {
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.2, 20000), 2)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))

		require.NoError(t, carton.Close("CTN-0043", 0, time.Now()))

		assert.True(t, carton.Measurements().FillPercent.Equal(decimal.NewFromInt(100)))
	})

	t.Run("should honor a carrier-specific divisor", func(t *testing.T) {
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.1, 100), 1)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))

		require.NoError(t, carton.Close("CTN-0044", 6000, time.Now()))

		assert.True(t, carton.Measurements().DimWeightKg.Equal(decimal.NewFromInt(5)),
			"30000cm3 over divisor 6000 is 5kg")
	})

	t.Run("should reject closing an empty carton", func(t *testing.T) {
		carton := buildCarton(t)

		err := carton.Close("CTN-0045", 0, time.Now())

		assert.ErrorIs(t, err, packing.ErrCartonIsEmpty)
		assert.Equal(t, packing.Open, carton.Status())
	})

	t.Run("should reject closing twice", func(t *testing.T) {
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.15, 300), 1)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))
		require.NoError(t, carton.Close("CTN-0046", 0, time.Now()))
		first := *carton.Measurements()

		err = carton.Close("CTN-0099", 0, time.Now())

		require.Error(t, err)
		assert.IsType(t, &errs.InvalidTransitionError{}, err)
		assert.Equal(t, first, *carton.Measurements(), "measurements are immutable after close")
		assert.Equal(t, "CTN-0046", carton.Code())
	})

	t.Run("should require a code", func(t *testing.T) {
		carton := buildCarton(t)
		content, err := packing.NewContent(buildUnit(t, 0.15, 300), 1)
		require.NoError(t, err)
		require.NoError(t, carton.AddContent(content))

		err = carton.Close("", 0, time.Now())
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})
}

func TestFinishedUnit_MarkPacked(t *testing.T) {
	t.Run("should mark an unpacked unit", func(t *testing.T) {
		unit := buildUnit(t, 0.15, 300)
		require.False(t, unit.IsPacked())

		require.NoError(t, unit.MarkPacked())
		assert.True(t, unit.IsPacked())
	})

	t.Run("should reject a second allocation", func(t *testing.T) {
		unit := buildUnit(t, 0.15, 300)
		require.NoError(t, unit.MarkPacked())

		err := unit.MarkPacked()

		require.Error(t, err)
		assert.ErrorIs(t, err, packing.ErrUnitIsAlreadyPacked)
		assert.IsType(t, &errs.ConflictError{}, err)
	})
}

func TestRestoreFinishedUnit(t *testing.T) {
	t.Run("should restore the packed flag", func(t *testing.T) {
		unit, err := packing.RestoreFinishedUnit(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"TEE-BLK", "L", decimal.NewFromFloat(0.18), decimal.NewFromInt(320), true)

		require.NoError(t, err)
		assert.True(t, unit.IsPacked())
		require.Error(t, unit.MarkPacked())
	})
}
