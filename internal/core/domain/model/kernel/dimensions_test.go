package kernel_test

import (
	"testing"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDimensions(t *testing.T) {
	t.Run("should create valid dimensions", func(t *testing.T) {
		dims, err := kernel.NewDimensions(
			decimal.NewFromInt(40),
			decimal.NewFromInt(30),
			decimal.NewFromInt(25),
		)

		require.NoError(t, err)
		require.NoError(t, dims.Validate())
		assert.True(t, dims.Length().Equal(decimal.NewFromInt(40)))
		assert.True(t, dims.Width().Equal(decimal.NewFromInt(30)))
		assert.True(t, dims.Height().Equal(decimal.NewFromInt(25)))
	})

	t.Run("should fail with zero side", func(t *testing.T) {
		_, err := kernel.NewDimensions(
			decimal.Zero,
			decimal.NewFromInt(30),
			decimal.NewFromInt(25),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "length")
	})

	t.Run("should fail with negative side", func(t *testing.T) {
		_, err := kernel.NewDimensions(
			decimal.NewFromInt(40),
			decimal.NewFromInt(-1),
			decimal.NewFromInt(25),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "width")
	})

	t.Run("should aggregate multiple validation errors", func(t *testing.T) {
		_, err := kernel.NewDimensions(decimal.Zero, decimal.Zero, decimal.Zero)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "length")
		assert.Contains(t, err.Error(), "width")
		assert.Contains(t, err.Error(), "height")
	})
}

func TestDimensions_Volume(t *testing.T) {
	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(40),
		decimal.NewFromInt(30),
		decimal.NewFromInt(25),
	)
	require.NoError(t, err)

	assert.True(t, dims.Volume().Equal(decimal.NewFromInt(30000)))
}

func TestDimensions_Validate(t *testing.T) {
	var dims kernel.Dimensions // zero value

	require.ErrorIs(t, dims.Validate(), kernel.ErrDimensionsAreNotConstructed)
}

func TestDimensions_String(t *testing.T) {
	dims, err := kernel.NewDimensions(
		decimal.NewFromInt(40),
		decimal.NewFromInt(30),
		decimal.NewFromInt(25),
	)
	require.NoError(t, err)

	assert.Equal(t, "40x30x25cm", dims.String())
}
