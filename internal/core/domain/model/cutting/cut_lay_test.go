package cutting_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/cutting"
	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOutputs(t *testing.T, counts map[string]int) []cutting.CutOutput {
	t.Helper()

	outputs := make([]cutting.CutOutput, 0, len(counts))
	for size, qty := range counts {
		output, err := cutting.NewCutOutput(size, qty)
		require.NoError(t, err)
		outputs = append(outputs, output)
	}
	return outputs
}

func buildLay(t *testing.T, plies, piecesPerPly int, counts map[string]int) *cutting.CutLay {
	t.Helper()

	lay, err := cutting.NewCutLay(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"MKR-TEE-4SZ", decimal.NewFromInt(150), decimal.NewFromFloat(6.5),
		plies, piecesPerPly,
		cutting.UOMKilogram,
		decimal.NewFromFloat(42.0), decimal.NewFromFloat(1.5), decimal.NewFromFloat(0.5),
		buildOutputs(t, counts),
		time.Now(),
	)
	require.NoError(t, err)
	return lay
}

func TestNewCutLay(t *testing.T) {
	t.Run("should create a lay and derive net usage", func(t *testing.T) {
		lay := buildLay(t, 30, 4, map[string]int{"S": 30, "M": 60, "L": 30})

		require.NoError(t, lay.Validate())
		assert.Equal(t, "MKR-TEE-4SZ", lay.MarkerName())
		assert.Equal(t, 30, lay.Plies())
		assert.Equal(t, cutting.UOMKilogram, lay.UOM())
		assert.True(t, lay.Net().Equal(decimal.NewFromFloat(40.0)),
			"net must be gross minus offcuts minus defects")
		assert.Equal(t, 120, lay.TotalPieces())
	})

	t.Run("should reject offcuts plus defects exceeding gross", func(t *testing.T) {
		_, err := cutting.NewCutLay(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"MKR-1", decimal.NewFromInt(150), decimal.NewFromInt(5),
			10, 0,
			cutting.UOMMeter,
			decimal.NewFromInt(10), decimal.NewFromInt(8), decimal.NewFromInt(3),
			buildOutputs(t, map[string]int{"M": 40}),
			time.Now(),
		)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "exceed gross")
	})

	t.Run("should reject an unknown unit of measure", func(t *testing.T) {
		_, err := cutting.NewCutLay(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"MKR-1", decimal.NewFromInt(150), decimal.NewFromInt(5),
			10, 0,
			"YD",
			decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			buildOutputs(t, map[string]int{"M": 40}),
			time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"YD" is not a valid unit of measure`)
	})

	t.Run("should reject duplicate size codes", func(t *testing.T) {
		first, err := cutting.NewCutOutput("M", 20)
		require.NoError(t, err)
		second, err := cutting.NewCutOutput("M", 10)
		require.NoError(t, err)

		_, err = cutting.NewCutLay(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"MKR-1", decimal.NewFromInt(150), decimal.NewFromInt(5),
			10, 0,
			cutting.UOMKilogram,
			decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			[]cutting.CutOutput{first, second},
			time.Now(),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `duplicate size code "M"`)
	})

	t.Run("should require at least one output", func(t *testing.T) {
		_, err := cutting.NewCutLay(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"MKR-1", decimal.NewFromInt(150), decimal.NewFromInt(5),
			10, 0,
			cutting.UOMKilogram,
			decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			nil,
			time.Now(),
		)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})

	t.Run("should reject non-positive plies and lay length", func(t *testing.T) {
		_, err := cutting.NewCutLay(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"MKR-1", decimal.NewFromInt(150), decimal.Zero,
			0, 0,
			cutting.UOMKilogram,
			decimal.NewFromInt(10), decimal.Zero, decimal.Zero,
			buildOutputs(t, map[string]int{"M": 40}),
			time.Now(),
		)

		require.Error(t, err)
	})
}

func TestNewCutOutput(t *testing.T) {
	t.Run("should reject empty size code", func(t *testing.T) {
		_, err := cutting.NewCutOutput("", 10)
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := cutting.NewCutOutput("XL", 0)
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestCutLay_PieceCountDiverges(t *testing.T) {
	t.Run("should report agreement when counts match", func(t *testing.T) {
		lay := buildLay(t, 30, 4, map[string]int{"S": 30, "M": 60, "L": 30})

		expected, diverges := lay.PieceCountDiverges()

		assert.Equal(t, 120, expected)
		assert.False(t, diverges)
	})

	t.Run("should flag divergence without rejecting the lay", func(t *testing.T) {
		lay := buildLay(t, 30, 4, map[string]int{"S": 30, "M": 60, "L": 28})

		expected, diverges := lay.PieceCountDiverges()

		assert.Equal(t, 120, expected)
		assert.True(t, diverges)
		require.NoError(t, lay.Validate(), "divergence is a warning, the lay stays valid")
	})

	t.Run("should skip the check when the marker ratio is unknown", func(t *testing.T) {
		lay := buildLay(t, 30, 0, map[string]int{"S": 7})

		_, diverges := lay.PieceCountDiverges()
		assert.False(t, diverges)
	})
}

func TestNewBundle(t *testing.T) {
	t.Run("should create a bundle", func(t *testing.T) {
		b, err := cutting.NewBundle(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"M", 20, 3, "BDL-ORD1-LAY1-M-3-1756700000")

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.Equal(t, "M", b.SizeCode())
		assert.Equal(t, 20, b.Qty())
		assert.Equal(t, 3, b.BundleNo())
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := cutting.NewBundle(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "M", 20, 1, "")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})

	t.Run("should reject non-positive quantity and number", func(t *testing.T) {
		_, err := cutting.NewBundle(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "M", 0, 1, "BDL-X")
		require.Error(t, err)

		_, err = cutting.NewBundle(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), "M", 5, 0, "BDL-X")
		require.Error(t, err)
	})
}
