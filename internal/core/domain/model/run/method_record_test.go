package run_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodFromString(t *testing.T) {
	t.Run("should parse wire-format names", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected run.Method
		}{
			{"", run.NoMethod},
			{"SILKSCREEN", run.Silkscreen},
			{"SUBLIMATION", run.Sublimation},
			{"DTF", run.DTF},
			{"EMBROIDERY", run.Embroidery},
		}

		for _, tc := range testCases {
			method, err := run.MethodFromString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, method)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := run.MethodFromString("LASER")

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), `"LASER" is not a valid method`)
	})
}

func TestMethod_ValidForStage(t *testing.T) {
	t.Run("should require a print method on printing runs", func(t *testing.T) {
		for _, method := range []run.Method{run.Silkscreen, run.Sublimation, run.DTF, run.Embroidery} {
			require.NoError(t, method.ValidForStage(order.Printing))
		}

		err := run.NoMethod.ValidForStage(order.Printing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "printing runs require a print method")
	})

	t.Run("should forbid a method on non-printing runs", func(t *testing.T) {
		require.NoError(t, run.NoMethod.ValidForStage(order.Sewing))

		err := run.Silkscreen.ValidForStage(order.Cutting)
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestNewMethodRecord(t *testing.T) {
	t.Run("should construct the matching payload variant per method", func(t *testing.T) {
		testCases := []struct {
			method  run.Method
			payload run.MethodPayload
		}{
			{run.Silkscreen, run.SilkscreenPayload{}},
			{run.Sublimation, run.SublimationPayload{PaperM2: decimal.Zero, InkG: decimal.Zero}},
			{run.DTF, run.DTFPayload{FilmM2: decimal.Zero, PowderG: decimal.Zero, TempC: decimal.Zero}},
			{run.Embroidery, run.EmbroideryPayload{}},
		}

		for _, tc := range testCases {
			t.Run(tc.method.String(), func(t *testing.T) {
				record, err := run.NewMethodRecord(kernel.NewUUID(), tc.method)

				require.NoError(t, err)
				require.NoError(t, record.Validate())
				assert.Equal(t, tc.method, record.Method())
				assert.IsType(t, tc.payload, record.Payload())
				assert.Empty(t, record.Logs())
			})
		}
	})

	t.Run("should reject methods without a record", func(t *testing.T) {
		record, err := run.NewMethodRecord(kernel.NewUUID(), run.NoMethod)

		require.ErrorIs(t, err, run.ErrNoRecordForMethod)
		assert.Nil(t, record)
	})

	t.Run("should reject empty id", func(t *testing.T) {
		_, err := run.NewMethodRecord(kernel.UUID{}, run.DTF)
		require.Error(t, err)
	})
}

func TestMethodRecord_UpdatePayload(t *testing.T) {
	t.Run("should replace attributes of the same method", func(t *testing.T) {
		record, err := run.NewMethodRecord(kernel.NewUUID(), run.Silkscreen)
		require.NoError(t, err)

		err = record.UpdatePayload(run.SilkscreenPayload{
			MeshCount:       120,
			EmulsionBatch:   "EM-2209",
			ExposureSeconds: 45,
			InkType:         "plastisol",
			SqueegeeSize:    "70A",
		})

		require.NoError(t, err)
		payload, ok := record.Payload().(run.SilkscreenPayload)
		require.True(t, ok)
		assert.Equal(t, 120, payload.MeshCount)
		assert.Equal(t, "EM-2209", payload.EmulsionBatch)
	})

	t.Run("should reject a payload of another method", func(t *testing.T) {
		record, err := run.NewMethodRecord(kernel.NewUUID(), run.Sublimation)
		require.NoError(t, err)

		err = record.UpdatePayload(run.DTFPayload{})

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "record method is SUBLIMATION, payload is DTF")
	})

	t.Run("should reject nil payload", func(t *testing.T) {
		record, err := run.NewMethodRecord(kernel.NewUUID(), run.DTF)
		require.NoError(t, err)

		err = record.UpdatePayload(nil)
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsRequiredError{}, err)
	})
}

func TestNewProcessLogEntry(t *testing.T) {
	now := time.Now()

	t.Run("should create valid entries for each kind", func(t *testing.T) {
		for _, kind := range []string{run.LogCuring, run.LogHeatPress, run.LogPowderCure} {
			entry, err := run.NewProcessLogEntry(
				kernel.NewUUID(), kind, decimal.NewFromInt(160), 45, "batch 3", now)

			require.NoError(t, err)
			assert.Equal(t, kind, entry.Kind())
			assert.Equal(t, 45, entry.DurationSeconds())
			assert.True(t, entry.TempC().Equal(decimal.NewFromInt(160)))
		}
	})

	t.Run("should reject unknown kinds", func(t *testing.T) {
		_, err := run.NewProcessLogEntry(
			kernel.NewUUID(), "DRYING", decimal.NewFromInt(100), 30, "", now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"DRYING" is not a valid process log kind`)
	})

	t.Run("should reject non-positive duration", func(t *testing.T) {
		_, err := run.NewProcessLogEntry(
			kernel.NewUUID(), run.LogCuring, decimal.NewFromInt(100), 0, "", now)

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestMethodRecord_AppendLog(t *testing.T) {
	t.Run("should keep entries in insertion order", func(t *testing.T) {
		record, err := run.NewMethodRecord(kernel.NewUUID(), run.DTF)
		require.NoError(t, err)

		first, err := run.NewProcessLogEntry(
			kernel.NewUUID(), run.LogPowderCure, decimal.NewFromInt(120), 90, "", time.Now())
		require.NoError(t, err)
		second, err := run.NewProcessLogEntry(
			kernel.NewUUID(), run.LogHeatPress, decimal.NewFromInt(155), 15, "", time.Now())
		require.NoError(t, err)

		record.AppendLog(first)
		record.AppendLog(second)

		logs := record.Logs()
		require.Len(t, logs, 2)
		assert.Equal(t, run.LogPowderCure, logs[0].Kind())
		assert.Equal(t, run.LogHeatPress, logs[1].Kind())
	})
}

func TestMethodRecord_Validate(t *testing.T) {
	t.Run("should reject a record created without constructor", func(t *testing.T) {
		var record run.MethodRecord

		err := record.Validate()
		assert.ErrorIs(t, err, run.ErrMethodRecordIsNotConstructed)
	})

	t.Run("should reject nil record", func(t *testing.T) {
		var record *run.MethodRecord

		err := record.Validate()
		assert.ErrorIs(t, err, run.ErrMethodRecordIsNotConstructed)
	})
}
