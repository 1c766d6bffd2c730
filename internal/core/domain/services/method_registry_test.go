package services_test

import (
	"testing"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/run"
	"production/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRun(t *testing.T, stage order.Stage, method run.Method) *run.Run {
	t.Helper()

	machineID := kernel.NewUUID()
	r, err := run.NewRun(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		stage, method, &machineID, nil, 100)
	require.NoError(t, err)
	return r
}

func TestMethodRegistry_Initialize(t *testing.T) {
	registry := services.NewMethodRegistry()

	t.Run("should attach the default variant for a print run", func(t *testing.T) {
		r := buildRun(t, order.Printing, run.DTF)

		require.NoError(t, registry.Initialize(r))

		record := r.MethodRecord()
		require.NotNil(t, record)
		assert.Equal(t, run.DTF, record.Method())
		assert.IsType(t, run.DTFPayload{}, record.Payload())
	})

	t.Run("should be idempotent", func(t *testing.T) {
		r := buildRun(t, order.Printing, run.Silkscreen)

		require.NoError(t, registry.Initialize(r))
		first := r.MethodRecord()

		require.NoError(t, registry.Initialize(r))

		assert.Same(t, first, r.MethodRecord(), "second call must keep the existing record")
	})

	t.Run("should be a no-op for runs without a method", func(t *testing.T) {
		r := buildRun(t, order.Sewing, run.NoMethod)

		require.NoError(t, registry.Initialize(r))
		assert.Nil(t, r.MethodRecord())
	})

	t.Run("should reject an unconstructed run", func(t *testing.T) {
		err := registry.Initialize(nil)
		assert.ErrorIs(t, err, run.ErrRunIsNotConstructed)
	})
}

func TestMethodRegistry_AppendLog(t *testing.T) {
	registry := services.NewMethodRegistry()

	t.Run("should append to the run's record", func(t *testing.T) {
		r := buildRun(t, order.Printing, run.DTF)
		require.NoError(t, registry.Initialize(r))

		entry, err := run.NewProcessLogEntry(
			kernel.NewUUID(), run.LogPowderCure, decimal.NewFromInt(120), 90, "", time.Now())
		require.NoError(t, err)

		require.NoError(t, registry.AppendLog(r, entry))
		require.Len(t, r.MethodRecord().Logs(), 1)
		assert.Equal(t, run.LogPowderCure, r.MethodRecord().Logs()[0].Kind())
	})

	t.Run("should reject a run without a record", func(t *testing.T) {
		r := buildRun(t, order.Sewing, run.NoMethod)

		entry, err := run.NewProcessLogEntry(
			kernel.NewUUID(), run.LogCuring, decimal.NewFromInt(160), 40, "", time.Now())
		require.NoError(t, err)

		err = registry.AppendLog(r, entry)
		assert.ErrorIs(t, err, run.ErrRunHasNoMethodRecord)
	})
}

func TestMethodRegistry_Details(t *testing.T) {
	registry := services.NewMethodRegistry()

	t.Run("should merge base fields, yield and record", func(t *testing.T) {
		r := buildRun(t, order.Printing, run.Embroidery)
		require.NoError(t, registry.Initialize(r))
		require.NoError(t, r.Start(time.Now()))

		output, err := run.NewOutput(kernel.NewUUID(), nil, 40, 2, "", time.Now())
		require.NoError(t, err)
		require.NoError(t, r.RecordOutput(output))

		details, err := registry.Details(r)

		require.NoError(t, err)
		assert.Same(t, r, details.Run)
		assert.Equal(t, 40, details.Reconciliation.TotalGood)
		assert.Equal(t, 2, details.Reconciliation.TotalReject)
		require.NotNil(t, details.Record)
		assert.Equal(t, run.Embroidery, details.Record.Method())
	})

	t.Run("should leave the record empty for non-print runs", func(t *testing.T) {
		r := buildRun(t, order.Cutting, run.NoMethod)

		details, err := registry.Details(r)

		require.NoError(t, err)
		assert.Nil(t, details.Record)
		assert.Empty(t, details.ProcessLog)
	})
}
