package queries_test

import (
	"testing"
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReconcileRunQuery_Valid(t *testing.T) {
	query, err := queries.NewReconcileRunQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestNewReconcileRunQuery_EmptyID(t *testing.T) {
	_, err := queries.NewReconcileRunQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestReconcileRunQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ReconcileRunQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrReconcileRunQueryIsNotConstructed)
}

func TestNewGetRunDetailsQuery_Valid(t *testing.T) {
	query, err := queries.NewGetRunDetailsQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestGetRunDetailsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetRunDetailsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetRunDetailsQueryIsNotConstructed)
}

func TestNewListMachinesQuery_Valid(t *testing.T) {
	query, err := queries.NewListMachinesQuery(kernel.NewUUID())
	require.NoError(t, err)
	require.NoError(t, query.Validate())
}

func TestListMachinesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListMachinesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListMachinesQueryIsNotConstructed)
}

func TestNewListStaleRunsQuery_Valid(t *testing.T) {
	query, err := queries.NewListStaleRunsQuery(4 * time.Hour)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, 4*time.Hour, query.OlderThan())
}

func TestNewListStaleRunsQuery_NonPositiveThreshold(t *testing.T) {
	_, err := queries.NewListStaleRunsQuery(0)
	require.Error(t, err)

	_, err = queries.NewListStaleRunsQuery(-time.Minute)
	require.Error(t, err)
}

func TestListStaleRunsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListStaleRunsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListStaleRunsQueryIsNotConstructed)
}
