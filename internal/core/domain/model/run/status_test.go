package run_test

import (
	"fmt"
	"testing"

	"production/internal/core/domain/model/run"
	"production/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(run.UnknownStatus))
		assert.Equal(t, 1, int(run.Created))
		assert.Equal(t, 2, int(run.InProgress))
		assert.Equal(t, 3, int(run.Paused))
		assert.Equal(t, 4, int(run.Done))
		assert.Equal(t, 5, int(run.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []run.Status{
			run.Created,
			run.InProgress,
			run.Paused,
			run.Done,
			run.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject invalid status values", func(t *testing.T) {
		invalidStatuses := []run.Status{
			run.UnknownStatus,
			run.Status(-1),
			run.Status(6),
			run.Status(100),
		}

		for _, status := range invalidStatuses {
			t.Run(fmt.Sprintf("should reject status value %d", int(status)), func(t *testing.T) {
				err := status.Validate()

				require.Error(t, err)
				assert.IsType(t, &errs.ValueIsInvalidError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
			})
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("should return wire-format names", func(t *testing.T) {
		testCases := []struct {
			status   run.Status
			expected string
		}{
			{run.Created, "CREATED"},
			{run.InProgress, "IN_PROGRESS"},
			{run.Paused, "PAUSED"},
			{run.Done, "DONE"},
			{run.Cancelled, "CANCELLED"},
		}

		for _, tc := range testCases {
			assert.Equal(t, tc.expected, tc.status.String())
		}
	})

	t.Run("should return UNKNOWN for invalid statuses", func(t *testing.T) {
		assert.Equal(t, "UNKNOWN", run.UnknownStatus.String())
		assert.Equal(t, "UNKNOWN", run.Status(-1).String())
		assert.Equal(t, "UNKNOWN", run.Status(42).String())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should mark Done and Cancelled terminal", func(t *testing.T) {
		assert.True(t, run.Done.IsTerminal())
		assert.True(t, run.Cancelled.IsTerminal())
	})

	t.Run("should mark active statuses non-terminal", func(t *testing.T) {
		assert.False(t, run.Created.IsTerminal())
		assert.False(t, run.InProgress.IsTerminal())
		assert.False(t, run.Paused.IsTerminal())
	})
}

func TestStatus_Start(t *testing.T) {
	t.Run("should allow transition from Created to InProgress", func(t *testing.T) {
		newStatus, err := run.Created.Start()

		require.NoError(t, err)
		assert.Equal(t, run.InProgress, newStatus)
	})

	t.Run("should allow transition from Paused to InProgress (resume)", func(t *testing.T) {
		newStatus, err := run.Paused.Start()

		require.NoError(t, err)
		assert.Equal(t, run.InProgress, newStatus)
	})

	t.Run("should reject starting from other statuses", func(t *testing.T) {
		for _, status := range []run.Status{run.InProgress, run.Done, run.Cancelled, run.UnknownStatus} {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				newStatus, err := status.Start()

				require.Error(t, err)
				assert.Equal(t, run.Status(0), newStatus)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
				assert.Contains(t, err.Error(), fmt.Sprintf("cannot go from %s to IN_PROGRESS", status.String()))
			})
		}
	})
}

func TestStatus_Pause(t *testing.T) {
	t.Run("should allow transition from InProgress to Paused", func(t *testing.T) {
		newStatus, err := run.InProgress.Pause()

		require.NoError(t, err)
		assert.Equal(t, run.Paused, newStatus)
	})

	t.Run("should reject pausing from other statuses", func(t *testing.T) {
		for _, status := range []run.Status{run.Created, run.Paused, run.Done, run.Cancelled} {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				_, err := status.Pause()

				require.Error(t, err)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
			})
		}
	})
}

func TestStatus_Complete(t *testing.T) {
	t.Run("should allow transition from InProgress to Done", func(t *testing.T) {
		newStatus, err := run.InProgress.Complete()

		require.NoError(t, err)
		assert.Equal(t, run.Done, newStatus)
	})

	t.Run("should reject completing a paused run without resuming", func(t *testing.T) {
		_, err := run.Paused.Complete()

		require.Error(t, err)
		assert.IsType(t, &errs.InvalidTransitionError{}, err)
		assert.Contains(t, err.Error(), "cannot go from PAUSED to DONE")
	})

	t.Run("should reject completing from other statuses", func(t *testing.T) {
		for _, status := range []run.Status{run.Created, run.Done, run.Cancelled} {
			_, err := status.Complete()
			require.Error(t, err)
		}
	})
}

func TestStatus_Cancel(t *testing.T) {
	t.Run("should allow cancelling any non-terminal status", func(t *testing.T) {
		for _, status := range []run.Status{run.Created, run.InProgress, run.Paused} {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				newStatus, err := status.Cancel()

				require.NoError(t, err)
				assert.Equal(t, run.Cancelled, newStatus)
			})
		}
	})

	t.Run("should reject cancelling terminal statuses", func(t *testing.T) {
		for _, status := range []run.Status{run.Done, run.Cancelled} {
			t.Run(fmt.Sprintf("from %s", status.String()), func(t *testing.T) {
				_, err := status.Cancel()

				require.Error(t, err)
				assert.IsType(t, &errs.InvalidTransitionError{}, err)
			})
		}
	})
}

func TestStatus_StateMachine(t *testing.T) {
	t.Run("should follow the full pause and resume workflow", func(t *testing.T) {
		status := run.Created

		status, err := status.Start()
		require.NoError(t, err)
		assert.Equal(t, run.InProgress, status)

		status, err = status.Pause()
		require.NoError(t, err)
		assert.Equal(t, run.Paused, status)

		status, err = status.Start()
		require.NoError(t, err)
		assert.Equal(t, run.InProgress, status)

		status, err = status.Complete()
		require.NoError(t, err)
		assert.Equal(t, run.Done, status)
	})

	t.Run("should keep terminal statuses final", func(t *testing.T) {
		for _, terminal := range []run.Status{run.Done, run.Cancelled} {
			_, err := terminal.Start()
			require.Error(t, err)
			_, err = terminal.Pause()
			require.Error(t, err)
			_, err = terminal.Complete()
			require.Error(t, err)
			_, err = terminal.Cancel()
			require.Error(t, err)
		}
	})
}
