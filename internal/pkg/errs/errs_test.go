package errs_test

import (
	"errors"
	"testing"

	"butler/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("waypoint", "table9")

		assert.Equal(t, "waypoint", err.ParamName)
		assert.Equal(t, "table9", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: table9", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("registry not loaded")
		err := errs.NewObjectNotFoundErrorWithCause("table", "7", cause)

		assert.Equal(t, "table", err.ParamName)
		assert.Equal(t, "7", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: table, ID is: 7 (cause: registry not loaded)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("non-string IDs are formatted as values", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("table", 12)
		assert.Equal(t, "object not found: %!s(int=12)", err.Error())
	})

	t.Run("operator input stays on one line", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("waypoint", "table1\ntable2")
		assert.Equal(t, "object not found: table1 table2", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("name")

		assert.Equal(t, "name", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: name", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("not a number")
		err := errs.NewValueIsInvalidErrorWithCause("x", cause)

		assert.Equal(t, "x", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: x (cause: not a number)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("w", 1.5, -1.0, 1.0)

		assert.Equal(t, "w", err.ParamName)
		assert.Equal(t, 1.5, err.Value)
		assert.Equal(t, -1.0, err.Min)
		assert.Equal(t, 1.0, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 1.5 is w, min value is -1, max value is 1", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("heading not normalized")
		err := errs.NewValueIsOutOfRangeErrorWithCause("w", -2, -1, 1, cause)

		assert.Equal(t, "w", err.ParamName)
		assert.Equal(t, -2, err.Value)
		assert.Equal(t, -1, err.Min)
		assert.Equal(t, 1, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -2 is w, min value is -1, max value is 1 (cause: heading not normalized)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("string values stay on one line", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("table", "4\r\n5", 1, 3)
		assert.Contains(t, err.Error(), "4 5")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("waypoints")

		assert.Equal(t, "waypoints", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: waypoints", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("kitchen missing from file")
		err := errs.NewValueIsRequiredErrorWithCause("kitchen", cause)

		assert.Equal(t, "kitchen", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: kitchen (cause: kitchen missing from file)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"object not found", errs.NewObjectNotFoundError("waypoint", "table9"), errs.ErrObjectNotFound},
		{"value is invalid", errs.NewValueIsInvalidError("name"), errs.ErrValueIsInvalid},
		{"value is out of range", errs.NewValueIsOutOfRangeError("w", 2.0, -1.0, 1.0), errs.ErrValueIsOutOfRange},
		{"value is required", errs.NewValueIsRequiredError("kitchen"), errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
		})
	}
}
