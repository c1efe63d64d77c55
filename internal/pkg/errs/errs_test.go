package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"logistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", "123")

		assert.Equal(t, "order", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: order with id 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("redis: connection refused")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: order with id 123 (cause: redis: connection refused)",
			err.Error())
	})

	t.Run("non string ids are rendered with %v", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order with id 456", err.Error())
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
		cause := errors.New("must not be blank")
		err := errs.NewValueIsInvalidErrorWithCause("name", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: name (cause: must not be blank)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("bounded range", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		assert.Equal(t, "value is out of range: age is 150, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("range without upper bound", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 0, 1, nil)

		assert.Equal(t, "value is out of range: quantity is 0, min value is 1", err.Error())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is out of range: score is -5, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("newlines are flattened", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("items")

		assert.Equal(t, "items", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: items", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("order must include at least 1 item")
		err := errs.NewValueIsRequiredErrorWithCause("items", cause)

		assert.Equal(t, "value is required: items (cause: order must include at least 1 item)", err.Error())
	})
}

func TestStateTransitionIsInvalidError(t *testing.T) {
	err := errs.NewStateTransitionIsInvalidError("order", "approve", "CANCELLED")

	assert.Equal(t, "order", err.Entity)
	assert.Equal(t, "approve", err.Action)
	assert.Equal(t, "CANCELLED", err.Current)
	assert.Equal(t, "state transition is invalid: cannot approve order in CANCELLED status", err.Error())
	assert.Equal(t, errs.ErrStateTransitionIsInvalid, err.Unwrap())
}

func TestIsInvalidArgument(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"required", errs.NewValueIsRequiredError("items"), true},
		{"invalid", errs.NewValueIsInvalidError("name"), true},
		{"out of range", errs.NewValueIsOutOfRangeError("quantity", 0, 1, nil), true},
		{"joined", errors.Join(errors.New("other"), errs.NewValueIsInvalidError("name")), true},
		{"wrapped", fmt.Errorf("place order: %w", errs.NewValueIsRequiredError("items")), true},
		{"not found", errs.NewObjectNotFoundError("order", "1"), false},
		{"transition", errs.NewStateTransitionIsInvalidError("order", "cancel", "APPROVED"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.IsInvalidArgument(tt.err))
		})
	}
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("order", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("name"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("quantity", 0, 1, nil), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("items"), errs.ErrValueIsRequired)
	require.ErrorIs(t, errs.NewStateTransitionIsInvalidError("order", "approve", "APPROVED"), errs.ErrStateTransitionIsInvalid)

	var transitionErr *errs.StateTransitionIsInvalidError
	wrapped := fmt.Errorf("approve: %w", errs.NewStateTransitionIsInvalidError("order", "approve", "APPROVED"))
	require.ErrorAs(t, wrapped, &transitionErr)
	assert.Equal(t, "APPROVED", transitionErr.Current)
}
