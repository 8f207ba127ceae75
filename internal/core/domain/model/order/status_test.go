package order_test

import (
	"fmt"
	"testing"

	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Processing))
		assert.Equal(t, 3, int(order.Completed))
		assert.Equal(t, 4, int(order.Canceled))
	})

	t.Run("should list valid statuses in lifecycle order", func(t *testing.T) {
		assert.Equal(t,
			[]order.Status{order.Pending, order.Processing, order.Completed, order.Canceled},
			order.Statuses())
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, status := range order.Statuses() {
		t.Run(fmt.Sprintf("should validate %s status", status), func(t *testing.T) {
			require.NoError(t, status.Validate())
		})
	}

	t.Run("should reject invalid status values", func(t *testing.T) {
		for _, status := range []order.Status{order.Unknown, order.Status(-1), order.Status(5), order.Status(100)} {
			err := status.Validate()

			require.Error(t, err)
			assert.IsType(t, &errs.ValueIsInvalidError{}, err)
			assert.Contains(t, err.Error(), "status is invalid")
			assert.Contains(t, err.Error(), fmt.Sprintf("%d is not a valid status", int(status)))
		}
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Pending", order.Pending.String())
	assert.Equal(t, "Processing", order.Processing.String())
	assert.Equal(t, "Completed", order.Completed.String())
	assert.Equal(t, "Canceled", order.Canceled.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, order.Pending.IsTerminal())
	assert.False(t, order.Processing.IsTerminal())
	assert.True(t, order.Completed.IsTerminal())
	assert.True(t, order.Canceled.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse names case-insensitively", func(t *testing.T) {
		for input, expected := range map[string]order.Status{
			"pending":    order.Pending,
			"PROCESSING": order.Processing,
			" Completed ": order.Completed,
			"canceled":   order.Canceled,
			"Cancelled":  order.Canceled,
		} {
			status, err := order.ParseStatus(input)

			require.NoError(t, err, input)
			assert.Equal(t, expected, status, input)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		for _, input := range []string{"", "Unknown", "shipped"} {
			_, err := order.ParseStatus(input)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid, input)
		}
	})
}

func TestParseTrigger(t *testing.T) {
	trigger, err := order.ParseTrigger("confirm")
	require.NoError(t, err)
	assert.Equal(t, order.TriggerConfirm, trigger)

	trigger, err = order.ParseTrigger("CANCEL")
	require.NoError(t, err)
	assert.Equal(t, order.TriggerCancel, trigger)

	_, err = order.ParseTrigger("pay")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseEngine(t *testing.T) {
	engine, err := order.ParseEngine("Table")
	require.NoError(t, err)
	assert.Equal(t, order.EngineTable, engine)

	engine, err = order.ParseEngine("conditional")
	require.NoError(t, err)
	assert.Equal(t, order.EngineConditional, engine)

	_, err = order.ParseEngine("stateless")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, order.EngineUnknown.Validate())
}
