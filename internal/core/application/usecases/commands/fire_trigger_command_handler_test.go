package commands_test

import (
	"testing"

	"purchasing/internal/core/application/usecases/commands"
	"purchasing/internal/core/domain/model/kernel"
	"purchasing/internal/core/domain/model/order"
	"purchasing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewFireTriggerCommand(t *testing.T) {
	t.Run("should accept confirm and cancel", func(t *testing.T) {
		for _, trigger := range []order.Trigger{order.TriggerConfirm, order.TriggerCancel} {
			cmd, err := commands.NewFireTriggerCommand(kernel.NewUUID(), trigger)
			require.NoError(t, err)
			assert.Equal(t, trigger, cmd.Trigger())
		}
	})

	t.Run("should join id and trigger violations", func(t *testing.T) {
		_, err := commands.NewFireTriggerCommand(kernel.UUID{}, order.TriggerUnknown)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func fireTriggerFixture(t *testing.T, o order.Lifecycle, commit bool) (*MockOrderUoW, *MockOrderUoWFactory) {
	t.Helper()
	ctx := t.Context()

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	if commit {
		uow.On("Commit", ctx).Return(nil).Once()
	}
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()
	return uow, factory
}

func TestFireTriggerCommandHandler_Handle(t *testing.T) {
	t.Run("should confirm a paid order", func(t *testing.T) {
		o := newLifecycle(order.EngineTable, order.Pending)
		o.Pay()
		uow, factory := fireTriggerFixture(t, o, true)

		cmd, _ := commands.NewFireTriggerCommand(o.ID(), order.TriggerConfirm)
		h := commands.NewFireTriggerCommandHandler(factory)
		require.NoError(t, h.Handle(t.Context(), cmd))
		assert.Equal(t, order.Processing, o.Status())
		uow.AssertExpectations(t)
	})

	t.Run("should surface an invalid transition without committing", func(t *testing.T) {
		o := newLifecycle(order.EngineConditional, order.Completed)
		uow, factory := fireTriggerFixture(t, o, false)

		cmd, _ := commands.NewFireTriggerCommand(o.ID(), order.TriggerCancel)
		h := commands.NewFireTriggerCommandHandler(factory)
		err := h.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Completed, o.Status())
		uow.AssertExpectations(t)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject a zero value command", func(t *testing.T) {
		factory := new(MockOrderUoWFactory)
		h := commands.NewFireTriggerCommandHandler(factory)
		err := h.Handle(t.Context(), commands.FireTriggerCommand{})
		require.ErrorIs(t, err, commands.ErrFireTriggerCommandIsNotConstructed)
	})
}
