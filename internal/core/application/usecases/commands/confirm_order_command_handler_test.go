package commands_test

import (
	"testing"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConfirmOrderCommand(42)
	require.NoError(t, err)

	awaiting := restoreTestOrder(t, 42, order.AwaitingConfirmation, order.Paid)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, int64(42)).Return(awaiting, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p order.Patch) bool {
			return p.Status != nil && *p.Status == order.Confirmed
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	locker := new(StubLocker)
	h := commands.NewConfirmOrderCommandHandler(factory, locker)
	require.NoError(t, h.Handle(ctx, cmd))
	assert.Equal(t, []int64{42}, locker.lockedIDs)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_WrongStatusConflicts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewConfirmOrderCommand(42)
	require.NoError(t, err)

	pending := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(pending, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, new(StubLocker))
	err = h.Handle(ctx, cmd)

	var conflict *order.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestNewConfirmOrderCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewConfirmOrderCommand(0)
	require.Error(t, err)
}
