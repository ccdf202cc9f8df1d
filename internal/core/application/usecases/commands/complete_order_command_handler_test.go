package commands_test

import (
	"testing"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCompleteOrderCommand(42)
	require.NoError(t, err)

	outForDelivery := restoreTestOrder(t, 42, order.OutForDelivery, order.Paid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(outForDelivery, nil).Once()
	orderRepo.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p order.Patch) bool {
		return p.Status != nil && *p.Status == order.Completed &&
			p.DeliveryTime != nil
	})).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory, new(StubLocker))
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_WrongStatusConflicts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCompleteOrderCommand(42)
	require.NoError(t, err)

	completed := restoreTestOrder(t, 42, order.Completed, order.Paid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(completed, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory, new(StubLocker))
	err = h.Handle(ctx, cmd)

	var conflict *order.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
