package commands_test

import (
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelTimedOutOrdersCommandHandler_Handle_CancelsStaleOrders(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelTimedOutOrdersCommand(15 * time.Minute)
	require.NoError(t, err)

	first := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)
	second := restoreTestOrder(t, 43, order.PendingPayment, order.Unpaid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ListOutstanding", mock.Anything, order.PendingPayment, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{first, second}, nil).Once()
	orderRepo.On("Get", mock.Anything, int64(42)).Return(first, nil).Once()
	orderRepo.On("Get", mock.Anything, int64(43)).Return(second, nil).Once()
	orderRepo.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p order.Patch) bool {
		return p.Status != nil && *p.Status == order.Cancelled &&
			p.CancelReason != nil && *p.CancelReason == order.CancelReasonPaymentTimeout
	})).Return(nil).Once()
	orderRepo.On("Update", mock.Anything, int64(43), mock.Anything).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Twice()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	locker := new(StubLocker)
	h := commands.NewCancelTimedOutOrdersCommandHandler(factory, locker, discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	require.Equal(t, []int64{42, 43}, locker.lockedIDs)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelTimedOutOrdersCommandHandler_Handle_SkipsRacedPayment(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelTimedOutOrdersCommand(15 * time.Minute)
	require.NoError(t, err)

	// Listed as pending, but a payment callback won the race before the sweep
	// took the lock.
	listed := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)
	nowPaid := restoreTestOrder(t, 42, order.AwaitingConfirmation, order.Paid)
	stillStale := restoreTestOrder(t, 43, order.PendingPayment, order.Unpaid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("ListOutstanding", mock.Anything, order.PendingPayment, mock.AnythingOfType("time.Time")).
		Return([]*order.Order{listed, stillStale}, nil).Once()
	orderRepo.On("Get", mock.Anything, int64(42)).Return(nowPaid, nil).Once()
	orderRepo.On("Get", mock.Anything, int64(43)).Return(stillStale, nil).Once()
	orderRepo.On("Update", mock.Anything, int64(43), mock.Anything).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Twice()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)

	h := commands.NewCancelTimedOutOrdersCommandHandler(factory, new(StubLocker), discardLogger())
	require.NoError(t, h.Handle(ctx, cmd))
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, int64(42), mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestNewCancelTimedOutOrdersCommand_InvalidTimeout(t *testing.T) {
	_, err := commands.NewCancelTimedOutOrdersCommand(0)
	require.Error(t, err)
}
