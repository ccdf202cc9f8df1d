package commands_test

import (
	"testing"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCancelOrderCommandHandler_Handle_UnpaidOrderSkipsRefund(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42, 7)
	require.NoError(t, err)

	unpaid := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(unpaid, nil).Twice()
	orderRepo.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p order.Patch) bool {
		return p.Status != nil && *p.Status == order.Cancelled &&
			p.PayStatus == nil &&
			p.CancelReason != nil && *p.CancelReason == order.CancelReasonUser &&
			p.CancelTime != nil
	})).Return(nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)

	h := commands.NewCancelOrderCommandHandler(factory, new(StubLocker), gateway)
	require.NoError(t, h.Handle(ctx, cmd))
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_PaidOrderRefundsFirst(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42, 7)
	require.NoError(t, err)

	paid := restoreTestOrder(t, 42, order.AwaitingConfirmation, order.Paid)

	orderRepo := new(MockOrderRepository)
	gateway := new(MockPaymentGateway)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, int64(42)).Return(paid, nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", mock.Anything, int64(42)).Return(paid, nil).Once(),
		gateway.On("Refund", mock.Anything, mock.MatchedBy(func(req ports.RefundRequest) bool {
			return req.OrderNumber == paid.Number() &&
				req.RefundAmount.IsEqual(mustMoney(t, "57.00")) &&
				req.RefundNumber == paid.Number()
		})).Return("SUCCESS", nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Update", mock.Anything, int64(42), mock.MatchedBy(func(p order.Patch) bool {
			return p.Status != nil && *p.Status == order.Cancelled &&
				p.PayStatus != nil && *p.PayStatus == order.Refunded
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(StubLocker), gateway)
	require.NoError(t, h.Handle(ctx, cmd))
	gateway.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelOrderCommandHandler_Handle_RefundFailureKeepsStatus(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42, 7)
	require.NoError(t, err)

	paid := restoreTestOrder(t, 42, order.AwaitingConfirmation, order.Paid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(paid, nil).Twice()

	gateway := new(MockPaymentGateway)
	gateway.On("Refund", mock.Anything, mock.Anything).
		Return("", ports.NewGatewayError("refund", "SYSTEM_ERROR", nil)).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(StubLocker), gateway)
	err = h.Handle(ctx, cmd)

	var gatewayErr *ports.GatewayError
	require.ErrorAs(t, err, &gatewayErr)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestCancelOrderCommandHandler_Handle_ConfirmedOrderConflicts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42, 7)
	require.NoError(t, err)

	confirmed := restoreTestOrder(t, 42, order.Confirmed, order.Paid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(confirmed, nil).Twice()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)

	h := commands.NewCancelOrderCommandHandler(factory, new(StubLocker), gateway)
	err = h.Handle(ctx, cmd)

	var conflict *order.StatusConflictError
	require.ErrorAs(t, err, &conflict)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelOrderCommandHandler_Handle_ForeignOrderReportsNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCancelOrderCommand(42, 99)
	require.NoError(t, err)

	otherUsers := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", mock.Anything, int64(42)).Return(otherUsers, nil).Once()

	uow := new(MockOrderUoW)
	uow.On("OrderRepository").Return(orderRepo).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelOrderCommandHandler(factory, new(StubLocker), new(MockPaymentGateway))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertNotCalled(t, "Begin", ctx)
}
