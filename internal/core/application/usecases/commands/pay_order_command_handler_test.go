package commands_test

import (
	"testing"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/domain/model/profile"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPayOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand("17230000000000001", 7)
	require.NoError(t, err)

	pending := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)
	payer := &profile.Profile{ID: 7, OpenID: "openid-7"}
	intent := &ports.PaymentIntent{NonceStr: "nonce", PaySign: "sig", TimeStamp: "1723000000"}

	orderRepo := new(MockOrderRepository)
	profileRepo := new(MockProfileRepository)
	gateway := new(MockPaymentGateway)
	uow := new(MockPaymentUoW)
	mock.InOrder(
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetByNumberAndUser", mock.Anything, "17230000000000001", int64(7)).
			Return(pending, nil).Once(),
		uow.On("ProfileRepository").Return(profileRepo).Once(),
		profileRepo.On("Get", mock.Anything, int64(7)).Return(payer, nil).Once(),
		gateway.On("Prepay", mock.Anything, mock.MatchedBy(func(req ports.PrepayRequest) bool {
			return req.OrderNumber == "17230000000000001" &&
				req.PayerOpenID == "openid-7" &&
				req.Amount.IsEqual(mustMoney(t, "57.00"))
		})).Return(intent, nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayOrderCommandHandler(factory, gateway)
	got, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, intent, got)
	orderRepo.AssertExpectations(t)
	profileRepo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPayOrderCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand("no-such-order", 7)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByNumberAndUser", mock.Anything, "no-such-order", int64(7)).
		Return(nil, errs.NewObjectNotFoundError("orderNumber", "no-such-order")).Once()

	uow := new(MockPaymentUoW)
	uow.On("OrderRepository").Return(orderRepo).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	gateway := new(MockPaymentGateway)

	h := commands.NewPayOrderCommandHandler(factory, gateway)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	gateway.AssertNotCalled(t, "Prepay", mock.Anything, mock.Anything)
}

func TestPayOrderCommandHandler_Handle_AlreadyPaid(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPayOrderCommand("17230000000000001", 7)
	require.NoError(t, err)

	pending := restoreTestOrder(t, 42, order.PendingPayment, order.Unpaid)
	payer := &profile.Profile{ID: 7, OpenID: "openid-7"}

	orderRepo := new(MockOrderRepository)
	orderRepo.On("GetByNumberAndUser", mock.Anything, "17230000000000001", int64(7)).
		Return(pending, nil).Once()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("Get", mock.Anything, int64(7)).Return(payer, nil).Once()

	gateway := new(MockPaymentGateway)
	gateway.On("Prepay", mock.Anything, mock.Anything).
		Return(nil, ports.ErrAlreadyPaid).Once()

	uow := new(MockPaymentUoW)
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("ProfileRepository").Return(profileRepo).Once()

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPayOrderCommandHandler(factory, gateway)
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, ports.ErrAlreadyPaid)
}

func TestPayOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(MockPaymentUoWFactory)
	gateway := new(MockPaymentGateway)
	h := commands.NewPayOrderCommandHandler(factory, gateway)
	_, err := h.Handle(ctx, commands.PayOrderCommand{})
	require.Error(t, err)
}
