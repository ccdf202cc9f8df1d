package commands

import (
	"context"
	"fmt"

	"takeout/internal/core/ports"
)

// PayOrderCommandHandler requests a prepayment transaction from the payment
// gateway. It looks up the user's external-payment identity token and passes
// the gateway's prepay credentials back unmodified.
//
// The handler mutates nothing: the order stays in PendingPayment until the
// gateway's asynchronous success callback arrives (ConfirmPaymentCommand).
type PayOrderCommandHandler struct {
	uowFactory PaymentUoWFactory
	gateway    ports.PaymentGateway
}

// NewPayOrderCommandHandler creates a handler for prepayment requests.
func NewPayOrderCommandHandler(uowFactory PaymentUoWFactory, gateway ports.PaymentGateway) PayOrderCommandHandler {
	return PayOrderCommandHandler{uowFactory: uowFactory, gateway: gateway}
}

// Handle processes the prepayment request.
//
// Returns ports.ErrAlreadyPaid when the gateway reports the order as paid, and
// a *ports.GatewayError on gateway failure. Both leave all state untouched.
func (h *PayOrderCommandHandler) Handle(ctx context.Context, cmd PayOrderCommand) (*ports.PaymentIntent, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	aggregate, err := uow.OrderRepository().GetByNumberAndUser(ctx, cmd.OrderNumber(), cmd.UserID())
	if err != nil {
		return nil, err
	}

	payer, err := uow.ProfileRepository().Get(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}

	intent, err := h.gateway.Prepay(ctx, ports.PrepayRequest{
		OrderNumber: aggregate.Number(),
		Amount:      aggregate.Amount(),
		Description: fmt.Sprintf("takeout order %s", aggregate.Number()),
		PayerOpenID: payer.OpenID,
	})
	if err != nil {
		return nil, err
	}

	return intent, nil
}
