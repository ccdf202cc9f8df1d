package ports

import (
	"context"
	"errors"
	"fmt"

	"takeout/internal/core/domain/model/kernel"
)

// ErrAlreadyPaid is returned by Prepay when the gateway reports that the order
// has already been paid. No further mutation happens in that case.
var ErrAlreadyPaid = errors.New("order is already paid")

// GatewayError indicates the payment or refund call failed or returned an
// unexpected shape. It is fatal to the operation in progress: no partial
// status update is written and the core does not retry.
type GatewayError struct {
	Op    string
	Code  string
	Cause error
}

// NewGatewayError creates a GatewayError for the given gateway operation.
func NewGatewayError(op, code string, cause error) *GatewayError {
	return &GatewayError{Op: op, Code: code, Cause: cause}
}

func (e *GatewayError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("payment gateway %s failed: code %q (cause: %s)", e.Op, e.Code, e.Cause)
	}
	return fmt.Sprintf("payment gateway %s failed: code %q", e.Op, e.Code)
}

func (e *GatewayError) Unwrap() error {
	return e.Cause
}

// PrepayRequest asks the gateway for a prepayment transaction.
type PrepayRequest struct {
	OrderNumber string
	Amount      kernel.Money
	Description string
	PayerOpenID string
}

// PaymentIntent is the client-consumable prepay credential returned by the
// gateway, passed through unmodified apart from the extracted package string.
type PaymentIntent struct {
	NonceStr   string `json:"nonceStr"`
	PaySign    string `json:"paySign"`
	TimeStamp  string `json:"timeStamp"`
	SignType   string `json:"signType"`
	PackageStr string `json:"packageStr"`
}

// RefundRequest asks the gateway to return a prepayment.
type RefundRequest struct {
	OrderNumber  string
	RefundNumber string
	RefundAmount kernel.Money
	TotalAmount  kernel.Money
}

// PaymentGateway is the thin adapter contract to the external prepayment and
// refund service. Calls are blocking and should be bounded with a timeout by
// the implementation; gateway latency dominates request latency.
type PaymentGateway interface {
	// Prepay requests a prepayment transaction. Returns ErrAlreadyPaid if the
	// gateway reports the order as paid, or a *GatewayError on failure.
	Prepay(ctx context.Context, req PrepayRequest) (*PaymentIntent, error)

	// Refund returns a prepayment. The returned string is the gateway's
	// success/failure text; a *GatewayError reports transport or shape failures.
	Refund(ctx context.Context, req RefundRequest) (string, error)
}
