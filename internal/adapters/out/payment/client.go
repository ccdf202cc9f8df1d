// Package payment implements the payment gateway port over HTTP. The gateway
// is an external prepayment/refund service; this client posts JSON and maps
// the gateway's response codes onto the port's error taxonomy.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"takeout/internal/core/ports"
)

const requestTimeout = 5 * time.Second

// Gateway response codes.
const (
	codeSuccess   = "SUCCESS"
	codeOrderPaid = "ORDERPAID"
)

// Client implements ports.PaymentGateway against an HTTP gateway endpoint.
type Client struct {
	httpClient *http.Client
	prepayURL  string
	refundURL  string
}

// NewClient creates a gateway client for the given prepay and refund
// endpoints. Requests are bounded by a 5 second timeout on top of any
// caller-supplied context deadline.
func NewClient(prepayURL, refundURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		prepayURL:  prepayURL,
		refundURL:  refundURL,
	}
}

type prepayRequestBody struct {
	OrderNumber string `json:"orderNumber"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
	OpenID      string `json:"openid"`
}

type prepayResponseBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	ports.PaymentIntent
}

// Prepay requests a prepayment transaction. The gateway's "ORDERPAID" code
// maps to ports.ErrAlreadyPaid; any other non-success outcome is reported as
// a *ports.GatewayError.
func (c *Client) Prepay(ctx context.Context, req ports.PrepayRequest) (*ports.PaymentIntent, error) {
	body := prepayRequestBody{
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount.String(),
		Description: req.Description,
		OpenID:      req.PayerOpenID,
	}

	var resp prepayResponseBody
	if err := c.post(ctx, "prepay", c.prepayURL, body, &resp); err != nil {
		return nil, err
	}

	switch resp.Code {
	case codeSuccess:
		return &resp.PaymentIntent, nil
	case codeOrderPaid:
		return nil, ports.ErrAlreadyPaid
	default:
		return nil, ports.NewGatewayError("prepay", resp.Code, fmt.Errorf("gateway message: %s", resp.Message))
	}
}

type refundRequestBody struct {
	OrderNumber  string `json:"orderNumber"`
	RefundNumber string `json:"refundNumber"`
	RefundAmount string `json:"refundAmount"`
	TotalAmount  string `json:"totalAmount"`
}

type refundResponseBody struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RefundStatus string `json:"refundStatus"`
}

// Refund requests a refund of a previously completed payment and returns the
// gateway's refund status string.
func (c *Client) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	body := refundRequestBody{
		OrderNumber:  req.OrderNumber,
		RefundNumber: req.RefundNumber,
		RefundAmount: req.RefundAmount.String(),
		TotalAmount:  req.TotalAmount.String(),
	}

	var resp refundResponseBody
	if err := c.post(ctx, "refund", c.refundURL, body, &resp); err != nil {
		return "", err
	}

	if resp.Code != codeSuccess {
		return "", ports.NewGatewayError("refund", resp.Code, fmt.Errorf("gateway message: %s", resp.Message))
	}

	return resp.RefundStatus, nil
}

func (c *Client) post(ctx context.Context, op, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return ports.NewGatewayError(op, "MARSHAL", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return ports.NewGatewayError(op, "REQUEST", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return ports.NewGatewayError(op, "TRANSPORT", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return ports.NewGatewayError(op, fmt.Sprintf("HTTP_%d", httpResp.StatusCode), nil)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return ports.NewGatewayError(op, "READ", err)
	}

	if err = json.Unmarshal(raw, out); err != nil {
		return ports.NewGatewayError(op, "DECODE", err)
	}

	return nil
}
