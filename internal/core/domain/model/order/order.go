package order

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemsAreRequired is returned when an order is created without line items.
	ErrItemsAreRequired = errors.New("order must contain at least one line item")

	// ErrIDAlreadyAssigned is returned when AssignID is called on an order that
	// already carries a persistent identity.
	ErrIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Cancellation reasons stamped by the lifecycle operations.
const (
	CancelReasonUser           = "user cancelled"
	CancelReasonPaymentTimeout = "order payment timed out"
)

// Order represents a customer order in the system. It is the aggregate root
// that owns the authoritative status field and drives the order lifecycle from
// submission through payment, merchant acceptance, and delivery to completion
// or cancellation.
//
// Order follows these invariants:
//   - Must have a non-empty order number and an owning user
//   - Must carry a delivery snapshot (consignee, phone, address) and at least one line item
//   - Status transitions follow the state machine defined on Status
//   - PayStatus == Paid is only reachable through ConfirmPayment;
//     PayStatus == Refunded only from Paid during Reject or Cancel
//   - Can only be created through NewOrder or RestoreOrder
//
// Every lifecycle method both mutates the aggregate and returns a Patch listing
// exactly the fields that changed, which the repository applies as a sparse
// update.
type Order struct {
	// id is the surrogate identity assigned by the database on creation
	id int64

	// number is the human-readable, process-wide-unique order number
	number string

	// userID is the owning customer
	userID int64

	// delivery snapshot copied from the address book at submission time
	consignee string
	phone     string
	address   string

	// amount is the order total
	amount kernel.Money

	remark string

	status    Status
	payStatus PayStatus

	orderTime    time.Time
	checkoutTime *time.Time
	cancelTime   *time.Time
	deliveryTime *time.Time

	cancelReason    string
	rejectionReason string

	// items is the immutable line-item snapshot taken from the cart
	items []Item

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order at the start of its lifecycle:
// status PendingPayment, pay status Unpaid, no persistent id yet.
//
// Parameters:
//   - number: process-wide-unique order number (see NewNumber)
//   - userID: owning customer id (must be positive)
//   - consignee, phone, address: delivery snapshot from the address book
//   - amount: order total supplied by the caller
//   - remark: optional customer note
//   - orderTime: submission timestamp
//   - items: line-item snapshots (at least one)
//
// Returns a validation error if any parameter is invalid.
func NewOrder(
	number string,
	userID int64,
	consignee, phone, address string,
	amount kernel.Money,
	remark string,
	orderTime time.Time,
	items []Item,
) (*Order, error) {
	order := &Order{
		status:        PendingPayment,
		payStatus:     Unpaid,
		amount:        amount,
		remark:        remark,
		orderTime:     orderTime,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setNumber(number),
		order.setUserID(userID),
		order.setDeliverTo(consignee, phone, address),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreParams carries every persisted attribute needed to reconstruct an
// Order from storage.
type RestoreParams struct {
	ID              int64
	Number          string
	UserID          int64
	Consignee       string
	Phone           string
	Address         string
	Amount          kernel.Money
	Remark          string
	Status          Status
	PayStatus       PayStatus
	OrderTime       time.Time
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    string
	RejectionReason string
	Items           []Item
}

// RestoreOrder reconstructs an Order from persistence, re-validating the
// invariants so corrupt rows cannot produce an aggregate in an illegal state.
func RestoreOrder(p RestoreParams) (*Order, error) {
	order := &Order{
		amount:          p.Amount,
		remark:          p.Remark,
		orderTime:       p.OrderTime,
		checkoutTime:    p.CheckoutTime,
		cancelTime:      p.CancelTime,
		deliveryTime:    p.DeliveryTime,
		cancelReason:    p.CancelReason,
		rejectionReason: p.RejectionReason,
		isConstructed:   true,
	}

	if err := errors.Join(
		order.setNumber(p.Number),
		order.setUserID(p.UserID),
		order.setDeliverTo(p.Consignee, p.Phone, p.Address),
		order.setItems(p.Items),
		order.setStatus(p.Status),
		order.setPayStatus(p.PayStatus),
	); err != nil {
		return nil, err
	}

	if p.ID <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not greater than 0", p.ID))
	}
	order.id = p.ID

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Returns ErrOrderIsNotConstructed otherwise.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID stamps the surrogate identity assigned by the database on insert.
// Returns ErrIDAlreadyAssigned if the order already has one.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("%d is not greater than 0", id))
	}
	o.id = id
	return nil
}

// ID returns the surrogate identity, or 0 before the order is persisted.
func (o *Order) ID() int64 { return o.id }

// Number returns the human-readable order number.
func (o *Order) Number() string { return o.number }

// UserID returns the owning customer id.
func (o *Order) UserID() int64 { return o.userID }

// Consignee returns the delivery contact name snapshot.
func (o *Order) Consignee() string { return o.consignee }

// Phone returns the delivery contact phone snapshot.
func (o *Order) Phone() string { return o.phone }

// Address returns the delivery address snapshot.
func (o *Order) Address() string { return o.address }

// Amount returns the order total.
func (o *Order) Amount() kernel.Money { return o.amount }

// Remark returns the optional customer note.
func (o *Order) Remark() string { return o.remark }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PayStatus returns the current pay status.
func (o *Order) PayStatus() PayStatus { return o.payStatus }

// OrderTime returns the submission timestamp.
func (o *Order) OrderTime() time.Time { return o.orderTime }

// CheckoutTime returns the payment timestamp, or nil while unpaid.
func (o *Order) CheckoutTime() *time.Time { return o.checkoutTime }

// CancelTime returns the cancellation timestamp, or nil.
func (o *Order) CancelTime() *time.Time { return o.cancelTime }

// DeliveryTime returns the completion timestamp, or nil.
func (o *Order) DeliveryTime() *time.Time { return o.deliveryTime }

// CancelReason returns the user-facing cancellation reason, or "".
func (o *Order) CancelReason() string { return o.cancelReason }

// RejectionReason returns the merchant's rejection reason, or "".
func (o *Order) RejectionReason() string { return o.rejectionReason }

// Items returns the line-item snapshots. The returned slice must not be mutated.
func (o *Order) Items() []Item { return o.items }

// RequiresRefund reports whether money has moved and would need to be returned
// if the order were cancelled or rejected now.
func (o *Order) RequiresRefund() bool {
	return o.payStatus == Paid
}

// ConfirmPayment applies the gateway's successful prepayment callback:
// PendingPayment -> AwaitingConfirmation, pay status Paid, checkout time set.
//
// A second confirmation attempt fails with a StatusConflictError and changes
// nothing, so a paid order can never be re-marked paid or double-announced.
func (o *Order) ConfirmPayment(now time.Time) (Patch, error) {
	newStatus, err := o.status.ConfirmPayment()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	o.payStatus = Paid
	o.checkoutTime = &now

	paid := Paid
	return Patch{Status: &newStatus, PayStatus: &paid, CheckoutTime: &now}, nil
}

// Confirm applies merchant acceptance: AwaitingConfirmation -> Confirmed.
func (o *Order) Confirm() (Patch, error) {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	return Patch{Status: &newStatus}, nil
}

// Reject applies merchant rejection: AwaitingConfirmation -> Cancelled with a
// mandatory reason. refunded reports whether the gateway refund succeeded; it
// must only be true when the refund call completed, and flips the pay status
// to Refunded in the same patch as the status write.
func (o *Order) Reject(reason string, refunded bool, now time.Time) (Patch, error) {
	if reason == "" {
		return Patch{}, errs.NewValueIsRequiredError("rejection reason")
	}

	newStatus, err := o.status.Reject()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	o.rejectionReason = reason
	o.cancelTime = &now

	patch := Patch{Status: &newStatus, RejectionReason: &reason, CancelTime: &now}
	if refunded {
		o.payStatus = Refunded
		refundedStatus := Refunded
		patch.PayStatus = &refundedStatus
	}

	return patch, nil
}

// Cancel applies cancellation while the order is still cancellable
// (PendingPayment or AwaitingConfirmation). refunded follows the same contract
// as in Reject. An unpaid order cancels without any refund involvement.
func (o *Order) Cancel(reason string, refunded bool, now time.Time) (Patch, error) {
	if reason == "" {
		return Patch{}, errs.NewValueIsRequiredError("cancel reason")
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	o.cancelReason = reason
	o.cancelTime = &now

	patch := Patch{Status: &newStatus, CancelReason: &reason, CancelTime: &now}
	if refunded {
		o.payStatus = Refunded
		refundedStatus := Refunded
		patch.PayStatus = &refundedStatus
	}

	return patch, nil
}

// Dispatch applies merchant dispatch: Confirmed -> OutForDelivery.
func (o *Order) Dispatch() (Patch, error) {
	newStatus, err := o.status.Dispatch()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	return Patch{Status: &newStatus}, nil
}

// Complete applies delivery completion: OutForDelivery -> Completed with the
// delivery time stamped.
func (o *Order) Complete(now time.Time) (Patch, error) {
	newStatus, err := o.status.Complete()
	if err != nil {
		return Patch{}, err
	}

	o.status = newStatus
	o.deliveryTime = &now
	return Patch{Status: &newStatus, DeliveryTime: &now}, nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

func (o *Order) setUserID(userID int64) error {
	if userID <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("user id",
			fmt.Errorf("%d is not greater than 0", userID))
	}
	o.userID = userID
	return nil
}

func (o *Order) setDeliverTo(consignee, phone, address string) error {
	if consignee == "" {
		return errs.NewValueIsRequiredError("consignee")
	}
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.consignee = consignee
	o.phone = phone
	o.address = address
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	o.items = items
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setPayStatus(payStatus PayStatus) error {
	if err := payStatus.Validate(); err != nil {
		return err
	}
	o.payStatus = payStatus
	return nil
}
