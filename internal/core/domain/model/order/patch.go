package order

import "time"

// Patch is a sparse-update value object describing the fields a lifecycle
// transition changes. Only non-nil fields are written by the repository; every
// other column keeps its stored value. This is the contract that keeps the
// state machine from blind-overwriting fields it does not own.
//
// Patches are produced exclusively by Order transition methods, so a handler
// can never hand-craft an update that skips a status guard.
type Patch struct {
	Status          *Status
	PayStatus       *PayStatus
	CheckoutTime    *time.Time
	CancelTime      *time.Time
	DeliveryTime    *time.Time
	CancelReason    *string
	RejectionReason *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil &&
		p.PayStatus == nil &&
		p.CheckoutTime == nil &&
		p.CancelTime == nil &&
		p.DeliveryTime == nil &&
		p.CancelReason == nil &&
		p.RejectionReason == nil
}
