// Package profile models the user payment identity consumed by the payment
// orchestration. User management is an external collaborator: the order core
// only reads the external-payment identity token (OpenID) when requesting a
// prepayment from the gateway.
package profile

// Profile is the slice of the user record the payment flow needs.
type Profile struct {
	ID     int64
	OpenID string
	Name   string
	Phone  string
}
