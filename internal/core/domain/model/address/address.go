// Package address models address book entries consumed by order submission.
// The address book is an external collaborator: the order core reads an entry
// once to stamp the delivery snapshot onto a new order and never mutates it.
package address

// Entry is a delivery address with its contact details.
type Entry struct {
	ID        int64
	UserID    int64
	Consignee string
	Phone     string
	Detail    string
}
