package ports

import "context"

// Notification message types understood by merchant clients.
const (
	// NotificationNewOrder alerts merchant terminals that a paid order arrived.
	NotificationNewOrder = 1
)

// Notification is the structured payload broadcast to merchant clients,
// serialized as JSON and sent verbatim to every connection.
type Notification struct {
	Type    int    `json:"type"`
	OrderID int64  `json:"orderId"`
	Content string `json:"content"`
}

// NotificationPublisher broadcasts a message to all currently connected
// merchant clients. Delivery is best-effort: no queuing, no retry, and a
// message sent while no client is connected is dropped. Implementations must
// bound the send attempt per connection so one slow or dead client cannot
// stall delivery to the others.
//
// Callers treat a returned error as non-fatal: a publish failure is logged and
// never rolls back the state transition that triggered it.
type NotificationPublisher interface {
	Broadcast(ctx context.Context, n Notification) error
}
