package event

// PaymentEvent is published when a payment order completes. Downstream
// consumers use it to activate the purchased pack.
type PaymentEvent struct {
	PaymentID      string `json:"payment_id"`
	UserID         string `json:"user_id"`
	PackID         string `json:"pack_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	PaymentGateway string `json:"payment_gateway"`
}

// Publisher delivers payment events with at-least-once semantics. Callers do
// not wait for delivery confirmation.
type Publisher interface {
	Publish(event PaymentEvent) error
}
