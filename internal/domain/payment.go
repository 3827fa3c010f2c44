package domain

// PaymentStatus is the lifecycle state of a payment order. Transitions are
// CREATED -> PROCESSING -> COMPLETED|FAILED and CREATED -> CANCELLED.
type PaymentStatus string

const (
	PaymentStatusCreated    PaymentStatus = "CREATED"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

// Terminal reports whether no further transition is allowed from s.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed || s == PaymentStatusCancelled
}

// PaymentOrder is a single attempt to pay for a subscription pack. ID is the
// gateway-assigned order id and is the primary key. Amount is in the smallest
// currency unit. CompletedAt is set only when the order reaches COMPLETED.
type PaymentOrder struct {
	ID             string        `db:"id"`
	UserID         string        `db:"user_id"`
	PackID         string        `db:"pack_id"`
	Amount         int64         `db:"amount"`
	Currency       string        `db:"currency"`
	PaymentStatus  PaymentStatus `db:"payment_status"`
	PaymentGateway string        `db:"payment_gateway"`
	CreatedAt      int64         `db:"created_at"`
	UpdatedAt      int64         `db:"updated_at"`
	CompletedAt    *int64        `db:"completed_at"`
	Deleted        bool          `db:"deleted"`
}

// Subscription is the currently active subscription of a user, owned by the
// subscription service and read through the subscription cache.
type Subscription struct {
	UserID    string `json:"user_id"`
	PackID    string `json:"pack_id"`
	ExpiresAt int64  `json:"expires_at"`
}

// Active reports whether the subscription has not expired at the given unix
// millisecond timestamp.
func (s Subscription) Active(nowMillis int64) bool {
	return s.ExpiresAt > nowMillis
}

// SubscriptionPack is a purchasable pack definition. Price is in the smallest
// currency unit. DefaultPack marks the free baseline tier.
type SubscriptionPack struct {
	ID          string `json:"id"`
	Price       int64  `json:"price"`
	DefaultPack bool   `json:"default_pack"`
}
