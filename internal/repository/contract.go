package repository

import (
	"context"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
)

type OrderRepository interface {
	// Save persists a new payment order. Returns errs.ErrDuplicateOrder when
	// an order with the same id already exists.
	Save(ctx context.Context, order domain.PaymentOrder) error

	// Update overwrites the mutable fields of an existing order.
	Update(ctx context.Context, order domain.PaymentOrder) error

	// UpdateStatusIfCurrent atomically moves the order from expected to next
	// and reports whether this caller performed the transition. Exactly one of
	// any number of concurrent callers observes true.
	UpdateStatusIfCurrent(ctx context.Context, id string, expected, next domain.PaymentStatus) (bool, error)

	// FindByID returns the order or nil when no order exists with that id.
	// Soft-deleted orders are treated as absent.
	FindByID(ctx context.Context, id string) (*domain.PaymentOrder, error)

	FindByUserAndStatusIn(ctx context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.PaymentOrder, error)

	FindAllByUser(ctx context.Context, userID string) ([]domain.PaymentOrder, error)
}
