package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
)

// InMemoryOrderRepository keeps orders in a process-local map. Used by the dev
// profile and by tests. The mutex gives UpdateStatusIfCurrent the same
// single-winner guarantee the SQL conditional update provides.
type InMemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]domain.PaymentOrder
}

func CreateInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]domain.PaymentOrder),
	}
}

func (r *InMemoryOrderRepository) Save(_ context.Context, order domain.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return errs.ErrDuplicateOrder
	}

	r.orders[order.ID] = order
	return nil
}

func (r *InMemoryOrderRepository) Update(_ context.Context, order domain.PaymentOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; !exists {
		return errs.ErrNotFound
	}

	order.UpdatedAt = time.Now().UnixMilli()
	r.orders[order.ID] = order
	return nil
}

func (r *InMemoryOrderRepository) UpdateStatusIfCurrent(_ context.Context, id string, expected, next domain.PaymentStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists || order.PaymentStatus != expected {
		return false, nil
	}

	order.PaymentStatus = next
	order.UpdatedAt = time.Now().UnixMilli()
	r.orders[id] = order
	return true, nil
}

func (r *InMemoryOrderRepository) FindByID(_ context.Context, id string) (*domain.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists || order.Deleted {
		return nil, nil
	}

	copied := order
	return &copied, nil
}

func (r *InMemoryOrderRepository) FindByUserAndStatusIn(_ context.Context, userID string, statuses []domain.PaymentStatus) ([]domain.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.PaymentOrder
	for _, order := range r.orders {
		if order.UserID != userID || order.Deleted {
			continue
		}
		for _, status := range statuses {
			if order.PaymentStatus == status {
				result = append(result, order)
				break
			}
		}
	}

	return result, nil
}

func (r *InMemoryOrderRepository) FindAllByUser(_ context.Context, userID string) ([]domain.PaymentOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.PaymentOrder
	for _, order := range r.orders {
		if order.UserID == userID && !order.Deleted {
			result = append(result, order)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt < result[j].CreatedAt
	})

	return result, nil
}
