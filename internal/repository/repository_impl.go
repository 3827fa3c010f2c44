package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/akgarg0472/urlshortener-payment-service/internal/domain"
	"github.com/akgarg0472/urlshortener-payment-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

type OrderRepositoryImpl struct {
	db *sqlx.DB
}

func CreateOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{
		db: db,
	}
}

func (r *OrderRepositoryImpl) Save(ctx context.Context, order domain.PaymentOrder) (err error) {
	_, err = r.db.NamedExecContext(ctx, "INSERT INTO payment_orders(id, user_id, pack_id, amount, currency, payment_status, payment_gateway, created_at, updated_at, completed_at, deleted) VALUES (:id, :user_id, :pack_id, :amount, :currency, :payment_status, :payment_gateway, :created_at, :updated_at, :completed_at, :deleted)", order)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return errs.ErrDuplicateOrder
		}
		log.Error().Err(err).Str("component", "Save").Msg("")
		return errs.ErrDatabase
	}

	return nil
}

func (r *OrderRepositoryImpl) Update(ctx context.Context, order domain.PaymentOrder) (err error) {
	order.UpdatedAt = time.Now().UnixMilli()
	_, err = r.db.NamedExecContext(ctx, "UPDATE payment_orders SET payment_status = :payment_status, updated_at = :updated_at, completed_at = :completed_at, deleted = :deleted WHERE id = :id", order)
	if err != nil {
		log.Error().Err(err).Str("component", "Update").Msg("")
		return errs.ErrDatabase
	}

	return nil
}

// UpdateStatusIfCurrent is the synchronization point for the whole order
// lifecycle: the conditional WHERE clause makes the transition succeed for
// exactly one concurrent caller.
func (r *OrderRepositoryImpl) UpdateStatusIfCurrent(ctx context.Context, id string, expected, next domain.PaymentStatus) (claimed bool, err error) {
	result, err := r.db.ExecContext(ctx, "UPDATE payment_orders SET payment_status = $1, updated_at = $2 WHERE id = $3 AND payment_status = $4", next, time.Now().UnixMilli(), id, expected)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateStatusIfCurrent").Msg("")
		return false, errs.ErrDatabase
	}

	rows, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateStatusIfCurrent").Msg("")
		return false, errs.ErrDatabase
	}

	return rows == 1, nil
}

func (r *OrderRepositoryImpl) FindByID(ctx context.Context, id string) (order *domain.PaymentOrder, err error) {
	var data domain.PaymentOrder
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM payment_orders WHERE id = $1 AND deleted = FALSE", id)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		log.Error().Err(err).Str("component", "FindByID").Msg("")
		return nil, errs.ErrDatabase
	}

	return &data, nil
}

func (r *OrderRepositoryImpl) FindByUserAndStatusIn(ctx context.Context, userID string, statuses []domain.PaymentStatus) (data []domain.PaymentOrder, err error) {
	values := make([]string, len(statuses))
	for i, status := range statuses {
		values[i] = string(status)
	}

	err = r.db.SelectContext(ctx, &data, "SELECT * FROM payment_orders WHERE user_id = $1 AND payment_status = ANY($2) AND deleted = FALSE", userID, pq.Array(values))
	if err != nil {
		log.Error().Err(err).Str("component", "FindByUserAndStatusIn").Msg("")
		return nil, errs.ErrDatabase
	}

	return data, nil
}

func (r *OrderRepositoryImpl) FindAllByUser(ctx context.Context, userID string) (data []domain.PaymentOrder, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT * FROM payment_orders WHERE user_id = $1 AND deleted = FALSE ORDER BY created_at", userID)
	if err != nil {
		log.Error().Err(err).Str("component", "FindAllByUser").Msg("")
		return nil, errs.ErrDatabase
	}

	return data, nil
}
