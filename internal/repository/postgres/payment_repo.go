// internal/repository/postgres/payment_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lingvo-service/internal/domain/payment"
	xerrors "lingvo-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository persists payment records.
//
// Schema:
//
//	CREATE TABLE payments (
//	    id              TEXT PRIMARY KEY,
//	    user_id         BIGINT NOT NULL,
//	    product         TEXT NOT NULL,
//	    amount_kopecks  BIGINT NOT NULL,
//	    currency        TEXT NOT NULL,
//	    status          TEXT NOT NULL,
//	    promo_code      TEXT,
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    paid_at         TIMESTAMPTZ
//	);
type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	query := `
		INSERT INTO payments (id, user_id, product, amount_kopecks, currency, status, promo_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.UserID, p.Product, p.AmountKopecks, p.Currency, p.Status, p.PromoCode, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*payment.Payment, error) {
	query := `
		SELECT id, user_id, product, amount_kopecks, currency, status, promo_code, created_at, paid_at
		FROM payments
		WHERE id = $1
	`

	var p payment.Payment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Product, &p.AmountKopecks, &p.Currency,
		&p.Status, &p.PromoCode, &p.CreatedAt, &p.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &p, nil
}

// MarkPaid transitions a pending payment to paid. Returns the updated record,
// or ErrNotFound when the payment does not exist or was already settled.
func (r *PaymentRepository) MarkPaid(ctx context.Context, id string, paidAt time.Time) (*payment.Payment, error) {
	query := `
		UPDATE payments
		SET status = $2, paid_at = $3
		WHERE id = $1 AND status = $4
		RETURNING id, user_id, product, amount_kopecks, currency, status, promo_code, created_at, paid_at
	`

	var p payment.Payment
	err := r.db.QueryRow(ctx, query, id, payment.StatusPaid, paidAt, payment.StatusPending).Scan(
		&p.ID, &p.UserID, &p.Product, &p.AmountKopecks, &p.Currency,
		&p.Status, &p.PromoCode, &p.CreatedAt, &p.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to mark payment paid: %w", err)
	}
	return &p, nil
}
