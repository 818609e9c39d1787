// internal/repository/postgres/promo_code_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/domain/promo"
	xerrors "lingvo-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// PromoCodeRepository persists promo codes.
//
// Schema:
//
//	CREATE TABLE promo_codes (
//	    code             TEXT PRIMARY KEY,
//	    discount_type    TEXT NOT NULL,
//	    discount_value   BIGINT NOT NULL,
//	    valid_until      TIMESTAMPTZ,
//	    max_uses         INT,
//	    current_uses     INT NOT NULL DEFAULT 0,
//	    applicable_plans TEXT[] NOT NULL,
//	    cohorts          TEXT[],
//	    is_active        BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type PromoCodeRepository struct {
	db *pgxpool.Pool
}

func NewPromoCodeRepository(db *pgxpool.Pool) *PromoCodeRepository {
	return &PromoCodeRepository{db: db}
}

// List returns all stored promo codes.
func (r *PromoCodeRepository) List(ctx context.Context) ([]promo.PromoCode, error) {
	query := `
		SELECT code, discount_type, discount_value, valid_until,
		       max_uses, current_uses, applicable_plans, cohorts, is_active
		FROM promo_codes
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promo codes: %w", err)
	}
	defer rows.Close()

	var codes []promo.PromoCode
	for rows.Next() {
		var (
			c       promo.PromoCode
			plans   []string
			cohorts []string
		)
		if err := rows.Scan(
			&c.Code, &c.DiscountType, &c.DiscountValue, &c.ValidUntil,
			&c.MaxUses, &c.CurrentUses, pq.Array(&plans), pq.Array(&cohorts), &c.IsActive,
		); err != nil {
			return nil, fmt.Errorf("failed to scan promo code: %w", err)
		}
		for _, p := range plans {
			c.ApplicablePlans = append(c.ApplicablePlans, pricing.PlanDuration(p))
		}
		for _, co := range cohorts {
			c.Cohorts = append(c.Cohorts, pricing.Cohort(co))
		}
		codes = append(codes, c)
	}
	return codes, rows.Err()
}

// Create inserts a new promo code.
func (r *PromoCodeRepository) Create(ctx context.Context, c *promo.PromoCode) error {
	query := `
		INSERT INTO promo_codes (
			code, discount_type, discount_value, valid_until,
			max_uses, applicable_plans, cohorts, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	plans := make([]string, 0, len(c.ApplicablePlans))
	for _, p := range c.ApplicablePlans {
		plans = append(plans, string(p))
	}
	var cohorts []string
	for _, co := range c.Cohorts {
		cohorts = append(cohorts, string(co))
	}

	_, err := r.db.Exec(ctx, query,
		c.Code, c.DiscountType, c.DiscountValue, c.ValidUntil,
		c.MaxUses, pq.Array(plans), pq.Array(cohorts), c.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// Delete removes a promo code.
func (r *PromoCodeRepository) Delete(ctx context.Context, code string) error {
	result, err := r.db.Exec(ctx, `DELETE FROM promo_codes WHERE code = $1`, code)
	if err != nil {
		return fmt.Errorf("failed to delete promo code: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// IncrementUses records one redemption, refusing to overrun the usage cap.
func (r *PromoCodeRepository) IncrementUses(ctx context.Context, code string) error {
	query := `
		UPDATE promo_codes
		SET current_uses = current_uses + 1
		WHERE code = $1
		  AND (max_uses IS NULL OR current_uses < max_uses)
		RETURNING current_uses
	`

	var uses int
	err := r.db.QueryRow(ctx, query, code).Scan(&uses)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either an unknown stored code (built-in defaults have no row) or
		// an exhausted cap; neither should fail the settlement.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to increment promo code uses: %w", err)
	}
	return nil
}
