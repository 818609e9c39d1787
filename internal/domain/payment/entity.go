// internal/domain/payment/entity.go
package payment

import (
	"time"

	"lingvo-service/internal/domain/pricing"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

// Payment is a single purchase attempt. Amounts are integral kopecks; Stars
// invoices carry the star amount instead, flagged by Currency.
type Payment struct {
	ID            string               `json:"id"`
	UserID        int64                `json:"user_id"`
	Product       pricing.PlanDuration `json:"product"`
	AmountKopecks int64                `json:"amount_kopecks"`
	Currency      string               `json:"currency"`
	Status        Status               `json:"status"`
	PromoCode     *string              `json:"promo_code,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	PaidAt        *time.Time           `json:"paid_at,omitempty"`
}
