// internal/domain/promo/entity.go
package promo

import (
	"time"

	"lingvo-service/internal/domain/pricing"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// PromoCode is a redeemable discount token. Codes are stored upper-case;
// matching is exact and case-sensitive (callers normalize user input).
type PromoCode struct {
	Code            string                 `json:"code"`
	DiscountType    DiscountType           `json:"discount_type"`
	DiscountValue   int64                  `json:"discount_value"`
	ValidUntil      *time.Time             `json:"valid_until,omitempty"` // nil = never expires
	MaxUses         *int                   `json:"max_uses,omitempty"`
	CurrentUses     int                    `json:"current_uses"`
	ApplicablePlans []pricing.PlanDuration `json:"applicable_plans"`
	Cohorts         []pricing.Cohort       `json:"cohorts,omitempty"` // nil = any cohort
	IsActive        bool                   `json:"is_active"`
}

// AppliesToPlan reports whether the code covers the given plan duration.
func (p *PromoCode) AppliesToPlan(plan pricing.PlanDuration) bool {
	for _, d := range p.ApplicablePlans {
		if d == plan {
			return true
		}
	}
	return false
}

// AppliesToCohort reports whether the code covers the given cohort. An empty
// allow-list means any cohort.
func (p *PromoCode) AppliesToCohort(cohort pricing.Cohort) bool {
	if len(p.Cohorts) == 0 {
		return true
	}
	for _, c := range p.Cohorts {
		if c == cohort {
			return true
		}
	}
	return false
}
