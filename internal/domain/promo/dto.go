// internal/domain/promo/dto.go
package promo

import (
	"lingvo-service/internal/domain/pricing"
)

type ValidateRequest struct {
	Code   string               `json:"code" binding:"required,max=64"`
	Plan   pricing.PlanDuration `json:"plan" binding:"required,oneof=month quarter year"`
	Cohort pricing.Cohort       `json:"cohort" binding:"omitempty,oneof=new_user returning_user premium_trial high_engagement low_engagement churned default"`
}

type ValidateResponse struct {
	Code            string       `json:"code"`
	DiscountType    DiscountType `json:"discount_type"`
	DiscountValue   int64        `json:"discount_value"`
	Price           int64        `json:"price"`
	DiscountedPrice int64        `json:"discounted_price"`
}

type CreateRequest struct {
	Code            string                 `json:"code" binding:"required,max=64"`
	DiscountType    DiscountType           `json:"discount_type" binding:"required,oneof=percentage fixed"`
	DiscountValue   int64                  `json:"discount_value" binding:"required,min=1"`
	ValidUntil      string                 `json:"valid_until" binding:"omitempty"` // RFC3339
	MaxUses         *int                   `json:"max_uses" binding:"omitempty,min=1"`
	ApplicablePlans []pricing.PlanDuration `json:"applicable_plans" binding:"required,min=1,dive,oneof=month quarter year"`
	Cohorts         []pricing.Cohort       `json:"cohorts" binding:"omitempty,dive,oneof=new_user returning_user premium_trial high_engagement low_engagement churned default"`
}
