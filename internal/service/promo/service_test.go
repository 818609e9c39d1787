package promo

import (
	"context"
	"testing"
	"time"

	"lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/domain/promo"

	"go.uber.org/zap"
)

func newTestService(t *testing.T, extra ...promo.PromoCode) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	svc.codes = append(svc.codes, extra...)
	svc.nowFn = func() time.Time {
		return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestValidateWelcomeCode(t *testing.T) {
	svc := newTestService(t)

	code := svc.Validate("WELCOME25", pricing.CohortNewUser, pricing.DurationMonth)
	if code == nil {
		t.Fatalf("WELCOME25 rejected for new_user/month")
	}
	if code.DiscountType != promo.DiscountPercentage || code.DiscountValue != 25 {
		t.Fatalf("unexpected code record: %+v", code)
	}

	// Cohort allow-list excludes churned users.
	if got := svc.Validate("WELCOME25", pricing.CohortChurned, pricing.DurationMonth); got != nil {
		t.Fatalf("WELCOME25 accepted for churned cohort")
	}

	// Plan list excludes the yearly plan.
	if got := svc.Validate("WELCOME25", pricing.CohortNewUser, pricing.DurationYear); got != nil {
		t.Fatalf("WELCOME25 accepted for yearly plan")
	}
}

func TestValidateIsCaseSensitive(t *testing.T) {
	svc := newTestService(t)
	if got := svc.Validate("welcome25", pricing.CohortNewUser, pricing.DurationMonth); got != nil {
		t.Fatalf("lower-case input matched; validator must not normalize case")
	}
}

func TestValidateEligibilityGates(t *testing.T) {
	until := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) // already past
	maxUses := 100

	svc := newTestService(t,
		promo.PromoCode{
			Code: "EXPIRED", DiscountType: promo.DiscountPercentage, DiscountValue: 10,
			ValidUntil:      &until,
			ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
			IsActive:        true,
		},
		promo.PromoCode{
			Code: "USEDUP", DiscountType: promo.DiscountPercentage, DiscountValue: 10,
			MaxUses: &maxUses, CurrentUses: 100,
			ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
			IsActive:        true,
		},
		promo.PromoCode{
			Code: "DISABLED", DiscountType: promo.DiscountPercentage, DiscountValue: 10,
			ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
			IsActive:        false,
		},
		promo.PromoCode{
			Code: "ANYONE", DiscountType: promo.DiscountFixed, DiscountValue: 500,
			ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
			IsActive:        true,
		},
	)

	for _, code := range []string{"EXPIRED", "USEDUP", "DISABLED"} {
		if got := svc.Validate(code, pricing.CohortDefault, pricing.DurationMonth); got != nil {
			t.Errorf("%s accepted, want rejection", code)
		}
	}

	// No cohort allow-list means any cohort qualifies.
	if got := svc.Validate("ANYONE", pricing.CohortChurned, pricing.DurationMonth); got == nil {
		t.Fatalf("ANYONE rejected; empty cohort list must allow every cohort")
	}
}

func TestValidateDoesNotMutateUses(t *testing.T) {
	maxUses := 2
	svc := newTestService(t, promo.PromoCode{
		Code: "TWICE", DiscountType: promo.DiscountPercentage, DiscountValue: 10,
		MaxUses:         &maxUses,
		ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
		IsActive:        true,
	})

	for i := 0; i < 10; i++ {
		if got := svc.Validate("TWICE", pricing.CohortDefault, pricing.DurationMonth); got == nil {
			t.Fatalf("validation %d failed; Validate must not consume uses", i)
		}
	}
}

func TestApplyDiscount(t *testing.T) {
	percentage := &promo.PromoCode{DiscountType: promo.DiscountPercentage, DiscountValue: 25}
	if got := ApplyDiscount(2990, percentage); got != 2243 {
		t.Fatalf("25%% off 2990 = %d, want 2243", got)
	}

	fixed := &promo.PromoCode{DiscountType: promo.DiscountFixed, DiscountValue: 150}
	if got := ApplyDiscount(100, fixed); got != 0 {
		t.Fatalf("fixed discount must floor at zero, got %d", got)
	}
	if got := ApplyDiscount(1000, fixed); got != 850 {
		t.Fatalf("fixed 150 off 1000 = %d, want 850", got)
	}

	if got := ApplyDiscount(2990, nil); got != 2990 {
		t.Fatalf("nil code must be identity, got %d", got)
	}
}
