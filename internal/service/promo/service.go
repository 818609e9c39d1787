// internal/service/promo/service.go
package promo

import (
	"context"
	"math"
	"sync"
	"time"

	"lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/domain/promo"

	"go.uber.org/zap"
)

// Store is the persistence boundary for promo codes. Implemented by
// repository/postgres.PromoCodeRepository.
type Store interface {
	List(ctx context.Context) ([]promo.PromoCode, error)
	Create(ctx context.Context, code *promo.PromoCode) error
	Delete(ctx context.Context, code string) error
	IncrementUses(ctx context.Context, code string) error
}

// Service validates promo codes against an in-memory snapshot loaded once at
// startup: built-in defaults merged with rows from the store. Validation
// never mutates usage counters; redemption accounting goes through Redeem.
type Service struct {
	mu     sync.RWMutex
	codes  []promo.PromoCode
	store  Store
	logger *zap.Logger
	nowFn  func() time.Time
}

func NewService(ctx context.Context, store Store, logger *zap.Logger) (*Service, error) {
	s := &Service{
		store:  store,
		logger: logger,
		nowFn:  time.Now,
	}

	codes := defaultCodes()
	if store != nil {
		stored, err := store.List(ctx)
		if err != nil {
			return nil, err
		}
		codes = append(codes, stored...)
	}
	s.codes = codes

	logger.Info("promo codes loaded", zap.Int("count", len(codes)))
	return s, nil
}

// defaultCodes are the built-in codes referenced by the cohort pricing
// table. Stored rows may add to, but not replace, these.
func defaultCodes() []promo.PromoCode {
	allPlans := []pricing.PlanDuration{pricing.DurationMonth, pricing.DurationQuarter, pricing.DurationYear}

	return []promo.PromoCode{
		{
			Code:            "WELCOME25",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   25,
			ApplicablePlans: []pricing.PlanDuration{pricing.DurationMonth},
			Cohorts:         []pricing.Cohort{pricing.CohortNewUser},
			IsActive:        true,
		},
		{
			Code:            "COMEBACK10",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   10,
			ApplicablePlans: allPlans,
			Cohorts:         []pricing.Cohort{pricing.CohortReturningUser},
			IsActive:        true,
		},
		{
			Code:            "WINBACK40",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   40,
			ApplicablePlans: allPlans,
			Cohorts:         []pricing.Cohort{pricing.CohortPremiumTrial},
			IsActive:        true,
		},
		{
			Code:            "STREAK15",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   15,
			ApplicablePlans: allPlans,
			Cohorts:         []pricing.Cohort{pricing.CohortHighEngagement},
			IsActive:        true,
		},
		{
			Code:            "RESTART20",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   20,
			ApplicablePlans: allPlans,
			Cohorts:         []pricing.Cohort{pricing.CohortLowEngagement},
			IsActive:        true,
		},
		{
			Code:            "MISSYOU50",
			DiscountType:    promo.DiscountPercentage,
			DiscountValue:   50,
			ApplicablePlans: allPlans,
			Cohorts:         []pricing.Cohort{pricing.CohortChurned},
			IsActive:        true,
		},
	}
}

// Validate returns the first code matching all eligibility rules, or nil.
// Matching is exact and case-sensitive; callers normalize user input to
// upper case before calling. CurrentUses is read, never written.
func (s *Service) Validate(code string, userCohort pricing.Cohort, plan pricing.PlanDuration) *promo.PromoCode {
	now := s.nowFn()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.codes {
		c := &s.codes[i]
		if c.Code != code {
			continue
		}
		if !c.IsActive {
			continue
		}
		if !c.AppliesToPlan(plan) {
			continue
		}
		if !c.AppliesToCohort(userCohort) {
			continue
		}
		if c.MaxUses != nil && c.CurrentUses >= *c.MaxUses {
			continue
		}
		if c.ValidUntil != nil && !c.ValidUntil.After(now) {
			continue
		}

		out := *c
		return &out
	}
	return nil
}

// ApplyDiscount applies a promo code to a kopeck price. Percentage codes
// round to the nearest unit; fixed codes floor at zero. The result is always
// a non-negative amount in the same unit as the input.
func ApplyDiscount(price int64, code *promo.PromoCode) int64 {
	if code == nil {
		return price
	}
	switch code.DiscountType {
	case promo.DiscountFixed:
		if code.DiscountValue >= price {
			return 0
		}
		return price - code.DiscountValue
	default:
		return int64(math.Round(float64(price) * (1 - float64(code.DiscountValue)/100)))
	}
}

// Redeem records one use of a code. Called by the payment webhook once a
// payment carrying a promo code settles.
func (s *Service) Redeem(ctx context.Context, code string) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.IncrementUses(ctx, code); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.codes {
		if s.codes[i].Code == code {
			s.codes[i].CurrentUses++
			break
		}
	}
	s.logger.Info("promo code redeemed", zap.String("code", code))
	return nil
}

// List returns the current snapshot, for the admin API.
func (s *Service) List() []promo.PromoCode {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]promo.PromoCode, len(s.codes))
	copy(out, s.codes)
	return out
}

// Create persists a new code and adds it to the snapshot.
func (s *Service) Create(ctx context.Context, code *promo.PromoCode) error {
	if s.store != nil {
		if err := s.store.Create(ctx, code); err != nil {
			return err
		}
	}
	s.mu.Lock()
	s.codes = append(s.codes, *code)
	s.mu.Unlock()
	s.logger.Info("promo code created", zap.String("code", code.Code))
	return nil
}

// Delete removes a code from the store and the snapshot.
func (s *Service) Delete(ctx context.Context, code string) error {
	if s.store != nil {
		if err := s.store.Delete(ctx, code); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.codes {
		if s.codes[i].Code == code {
			s.codes = append(s.codes[:i], s.codes[i+1:]...)
			break
		}
	}
	return nil
}
