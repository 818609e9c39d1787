// internal/service/pricing/service.go
package pricing

import (
	"time"

	domain "lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/service/cohort"

	"go.uber.org/zap"
)

type Service struct {
	projector Projector
	logger    *zap.Logger
}

func NewService(projector Projector, logger *zap.Logger) *Service {
	return &Service{
		projector: projector,
		logger:    logger,
	}
}

var planOrder = []domain.PlanDuration{
	domain.DurationMonth,
	domain.DurationQuarter,
	domain.DurationYear,
}

// BuildPaywall classifies the user and synthesizes the paywall view: one
// product per plan duration with ruble and stars figures, plus the cohort's
// special offer when it has one. Classification is recomputed on every call;
// nothing here is cached or mutated.
func (s *Service) BuildPaywall(signals domain.BehaviorSignals, now time.Time) domain.PaywallResponse {
	userCohort := cohort.ClassifyAt(signals, now)
	row := PricingFor(userCohort)

	products := make([]domain.PaywallProduct, 0, len(planOrder))
	monthlyBase := row.Prices[domain.DurationMonth]

	for _, duration := range planOrder {
		price := row.Prices[duration]
		prod := domain.PaywallProduct{
			ID:       "plan_" + string(duration),
			Duration: duration,
			Price:    price,
		}

		if orig := row.OriginalPrices[duration]; orig != price {
			prod.OriginalPrice = &orig
		}
		if row.DiscountPercent > 0 {
			d := row.DiscountPercent
			prod.Discount = &d
		}

		monthly := MonthlyEquivalent(price, duration)
		prod.MonthlyEquivalent = &monthly

		savings := SavingsPercentage(monthlyBase, price, duration)
		prod.SavingsPercentage = &savings

		products = append(products, s.projector.WithStars(prod))
	}

	s.logger.Debug("paywall built",
		zap.String("cohort", string(userCohort)),
		zap.Int("discount_percent", row.DiscountPercent),
	)

	return domain.PaywallResponse{
		Cohort:   userCohort,
		Pricing:  row,
		Products: products,
		Offer:    OfferFor(userCohort),
	}
}

// PriceFor returns the cohort price of one plan, used by the payment flow.
func (s *Service) PriceFor(userCohort domain.Cohort, duration domain.PlanDuration) int64 {
	return PricingFor(userCohort).Prices[duration]
}
