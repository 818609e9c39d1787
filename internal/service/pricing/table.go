// internal/service/pricing/table.go
package pricing

import (
	"fmt"

	domain "lingvo-service/internal/domain/pricing"
)

// cohortPricingTable is static configuration: one row per cohort, amounts in
// kopecks. Discounted prices are precomputed against the shared original
// prices so a missing row is a startup failure, not a runtime surprise.
var cohortPricingTable = map[domain.Cohort]domain.CohortPricing{
	domain.CohortNewUser: {
		Cohort: domain.CohortNewUser,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   20930,
			domain.DurationQuarter: 52430,
			domain.DurationYear:    167930,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "WELCOME25",
		DiscountPercent: 30,
	},
	domain.CohortReturningUser: {
		Cohort: domain.CohortReturningUser,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   26910,
			domain.DurationQuarter: 67410,
			domain.DurationYear:    215910,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "COMEBACK10",
		DiscountPercent: 10,
	},
	domain.CohortPremiumTrial: {
		Cohort: domain.CohortPremiumTrial,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   17940,
			domain.DurationQuarter: 44940,
			domain.DurationYear:    143940,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "WINBACK40",
		DiscountPercent: 40,
	},
	domain.CohortHighEngagement: {
		Cohort: domain.CohortHighEngagement,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   25415,
			domain.DurationQuarter: 63665,
			domain.DurationYear:    203915,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "STREAK15",
		DiscountPercent: 15,
	},
	domain.CohortLowEngagement: {
		Cohort: domain.CohortLowEngagement,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   23920,
			domain.DurationQuarter: 59920,
			domain.DurationYear:    191920,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "RESTART20",
		DiscountPercent: 20,
	},
	domain.CohortChurned: {
		Cohort: domain.CohortChurned,
		Prices: map[domain.PlanDuration]int64{
			domain.DurationMonth:   14950,
			domain.DurationQuarter: 37450,
			domain.DurationYear:    119950,
		},
		OriginalPrices:  basePrices,
		PromoCode:       "MISSYOU50",
		DiscountPercent: 50,
	},
	domain.CohortDefault: {
		Cohort:          domain.CohortDefault,
		Prices:          basePrices,
		OriginalPrices:  basePrices,
		DiscountPercent: 0,
	},
}

var basePrices = map[domain.PlanDuration]int64{
	domain.DurationMonth:   29900,
	domain.DurationQuarter: 74900,
	domain.DurationYear:    239900,
}

// specialOffers has no entry for the default cohort: absence of an offer is
// the expected state there, not an error.
var specialOffers = map[domain.Cohort]domain.SpecialOffer{
	domain.CohortNewUser: {
		Title:       "Добро пожаловать!",
		Description: "Скидка 30% на первую подписку",
		Urgency:     "Только для новых учеников",
		Badge:       "-30%",
	},
	domain.CohortReturningUser: {
		Title:       "С возвращением",
		Description: "Скидка 10% за постоянство",
		Badge:       "-10%",
	},
	domain.CohortPremiumTrial: {
		Title:       "Продлите подписку",
		Description: "Вернитесь к занятиям со скидкой 40%",
		Urgency:     "Предложение для бывших подписчиков",
		Badge:       "-40%",
	},
	domain.CohortHighEngagement: {
		Title:       "Вы на серии!",
		Description: "Скидка 15% самым активным",
		Badge:       "-15%",
	},
	domain.CohortLowEngagement: {
		Title:       "Начните заново",
		Description: "Скидка 20%, чтобы втянуться",
		Badge:       "-20%",
	},
	domain.CohortChurned: {
		Title:       "Мы скучали",
		Description: "Скидка 50% на любой план",
		Urgency:     "Действует ограниченное время",
		Badge:       "-50%",
	},
}

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

// validateTables asserts that the static tables cover every cohort so a
// missing row fails at startup instead of producing a zero price.
func validateTables() error {
	if _, ok := cohortPricingTable[domain.CohortDefault]; !ok {
		return fmt.Errorf("pricing table has no default row")
	}

	for _, c := range domain.AllCohorts {
		row, ok := cohortPricingTable[c]
		if !ok {
			return fmt.Errorf("pricing table missing cohort %q", c)
		}
		for _, d := range []domain.PlanDuration{domain.DurationMonth, domain.DurationQuarter, domain.DurationYear} {
			if row.Prices[d] <= 0 {
				return fmt.Errorf("pricing table cohort %q has non-positive price for %q", c, d)
			}
			if row.OriginalPrices[d] <= 0 {
				return fmt.Errorf("pricing table cohort %q has non-positive original price for %q", c, d)
			}
		}
		if row.DiscountPercent < 0 || row.DiscountPercent > 100 {
			return fmt.Errorf("pricing table cohort %q has discount %d out of range", c, row.DiscountPercent)
		}
	}
	return nil
}

// PricingFor is total: any cohort outside the table falls back to the
// default row.
func PricingFor(cohort domain.Cohort) domain.CohortPricing {
	if row, ok := cohortPricingTable[cohort]; ok {
		return row
	}
	return cohortPricingTable[domain.CohortDefault]
}

// OfferFor returns the special offer for a cohort, or nil. The default
// cohort intentionally has no offer.
func OfferFor(cohort domain.Cohort) *domain.SpecialOffer {
	if offer, ok := specialOffers[cohort]; ok {
		o := offer
		return &o
	}
	return nil
}
