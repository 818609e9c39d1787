// internal/domain/pricing/entity.go
package pricing

import (
	"time"
)

type PlanDuration string

const (
	DurationMonth   PlanDuration = "month"
	DurationQuarter PlanDuration = "quarter"
	DurationYear    PlanDuration = "year"
)

type Cohort string

const (
	CohortNewUser        Cohort = "new_user"
	CohortReturningUser  Cohort = "returning_user"
	CohortPremiumTrial   Cohort = "premium_trial"
	CohortHighEngagement Cohort = "high_engagement"
	CohortLowEngagement  Cohort = "low_engagement"
	CohortChurned        Cohort = "churned"
	CohortDefault        Cohort = "default"
)

// AllCohorts lists every cohort the classifier can produce. The pricing and
// offer tables are checked against this list at startup.
var AllCohorts = []Cohort{
	CohortNewUser,
	CohortReturningUser,
	CohortPremiumTrial,
	CohortHighEngagement,
	CohortLowEngagement,
	CohortChurned,
	CohortDefault,
}

type DisplayCurrency string

const (
	CurrencyRub   DisplayCurrency = "RUB"
	CurrencyStars DisplayCurrency = "XTR"
)

// BehaviorSignals are the inputs to cohort classification. A zero value is
// valid and classifies as the default cohort.
type BehaviorSignals struct {
	IsFirstOpen         bool       `json:"is_first_open"`
	LastActiveDate      *time.Time `json:"last_active_date,omitempty"`
	LessonCount         int        `json:"lesson_count"`
	HasSubscription     bool       `json:"has_subscription"`
	SubscriptionExpired bool       `json:"subscription_expired"`
}

// CohortPricing is one row of the static cohort pricing table. All amounts
// are integral kopecks.
type CohortPricing struct {
	Cohort          Cohort                       `json:"cohort"`
	Prices          map[PlanDuration]int64       `json:"prices"`
	OriginalPrices  map[PlanDuration]int64       `json:"original_prices"`
	PromoCode       string                       `json:"promo_code,omitempty"`
	DiscountPercent int                          `json:"discount_percent"`
}

type SpecialOffer struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Urgency     string `json:"urgency,omitempty"`
	Badge       string `json:"badge,omitempty"`
}

// PaywallProduct is one purchasable plan as shown on the paywall. Base
// amounts are kopecks; the *InStars mirrors are either server-supplied or
// derived locally, see the projector.
type PaywallProduct struct {
	ID                       string       `json:"id"`
	Duration                 PlanDuration `json:"duration"`
	Price                    int64        `json:"price"`
	OriginalPrice            *int64       `json:"original_price,omitempty"`
	MonthlyEquivalent        *int64       `json:"monthly_equivalent,omitempty"`
	PriceInStars             *int64       `json:"price_in_stars,omitempty"`
	OriginalPriceInStars     *int64       `json:"original_price_in_stars,omitempty"`
	MonthlyEquivalentInStars *int64       `json:"monthly_equivalent_in_stars,omitempty"`
	Discount                 *int         `json:"discount,omitempty"`
	SavingsPercentage        *int         `json:"savings_percentage,omitempty"`
}
