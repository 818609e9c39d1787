// internal/service/cohort/classifier.go
package cohort

import (
	"time"

	"lingvo-service/internal/domain/pricing"
)

// churnThresholdDays is the number of whole days of inactivity after which a
// user counts as churned.
const churnThresholdDays = 30

// Classify derives a user cohort from behavioral signals. It is pure and
// total: every input maps to exactly one cohort and the call never fails.
//
// The rules are evaluated first-match-wins and their order is a product
// decision, not an optimization. A first open always wins over engagement
// counters, and a long absence outranks a high lesson count.
func Classify(signals pricing.BehaviorSignals) pricing.Cohort {
	return ClassifyAt(signals, time.Now())
}

// ClassifyAt is Classify with an explicit clock.
func ClassifyAt(signals pricing.BehaviorSignals, now time.Time) pricing.Cohort {
	if signals.IsFirstOpen {
		return pricing.CohortNewUser
	}

	if signals.SubscriptionExpired {
		return pricing.CohortPremiumTrial
	}

	if signals.LastActiveDate != nil && daysSince(*signals.LastActiveDate, now) > churnThresholdDays {
		return pricing.CohortChurned
	}

	if signals.LessonCount > 20 {
		return pricing.CohortHighEngagement
	}

	if signals.LessonCount > 0 && signals.LessonCount < 5 {
		return pricing.CohortLowEngagement
	}

	if signals.LessonCount > 0 {
		return pricing.CohortReturningUser
	}

	return pricing.CohortDefault
}

// daysSince is the elapsed time between t and now truncated to whole days,
// independent of calendar boundaries.
func daysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}
