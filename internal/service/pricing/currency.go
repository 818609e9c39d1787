// internal/service/pricing/currency.go
package pricing

import (
	"fmt"
	"math"

	domain "lingvo-service/internal/domain/pricing"
)

// RublesToKopecks converts whole rubles to kopecks.
func RublesToKopecks(rubles int64) int64 {
	return rubles * 100
}

// KopecksToRubles converts kopecks to whole rubles, rounding to the nearest
// ruble. Round-trips exactly with RublesToKopecks for non-negative amounts.
func KopecksToRubles(kopecks int64) int64 {
	return int64(math.Round(float64(kopecks) / 100))
}

// FormatRubles renders a kopeck amount for display, e.g. "299 ₽".
func FormatRubles(kopecks int64) string {
	return fmt.Sprintf("%d ₽", KopecksToRubles(kopecks))
}

// MonthlyEquivalent is the per-month price of a plan: the price itself for a
// monthly plan, otherwise the plan price divided by its length in months,
// rounded to the nearest unit.
func MonthlyEquivalent(price int64, duration domain.PlanDuration) int64 {
	switch duration {
	case domain.DurationQuarter:
		return int64(math.Round(float64(price) / 3))
	case domain.DurationYear:
		return int64(math.Round(float64(price) / 12))
	default:
		return price
	}
}

// SavingsPercentage is how much cheaper a plan's monthly equivalent is than
// the monthly base price, as a rounded percentage. Zero for monthly plans.
// monthlyBasePrice must be positive; callers guard this.
func SavingsPercentage(monthlyBasePrice, planPrice int64, duration domain.PlanDuration) int {
	if duration == domain.DurationMonth {
		return 0
	}
	monthly := MonthlyEquivalent(planPrice, duration)
	return int(math.Round(100 * float64(monthlyBasePrice-monthly) / float64(monthlyBasePrice)))
}
