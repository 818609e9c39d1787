package pricing

import (
	"testing"
	"time"

	domain "lingvo-service/internal/domain/pricing"

	"go.uber.org/zap"
)

func i64(v int64) *int64 { return &v }

func TestToStarsLinearConversion(t *testing.T) {
	p := NewProjector(180)

	cases := []struct {
		kopecks int64
		want    int64
	}{
		{180, 1},
		{29900, 166}, // 166.11
		{27000, 150},
		{90, 1}, // 0.5 rounds up
	}
	for _, tc := range cases {
		if got := p.ToStars(tc.kopecks); got != tc.want {
			t.Errorf("ToStars(%d) = %d, want %d", tc.kopecks, got, tc.want)
		}
	}
}

func TestWithStarsKeepsServerSuppliedFigures(t *testing.T) {
	p := NewProjector(180)
	prod := domain.PaywallProduct{
		ID:           "plan_month",
		Duration:     domain.DurationMonth,
		Price:        29900,
		PriceInStars: i64(250), // server rate differs from ours on purpose
	}

	got := p.WithStars(prod)
	if *got.PriceInStars != 250 {
		t.Fatalf("server-supplied stars price recomputed: got %d", *got.PriceInStars)
	}
	// The missing mirrors are still derived locally.
	if got.OriginalPriceInStars == nil || got.MonthlyEquivalentInStars == nil {
		t.Fatalf("missing stars mirrors were not derived: %+v", got)
	}
}

func TestWithStarsDerivesWithFallbacks(t *testing.T) {
	p := NewProjector(180)
	prod := domain.PaywallProduct{
		ID:       "plan_year",
		Duration: domain.DurationYear,
		Price:    167930,
	}

	got := p.WithStars(prod)
	want := p.ToStars(167930)
	if *got.PriceInStars != want {
		t.Fatalf("PriceInStars = %d, want %d", *got.PriceInStars, want)
	}
	// No original price and no monthly equivalent: both fall back to price.
	if *got.OriginalPriceInStars != want || *got.MonthlyEquivalentInStars != want {
		t.Fatalf("fallback derivation wrong: %+v", got)
	}
}

func TestDisplaySelectionBranchesOnCurrencyOnly(t *testing.T) {
	p := NewProjector(180)
	prod := domain.PaywallProduct{
		ID:                "plan_quarter",
		Duration:          domain.DurationQuarter,
		Price:             52430,
		OriginalPrice:     i64(74900),
		MonthlyEquivalent: i64(17477),
	}
	prod = p.WithStars(prod)

	if got := p.DisplayPrice(prod, domain.CurrencyRub); got != 52430 {
		t.Fatalf("rub price = %d", got)
	}
	if got := p.DisplayPrice(prod, domain.CurrencyStars); got != *prod.PriceInStars {
		t.Fatalf("stars price = %d, want %d", got, *prod.PriceInStars)
	}
	if got := p.DisplayOriginalPrice(prod, domain.CurrencyRub); *got != 74900 {
		t.Fatalf("rub original = %d", *got)
	}
	if got := p.DisplayMonthlyEquivalent(prod, domain.CurrencyStars); *got != *prod.MonthlyEquivalentInStars {
		t.Fatalf("stars monthly = %d", *got)
	}
}

func TestDisplayOriginalPriceAbsencePassesThroughInBase(t *testing.T) {
	p := NewProjector(180)
	prod := domain.PaywallProduct{ID: "plan_month", Duration: domain.DurationMonth, Price: 29900}

	if got := p.DisplayOriginalPrice(prod, domain.CurrencyRub); got != nil {
		t.Fatalf("absent original price should stay absent in base currency, got %d", *got)
	}
	if got := p.DisplayOriginalPrice(prod, domain.CurrencyStars); got == nil {
		t.Fatalf("stars original price should be derived from price")
	}
}

func TestBuildPaywall(t *testing.T) {
	svc := NewService(NewProjector(180), zap.NewNop())
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	resp := svc.BuildPaywall(domain.BehaviorSignals{IsFirstOpen: true}, now)
	if resp.Cohort != domain.CohortNewUser {
		t.Fatalf("cohort = %q, want new_user", resp.Cohort)
	}
	if len(resp.Products) != 3 {
		t.Fatalf("products = %d, want 3", len(resp.Products))
	}
	if resp.Offer == nil {
		t.Fatalf("new_user paywall has no offer")
	}

	for _, prod := range resp.Products {
		if prod.PriceInStars == nil || prod.MonthlyEquivalent == nil || prod.SavingsPercentage == nil {
			t.Errorf("product %s missing derived figures: %+v", prod.ID, prod)
		}
		if prod.Duration == domain.DurationMonth && *prod.SavingsPercentage != 0 {
			t.Errorf("monthly plan savings = %d, want 0", *prod.SavingsPercentage)
		}
		if prod.Duration == domain.DurationYear && *prod.SavingsPercentage <= 0 {
			t.Errorf("yearly plan savings = %d, want positive", *prod.SavingsPercentage)
		}
	}

	// Default cohort: no offer, no discount.
	resp = svc.BuildPaywall(domain.BehaviorSignals{}, now)
	if resp.Cohort != domain.CohortDefault {
		t.Fatalf("cohort = %q, want default", resp.Cohort)
	}
	if resp.Offer != nil {
		t.Fatalf("default cohort got an offer: %+v", resp.Offer)
	}
	for _, prod := range resp.Products {
		if prod.Discount != nil {
			t.Errorf("default cohort product %s has discount", prod.ID)
		}
		if prod.OriginalPrice != nil {
			t.Errorf("default cohort product %s has original price", prod.ID)
		}
	}
}
