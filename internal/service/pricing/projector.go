// internal/service/pricing/projector.go
package pricing

import (
	"math"

	domain "lingvo-service/internal/domain/pricing"
)

// Projector converts base-currency (kopeck) amounts into Telegram Stars
// using a fixed linear rate. Server-supplied stars figures always take
// precedence over local conversion: the server applies its own exchange
// rate and recomputing here would drift from it.
type Projector struct {
	// KopecksPerStar is the fixed conversion rate, e.g. 180 means one star
	// costs 1.80 rubles.
	KopecksPerStar int64
}

const DefaultKopecksPerStar = 180

func NewProjector(kopecksPerStar int64) Projector {
	if kopecksPerStar <= 0 {
		kopecksPerStar = DefaultKopecksPerStar
	}
	return Projector{KopecksPerStar: kopecksPerStar}
}

// ToStars converts a kopeck amount to stars.
func (p Projector) ToStars(kopecks int64) int64 {
	return int64(math.Round(float64(kopecks) / float64(p.KopecksPerStar)))
}

// WithStars returns a copy of the product with all stars fields populated.
// Fields already present (server-supplied) are kept unmodified; missing ones
// are derived independently, original price and monthly equivalent falling
// back to the price when absent.
func (p Projector) WithStars(prod domain.PaywallProduct) domain.PaywallProduct {
	if prod.PriceInStars == nil {
		v := p.ToStars(prod.Price)
		prod.PriceInStars = &v
	}
	if prod.OriginalPriceInStars == nil {
		base := prod.Price
		if prod.OriginalPrice != nil {
			base = *prod.OriginalPrice
		}
		v := p.ToStars(base)
		prod.OriginalPriceInStars = &v
	}
	if prod.MonthlyEquivalentInStars == nil {
		base := prod.Price
		if prod.MonthlyEquivalent != nil {
			base = *prod.MonthlyEquivalent
		}
		v := p.ToStars(base)
		prod.MonthlyEquivalentInStars = &v
	}
	return prod
}

// DisplayPrice branches solely on the selected currency.
func (p Projector) DisplayPrice(prod domain.PaywallProduct, cur domain.DisplayCurrency) int64 {
	if cur == domain.CurrencyStars {
		if prod.PriceInStars != nil {
			return *prod.PriceInStars
		}
		return p.ToStars(prod.Price)
	}
	return prod.Price
}

// DisplayOriginalPrice returns the original price in the selected currency.
// In the base currency absence passes through unchanged; in stars the value
// is derived from the price when no original price exists.
func (p Projector) DisplayOriginalPrice(prod domain.PaywallProduct, cur domain.DisplayCurrency) *int64 {
	if cur == domain.CurrencyStars {
		if prod.OriginalPriceInStars != nil {
			return prod.OriginalPriceInStars
		}
		base := prod.Price
		if prod.OriginalPrice != nil {
			base = *prod.OriginalPrice
		}
		v := p.ToStars(base)
		return &v
	}
	return prod.OriginalPrice
}

// DisplayMonthlyEquivalent returns the monthly equivalent in the selected
// currency with the same absence semantics as DisplayOriginalPrice.
func (p Projector) DisplayMonthlyEquivalent(prod domain.PaywallProduct, cur domain.DisplayCurrency) *int64 {
	if cur == domain.CurrencyStars {
		if prod.MonthlyEquivalentInStars != nil {
			return prod.MonthlyEquivalentInStars
		}
		base := prod.Price
		if prod.MonthlyEquivalent != nil {
			base = *prod.MonthlyEquivalent
		}
		v := p.ToStars(base)
		return &v
	}
	return prod.MonthlyEquivalent
}
