// internal/domain/pricing/dto.go
package pricing

type PaywallRequest struct {
	IsFirstOpen         bool   `form:"is_first_open"`
	LastActiveDate      string `form:"last_active_date"` // RFC3339, optional
	LessonCount         int    `form:"lesson_count" binding:"min=0"`
	HasSubscription     bool   `form:"has_subscription"`
	SubscriptionExpired bool   `form:"subscription_expired"`
	Currency            string `form:"currency" binding:"omitempty,oneof=RUB XTR"`
}

type PaywallResponse struct {
	Cohort   Cohort           `json:"cohort"`
	Pricing  CohortPricing    `json:"pricing"`
	Products []PaywallProduct `json:"products"`
	Offer    *SpecialOffer    `json:"offer,omitempty"`
}

type CreatePaymentRequest struct {
	Product   PlanDuration `json:"product" binding:"required,oneof=month quarter year"`
	ReturnURL string       `json:"return_url" binding:"required,url"`
	Currency  string       `json:"currency" binding:"omitempty,oneof=RUB"`
	PromoCode string       `json:"promo_code" binding:"omitempty,max=64"`
	Cohort    Cohort       `json:"cohort" binding:"omitempty,oneof=new_user returning_user premium_trial high_engagement low_engagement churned default"`
}

type CreatePaymentResponse struct {
	PaymentID  string `json:"payment_id"`
	PaymentURL string `json:"payment_url"`
}

type CreateStarsPaymentRequest struct {
	Product      PlanDuration `json:"product" binding:"required,oneof=month quarter year"`
	PriceInStars int64        `json:"price_in_stars" binding:"required,min=1"`
	Description  string       `json:"description" binding:"required,max=255"`
}

type StarsPaymentResponse struct {
	Success    bool   `json:"success"`
	InvoiceURL string `json:"invoice_url,omitempty"`
	Error      string `json:"error,omitempty"`
}
