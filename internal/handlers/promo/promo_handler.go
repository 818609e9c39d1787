// internal/handlers/promo/promo_handler.go
package promo

import (
	"errors"
	"strings"
	"time"

	"lingvo-service/internal/domain/pricing"
	domain "lingvo-service/internal/domain/promo"
	xerrors "lingvo-service/internal/pkg/errors"
	"lingvo-service/internal/pkg/response"
	pricingsvc "lingvo-service/internal/service/pricing"
	promosvc "lingvo-service/internal/service/promo"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	promos  *promosvc.Service
	pricing *pricingsvc.Service
}

func NewPromoHandler(promos *promosvc.Service, pricingSvc *pricingsvc.Service) *PromoHandler {
	return &PromoHandler{promos: promos, pricing: pricingSvc}
}

// Validate checks a promo code for the caller's cohort and plan. User input
// is upper-cased here; stored codes are upper-case and matching is exact.
func (h *PromoHandler) Validate(c *gin.Context) {
	var req domain.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	userCohort := req.Cohort
	if userCohort == "" {
		userCohort = pricing.CohortDefault
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	matched := h.promos.Validate(code, userCohort, req.Plan)
	if matched == nil {
		response.NotFound(c, "promo code is not valid")
		return
	}

	price := h.pricing.PriceFor(userCohort, req.Plan)
	response.OK(c, "promo code valid", domain.ValidateResponse{
		Code:            matched.Code,
		DiscountType:    matched.DiscountType,
		DiscountValue:   matched.DiscountValue,
		Price:           price,
		DiscountedPrice: promosvc.ApplyDiscount(price, matched),
	})
}

// List returns all codes. Admin only.
func (h *PromoHandler) List(c *gin.Context) {
	response.OK(c, "promo codes", h.promos.List())
}

// Create adds a new code. Admin only.
func (h *PromoHandler) Create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	code := domain.PromoCode{
		Code:            strings.ToUpper(strings.TrimSpace(req.Code)),
		DiscountType:    req.DiscountType,
		DiscountValue:   req.DiscountValue,
		MaxUses:         req.MaxUses,
		ApplicablePlans: req.ApplicablePlans,
		Cohorts:         req.Cohorts,
		IsActive:        true,
	}
	if req.DiscountType == domain.DiscountPercentage && req.DiscountValue > 100 {
		response.BadRequest(c, "percentage discount cannot exceed 100", nil)
		return
	}
	if req.ValidUntil != "" {
		t, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			response.BadRequest(c, "valid_until must be RFC3339", err)
			return
		}
		code.ValidUntil = &t
	}

	if err := h.promos.Create(c.Request.Context(), &code); err != nil {
		response.Internal(c, "failed to create promo code", err)
		return
	}
	response.OK(c, "promo code created", code)
}

// Delete removes a code. Admin only.
func (h *PromoHandler) Delete(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))

	if err := h.promos.Delete(c.Request.Context(), code); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "promo code not found")
			return
		}
		response.Internal(c, "failed to delete promo code", err)
		return
	}
	response.OK(c, "promo code deleted", nil)
}
