// internal/handlers/paywall/paywall_handler.go
package paywall

import (
	"time"

	domain "lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/pkg/response"
	"lingvo-service/internal/service/pricing"

	"github.com/gin-gonic/gin"
)

type PaywallHandler struct {
	pricing *pricing.Service
}

func NewPaywallHandler(pricingSvc *pricing.Service) *PaywallHandler {
	return &PaywallHandler{pricing: pricingSvc}
}

// Get classifies the caller from the behavior signals in the query string and
// returns the cohort paywall with ruble and stars figures.
func (h *PaywallHandler) Get(c *gin.Context) {
	var req domain.PaywallRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid signals", err)
		return
	}

	signals := domain.BehaviorSignals{
		IsFirstOpen:         req.IsFirstOpen,
		LessonCount:         req.LessonCount,
		HasSubscription:     req.HasSubscription,
		SubscriptionExpired: req.SubscriptionExpired,
	}
	if req.LastActiveDate != "" {
		t, err := time.Parse(time.RFC3339, req.LastActiveDate)
		if err != nil {
			response.BadRequest(c, "last_active_date must be RFC3339", err)
			return
		}
		signals.LastActiveDate = &t
	}

	result := h.pricing.BuildPaywall(signals, time.Now())
	response.OK(c, "paywall", result)
}
