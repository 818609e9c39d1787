// internal/handlers/payment/payment_handler.go
package payment

import (
	"errors"

	domain "lingvo-service/internal/domain/payment"
	"lingvo-service/internal/domain/pricing"
	"lingvo-service/internal/middleware"
	xerrors "lingvo-service/internal/pkg/errors"
	"lingvo-service/internal/pkg/response"
	paymentsvc "lingvo-service/internal/service/payment"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	svc *paymentsvc.Service
}

func NewPaymentHandler(svc *paymentsvc.Service) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Create opens a ruble payment and returns the provider checkout URL.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req pricing.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result, err := h.svc.CreatePayment(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, xerrors.ErrInvalidInput) {
			response.BadRequest(c, "invalid payment request", err)
			return
		}
		response.Internal(c, "failed to create payment", err)
		return
	}
	response.OK(c, "payment created", result)
}

// CreateStars opens a Telegram Stars invoice.
func (h *PaymentHandler) CreateStars(c *gin.Context) {
	var req pricing.CreateStarsPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result := h.svc.CreateStarsPayment(c.Request.Context(), middleware.UserID(c), req)
	response.OK(c, "stars invoice", result)
}

// Webhook settles a payment from the provider callback. Unauthenticated;
// idempotency comes from event-id dedupe in the service.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var req domain.WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid webhook payload", err)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), req); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "unknown payment")
			return
		}
		response.Internal(c, "failed to process webhook", err)
		return
	}
	response.OK(c, "processed", nil)
}
