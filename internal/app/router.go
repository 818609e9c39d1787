// internal/app/router.go
package app

import (
	authHandler "lingvo-service/internal/handlers/auth"
	lessonHandler "lingvo-service/internal/handlers/lesson"
	paymentHandler "lingvo-service/internal/handlers/payment"
	paywallHandler "lingvo-service/internal/handlers/paywall"
	promoHandler "lingvo-service/internal/handlers/promo"
	"lingvo-service/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth           *authHandler.AuthHandler
	Lesson         *lessonHandler.LessonHandler
	Paywall        *paywallHandler.PaywallHandler
	Promo          *promoHandler.PromoHandler
	Payment        *paymentHandler.PaymentHandler
	WS             gin.HandlerFunc
	AuthMiddleware *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	wsRoute := r.Group("/ws")
	wsRoute.Use(h.AuthMiddleware.Auth())
	wsRoute.GET("", h.WS)

	// ==================== Public Auth Routes ====================
	auth := api.Group("/auth")
	{
		auth.POST("/telegram", h.Auth.LoginTelegram)
		auth.POST("/admin/login", h.Auth.LoginAdmin)
	}

	// ==================== Webhooks (provider-authenticated) ====================
	api.POST("/payment/webhook", h.Payment.Webhook)

	// ==================== Authenticated Routes ====================
	protected := api.Group("")
	protected.Use(h.AuthMiddleware.Auth())
	{
		protected.GET("/lessons", h.Lesson.List)
		protected.GET("/lessons/:ref", h.Lesson.Get)

		protected.GET("/paywall", h.Paywall.Get)
		protected.POST("/promo/validate", h.Promo.Validate)

		protected.POST("/payment", h.Payment.Create)
		protected.POST("/payment/stars", h.Payment.CreateStars)
	}

	// ==================== Admin Routes ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.Auth(), h.AuthMiddleware.RequireAdmin())
	{
		admin.GET("/promo-codes", h.Promo.List)
		admin.POST("/promo-codes", h.Promo.Create)
		admin.DELETE("/promo-codes/:code", h.Promo.Delete)
	}
}
