// internal/handlers/auth/auth_handler.go
package auth

import (
	"lingvo-service/internal/domain/auth"
	"lingvo-service/internal/pkg/response"
	authsvc "lingvo-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	svc *authsvc.Service
}

func NewAuthHandler(svc *authsvc.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// LoginTelegram exchanges Mini App initData for a session token.
func (h *AuthHandler) LoginTelegram(c *gin.Context) {
	var req auth.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result, err := h.svc.LoginTelegram(req.InitData)
	if err != nil {
		response.Unauthorized(c, "authentication failed")
		return
	}

	response.OK(c, "authenticated", result)
}

// LoginAdmin exchanges operator credentials for an admin token.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req auth.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	result, err := h.svc.LoginAdmin(req.Username, req.Password)
	if err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	response.OK(c, "authenticated", result)
}
