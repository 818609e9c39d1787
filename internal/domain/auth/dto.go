// internal/domain/auth/dto.go
package auth

import "lingvo-service/internal/pkg/telegram"

type TelegramLoginRequest struct {
	InitData string `json:"init_data" binding:"required"`
}

type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string         `json:"token"`
	User  *telegram.User `json:"user,omitempty"`
}
