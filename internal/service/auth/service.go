// internal/service/auth/service.go
package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"lingvo-service/internal/domain/auth"
	xerrors "lingvo-service/internal/pkg/errors"
	"lingvo-service/internal/pkg/jwt"
	"lingvo-service/internal/pkg/telegram"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single operator account, configured via env. The
// password is stored as a bcrypt hash.
type AdminCredentials struct {
	Username     string
	PasswordHash string
}

type Service struct {
	tokens   *jwt.Manager
	botToken string
	admin    AdminCredentials
	logger   *zap.Logger
	nowFn    func() time.Time
}

func NewService(tokens *jwt.Manager, botToken string, admin AdminCredentials, logger *zap.Logger) *Service {
	return &Service{
		tokens:   tokens,
		botToken: botToken,
		admin:    admin,
		logger:   logger,
		nowFn:    time.Now,
	}
}

// LoginTelegram verifies Mini App initData and issues a session token for the
// embedded Telegram user.
func (s *Service) LoginTelegram(initData string) (*auth.LoginResponse, error) {
	user, err := telegram.VerifyInitData(initData, s.botToken, s.nowFn())
	if err != nil {
		s.logger.Warn("init data verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", xerrors.ErrUnauthorized, err)
	}

	token, err := s.tokens.Generate(user.ID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("telegram login", zap.Int64("user_id", user.ID))
	return &auth.LoginResponse{Token: token, User: user}, nil
}

// LoginAdmin checks the operator credentials and issues an admin token.
// Admin tokens carry user id 0; they exist only to gate promo management.
func (s *Service) LoginAdmin(username, password string) (*auth.LoginResponse, error) {
	if s.admin.Username == "" || s.admin.PasswordHash == "" {
		return nil, fmt.Errorf("%w: admin login is not configured", xerrors.ErrUnauthorized)
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(s.admin.PasswordHash), []byte(password))
	if !usernameOK || passwordErr != nil {
		s.logger.Warn("admin login rejected", zap.String("username", username))
		return nil, fmt.Errorf("%w: invalid credentials", xerrors.ErrUnauthorized)
	}

	token, err := s.tokens.Generate(0, true)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("admin login", zap.String("username", username))
	return &auth.LoginResponse{Token: token}, nil
}
