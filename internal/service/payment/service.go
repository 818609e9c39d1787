// internal/service/payment/service.go
package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lingvo-service/internal/domain/payment"
	domain "lingvo-service/internal/domain/pricing"
	xerrors "lingvo-service/internal/pkg/errors"
	"lingvo-service/internal/service/pricing"
	"lingvo-service/internal/service/promo"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const webhookDedupeTTL = 24 * time.Hour

// Store is the persistence boundary for payments. Implemented by
// repository/postgres.PaymentRepository.
type Store interface {
	Create(ctx context.Context, p *payment.Payment) error
	FindByID(ctx context.Context, id string) (*payment.Payment, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) (*payment.Payment, error)
}

// Notifier pushes payment status events to connected clients. Implemented by
// ws.Hub.
type Notifier interface {
	NotifyPayment(userID int64, event payment.StatusEvent)
}

type Service struct {
	store       Store
	pricing     *pricing.Service
	promos      *promo.Service
	notifier    Notifier
	redis       *redis.Client
	invoices    InvoiceCreator
	urlTemplate string
	logger      *zap.Logger
}

// InvoiceCreator produces Telegram Stars invoice links. Implemented by
// BotClient; stubbed in tests.
type InvoiceCreator interface {
	CreateInvoiceLink(ctx context.Context, title, description, payload string, stars int64) (string, error)
}

func NewService(
	store Store,
	pricingSvc *pricing.Service,
	promos *promo.Service,
	notifier Notifier,
	redisClient *redis.Client,
	invoices InvoiceCreator,
	urlTemplate string,
	logger *zap.Logger,
) *Service {
	return &Service{
		store:       store,
		pricing:     pricingSvc,
		promos:      promos,
		notifier:    notifier,
		redis:       redisClient,
		invoices:    invoices,
		urlTemplate: urlTemplate,
		logger:      logger,
	}
}

func (s *Service) newPaymentID() string {
	return ulid.Make().String()
}

// CreatePayment opens a pending ruble payment and returns the provider
// checkout URL. The amount is the caller's cohort price with any valid promo
// code applied; an invalid code is ignored rather than rejected, the client
// already saw the validation verdict on the paywall.
func (s *Service) CreatePayment(ctx context.Context, userID int64, req domain.CreatePaymentRequest) (*domain.CreatePaymentResponse, error) {
	userCohort := req.Cohort
	if userCohort == "" {
		userCohort = domain.CohortDefault
	}

	amount := s.pricing.PriceFor(userCohort, req.Product)
	if amount <= 0 {
		return nil, fmt.Errorf("%w: unknown product %q", xerrors.ErrInvalidInput, req.Product)
	}

	var promoCode *string
	if req.PromoCode != "" {
		code := strings.ToUpper(req.PromoCode)
		if matched := s.promos.Validate(code, userCohort, req.Product); matched != nil {
			amount = promo.ApplyDiscount(amount, matched)
			promoCode = &matched.Code
		} else {
			s.logger.Info("ignoring invalid promo code on payment",
				zap.String("code", code),
				zap.Int64("user_id", userID),
			)
		}
	}

	p := &payment.Payment{
		ID:            s.newPaymentID(),
		UserID:        userID,
		Product:       req.Product,
		AmountKopecks: amount,
		Currency:      string(domain.CurrencyRub),
		Status:        payment.StatusPending,
		PromoCode:     promoCode,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to open payment: %w", err)
	}

	s.logger.Info("payment created",
		zap.String("payment_id", p.ID),
		zap.Int64("user_id", userID),
		zap.String("product", string(req.Product)),
		zap.Int64("amount_kopecks", amount),
	)

	return &domain.CreatePaymentResponse{
		PaymentID:  p.ID,
		PaymentURL: s.checkoutURL(p.ID, req.ReturnURL),
	}, nil
}

func (s *Service) checkoutURL(paymentID, returnURL string) string {
	url := strings.ReplaceAll(s.urlTemplate, "{payment_id}", paymentID)
	return strings.ReplaceAll(url, "{return_url}", returnURL)
}

// CreateStarsPayment opens a Telegram Stars invoice. Settlement happens
// inside Telegram; we record the attempt and hand back the invoice link.
func (s *Service) CreateStarsPayment(ctx context.Context, userID int64, req domain.CreateStarsPaymentRequest) *domain.StarsPaymentResponse {
	p := &payment.Payment{
		ID:     s.newPaymentID(),
		UserID: userID,
		// Stars invoices store the star amount; Currency flags the unit.
		Product:       req.Product,
		AmountKopecks: req.PriceInStars,
		Currency:      string(domain.CurrencyStars),
		Status:        payment.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Create(ctx, p); err != nil {
		s.logger.Error("failed to record stars payment", zap.Error(err))
		return &domain.StarsPaymentResponse{Success: false, Error: "failed to create payment"}
	}

	title := fmt.Sprintf("Подписка (%s)", req.Product)
	link, err := s.invoices.CreateInvoiceLink(ctx, title, req.Description, p.ID, req.PriceInStars)
	if err != nil {
		s.logger.Error("failed to create stars invoice",
			zap.String("payment_id", p.ID),
			zap.Error(err),
		)
		return &domain.StarsPaymentResponse{Success: false, Error: "failed to create invoice"}
	}

	return &domain.StarsPaymentResponse{Success: true, InvoiceURL: link}
}

// HandleWebhook settles a payment from a provider callback. Events are
// deduplicated by event id so provider retries stay idempotent.
func (s *Service) HandleWebhook(ctx context.Context, req payment.WebhookRequest) error {
	if s.redis != nil {
		fresh, err := s.redis.SetNX(ctx, "payment:webhook:"+req.EventID, 1, webhookDedupeTTL).Result()
		if err != nil {
			return fmt.Errorf("webhook dedupe check failed: %w", err)
		}
		if !fresh {
			s.logger.Info("duplicate webhook event ignored", zap.String("event_id", req.EventID))
			return nil
		}
	}

	if req.Status != "succeeded" {
		p, err := s.store.FindByID(ctx, req.PaymentID)
		if err != nil {
			return err
		}
		s.logger.Info("payment failed",
			zap.String("payment_id", p.ID),
			zap.Int64("user_id", p.UserID),
		)
		s.notifier.NotifyPayment(p.UserID, payment.StatusEvent{
			Type:      "payment_status",
			PaymentID: p.ID,
			Status:    payment.StatusFailed,
			Product:   string(p.Product),
		})
		return nil
	}

	p, err := s.store.MarkPaid(ctx, req.PaymentID, time.Now().UTC())
	if err != nil {
		return err
	}

	if p.PromoCode != nil {
		if err := s.promos.Redeem(ctx, *p.PromoCode); err != nil {
			// Settlement already happened; log and carry on.
			s.logger.Error("failed to redeem promo code",
				zap.String("code", *p.PromoCode),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("payment settled",
		zap.String("payment_id", p.ID),
		zap.Int64("user_id", p.UserID),
		zap.String("product", string(p.Product)),
	)

	s.notifier.NotifyPayment(p.UserID, payment.StatusEvent{
		Type:      "payment_status",
		PaymentID: p.ID,
		Status:    payment.StatusPaid,
		Product:   string(p.Product),
	})
	return nil
}
