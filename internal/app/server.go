// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"lingvo-service/internal/config"
	"lingvo-service/internal/db"
	authHandler "lingvo-service/internal/handlers/auth"
	lessonHandler "lingvo-service/internal/handlers/lesson"
	paymentHandler "lingvo-service/internal/handlers/payment"
	paywallHandler "lingvo-service/internal/handlers/paywall"
	promoHandler "lingvo-service/internal/handlers/promo"
	"lingvo-service/internal/middleware"
	"lingvo-service/internal/pkg/jwt"
	"lingvo-service/internal/repository/postgres"
	authUsecase "lingvo-service/internal/service/auth"
	"lingvo-service/internal/service/content"
	paymentUsecase "lingvo-service/internal/service/payment"
	pricingUsecase "lingvo-service/internal/service/pricing"
	promoUsecase "lingvo-service/internal/service/promo"
	"lingvo-service/internal/ws"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start(ctx context.Context) error {
	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := db.ConnectPostgres(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer pool.Close()

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redisClient.Close()

	// ----- JWT Manager -----
	tokens, err := jwt.NewManager(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTTTL)
	if err != nil {
		return fmt.Errorf("failed to create jwt manager: %w", err)
	}

	// ----- Repositories -----
	promoRepo := postgres.NewPromoCodeRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)

	// ----- WebSocket Hub -----
	hub := ws.NewHub(logger)
	go hub.Run(ctx)

	// ----- Services -----
	authService := authUsecase.NewService(tokens, s.cfg.BotToken, authUsecase.AdminCredentials{
		Username:     s.cfg.AdminUsername,
		PasswordHash: s.cfg.AdminPasswordHash,
	}, logger)

	projector := pricingUsecase.NewProjector(s.cfg.KopecksPerStar)
	pricingService := pricingUsecase.NewService(projector, logger)

	promoService, err := promoUsecase.NewService(ctx, promoRepo, logger)
	if err != nil {
		return fmt.Errorf("failed to load promo codes: %w", err)
	}

	contentClient := content.NewClient(
		s.cfg.ContentAPIBase,
		&http.Client{Timeout: 30 * time.Second},
		redisClient,
		logger,
	)

	invoices := paymentUsecase.NewBotClient(s.cfg.BotToken, &http.Client{Timeout: 30 * time.Second})
	paymentService := paymentUsecase.NewService(
		paymentRepo,
		pricingService,
		promoService,
		hub,
		redisClient,
		invoices,
		s.cfg.PaymentURLTemplate,
		logger,
	)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService)
	lessonHandlerInst := lessonHandler.NewLessonHandler(contentClient)
	paywallHandlerInst := paywallHandler.NewPaywallHandler(pricingService)
	promoHandlerInst := promoHandler.NewPromoHandler(promoService, pricingService)
	paymentHandlerInst := paymentHandler.NewPaymentHandler(paymentService)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	s.engine.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
	)

	// ----- Router -----
	handlers := &Handlers{
		Auth:           authHandlerInst,
		Lesson:         lessonHandlerInst,
		Paywall:        paywallHandlerInst,
		Promo:          promoHandlerInst,
		Payment:        paymentHandlerInst,
		WS:             ws.Handler(hub, logger),
		AuthMiddleware: authMiddleware,
	}
	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
	return s.engine.Run(s.cfg.HTTPAddr)
}
