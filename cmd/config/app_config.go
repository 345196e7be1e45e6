package config

import (
	"Expiry-Reminder/domain"
	"Expiry-Reminder/internal/api/handlers"
	"Expiry-Reminder/internal/api/routes"
	"Expiry-Reminder/internal/metrics"
	"Expiry-Reminder/internal/middleware"
	"Expiry-Reminder/internal/utils"
	"Expiry-Reminder/internal/utils/cache"
	"Expiry-Reminder/internal/utils/storage"
	"Expiry-Reminder/pkg/item"
	"Expiry-Reminder/pkg/jwt"
	"Expiry-Reminder/pkg/notification"
	"Expiry-Reminder/pkg/ocr"
	"Expiry-Reminder/pkg/push"
	"Expiry-Reminder/pkg/receipt"
	"Expiry-Reminder/pkg/shelflife"
	"Expiry-Reminder/pkg/user"
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Providers builds the external integrations selected by configuration.
// The Firebase app is shared between auth and FCM and created on first use.
type Providers struct {
	logger      zerolog.Logger
	httpClient  *http.Client
	firebaseApp *firebase.App
}

func NewProviders(logger zerolog.Logger) *Providers {
	return &Providers{
		logger:     logger,
		httpClient: &http.Client{Timeout: utils.ExternalTimeout()},
	}
}

func (p *Providers) sharedFirebase(ctx context.Context) (*firebase.App, error) {
	if p.firebaseApp != nil {
		return p.firebaseApp, nil
	}
	var opts []option.ClientOption
	if path := utils.GetConfig("FIREBASE_CREDENTIALS"); path != "" {
		opts = append(opts, option.WithCredentialsFile(path))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase: %w", err)
	}
	p.firebaseApp = app
	return app, nil
}

func (p *Providers) TokenVerifier(ctx context.Context) (jwt.TokenVerifier, error) {
	switch provider := utils.GetConfig("AUTH_PROVIDER"); provider {
	case "jwt":
		secret := utils.GetConfig("JWT_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("JWT_SECRET is required for the jwt auth provider")
		}
		return jwt.NewJWTService(secret), nil
	case "firebase":
		app, err := p.sharedFirebase(ctx)
		if err != nil {
			return nil, err
		}
		return jwt.NewFirebaseVerifier(ctx, app)
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", provider)
	}
}

func (p *Providers) PushTransport(ctx context.Context) (push.Transport, error) {
	switch provider := utils.GetConfig("PUSH_PROVIDER"); provider {
	case "expo":
		return push.NewExpoTransport(utils.GetConfig("EXPO_PUSH_URL"), p.httpClient), nil
	case "fcm":
		app, err := p.sharedFirebase(ctx)
		if err != nil {
			return nil, err
		}
		return push.NewFCMTransport(ctx, app)
	default:
		return nil, fmt.Errorf("unknown PUSH_PROVIDER %q", provider)
	}
}

func (p *Providers) OCREngine(ctx context.Context) (ocr.Engine, error) {
	switch provider := utils.GetConfig("OCR_PROVIDER"); provider {
	case "gemini":
		return ocr.NewGemini(ctx, utils.GetConfig("GEMINI_API_KEY"), utils.GetConfig("GEMINI_MODEL"))
	case "http":
		url := utils.GetConfig("AI_MODEL_URL")
		if url == "" {
			return nil, fmt.Errorf("AI_MODEL_URL is required for the http ocr provider")
		}
		return ocr.NewHTTPEngine(url, p.httpClient), nil
	default:
		return nil, fmt.Errorf("unknown OCR_PROVIDER %q", provider)
	}
}

func (p *Providers) ShelfLifeService() shelflife.ShelfLifeService {
	var resultCache shelflife.Cache
	if client := cache.NewRedisClient(utils.GetConfig("REDIS_ADDR")); client != nil {
		resultCache = cache.NewRedisShelfLifeCache(client)
	}
	lookup := shelflife.NewOpenFoodFactsClient(utils.GetConfig("OFF_SEARCH_URL"), p.httpClient)
	return shelflife.NewShelfLifeService(
		lookup,
		resultCache,
		utils.ShelfLifeCacheTTL(),
		domain.ShelfLifeCategories,
		utils.ExternalTimeout(),
		p.logger.With().Str("component", "shelflife").Logger(),
	)
}

func (p *Providers) NotificationService(ctx context.Context, db *gorm.DB) (notification.NotificationService, error) {
	transport, err := p.PushTransport(ctx)
	if err != nil {
		return nil, err
	}
	return notification.NewNotificationService(
		notification.NewNotificationRepository(db),
		transport,
		utils.ExternalTimeout(),
		p.logger.With().Str("component", "sweeper").Logger(),
		nil,
	), nil
}

// NewApp wires the HTTP server. The returned cleanup releases the OCR engine.
func NewApp(ctx context.Context, db *gorm.DB, log zerolog.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// setting up access logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile("./logs/app.log", os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	providers := NewProviders(log)

	// utils
	s3, err := storage.NewAwsS3(ctx,
		utils.GetConfig("AWS_S3_BUCKET"),
		utils.GetConfig("AWS_S3_REGION"),
		utils.GetConfig("AWS_ACCESS_KEY"),
		utils.GetConfig("AWS_SECRET_KEY"),
	)
	if err != nil {
		return nil, nil, err
	}
	verifier, err := providers.TokenVerifier(ctx)
	if err != nil {
		return nil, nil, err
	}
	engine, err := providers.OCREngine(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := engine.Close(); err != nil {
			log.Warn().Err(err).Msg("closing ocr engine")
		}
		file.Close()
	}

	// Repository
	receiptRepository := receipt.NewReceiptRepository(db)
	itemRepository := item.NewItemRepository(db)
	userRepository := user.NewUserRepository(db)

	// Service
	extractor := receipt.NewItemExtractor(providers.ShelfLifeService(), nil)
	receiptService := receipt.NewReceiptService(
		receiptRepository,
		engine,
		extractor,
		s3,
		utils.ExternalTimeout(),
		log.With().Str("component", "ingestion").Logger(),
	)
	itemService := item.NewItemService(itemRepository)
	userService := user.NewUserService(userRepository)
	notificationService, err := providers.NotificationService(ctx, db)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// Handler
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	userHandler := handlers.NewUserHandler(userService, validator)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// routes
	routesConfig := routes.Config{
		App:                 app,
		ReceiptHandler:      receiptHandler,
		ItemHandler:         itemHandler,
		UserHandler:         userHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		TokenVerifier:       verifier,
	}
	routesConfig.Setup()
	return app, cleanup, nil
}
