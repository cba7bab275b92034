package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jointoit/events-api/internal/config"
	"github.com/jointoit/events-api/internal/handler"
	"github.com/jointoit/events-api/internal/metrics"
	"github.com/jointoit/events-api/internal/middleware"
	"github.com/jointoit/events-api/internal/repository"
	"github.com/jointoit/events-api/internal/service"
	"github.com/jointoit/events-api/pkg/apperror"
	"github.com/jointoit/events-api/pkg/email"
	jwtPkg "github.com/jointoit/events-api/pkg/jwt"
	"github.com/jointoit/events-api/pkg/qrcode"
	"github.com/jointoit/events-api/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config *config.Config
	DB     *gorm.DB
	Logger *zap.Logger
	// Notifier overrides the Resend email service built from Config.
	Notifier service.RegistrationNotifier
}

// New wires repositories, services and handlers into a Fiber app.
func New(deps Dependencies) (*fiber.App, error) {
	cfg := deps.Config
	logger := deps.Logger

	tokens, err := jwtPkg.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	if err != nil {
		return nil, err
	}

	notifier := deps.Notifier
	if notifier == nil {
		emailService := email.NewEmailService(email.Config{
			APIKey:   cfg.Email.ResendAPIKey,
			From:     cfg.Email.FromAddress,
			FromName: cfg.Email.FromName,
		}, logger)
		if !emailService.Enabled() {
			logger.Warn("RESEND_API_KEY not set, registration emails are only logged")
		}
		notifier = emailService
	}

	// Repositories
	userRepo := repository.NewUserRepository(deps.DB)
	eventRepo := repository.NewEventRepository(deps.DB)
	registrationRepo := repository.NewRegistrationRepository(deps.DB)

	// Services
	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	eventService := service.NewEventService(eventRepo, registrationRepo, notifier, logger)
	qrService := qrcode.NewQRService(cfg.PublicBaseURL)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	eventHandler := handler.NewEventHandler(eventService, qrService, validator)
	healthHandler := handler.NewHealthHandler(deps.DB, logger)

	metrics.Init()

	app := fiber.New(fiber.Config{
		AppName:               "events-api",
		ErrorHandler:          apperror.Handler(logger),
		DisableStartupMessage: true,
	})

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(middleware.RequestLogger(logger))
	app.Use(metrics.Middleware())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	}))

	app.Get("/health", healthHandler.Health)
	app.Get("/metrics", metrics.Handler())

	// Token routes authenticate by body, not by bearer header.
	window := cfg.TokenRateLimit.Window
	token := app.Group("/token", limiter.New(limiter.Config{
		Max:        cfg.TokenRateLimit.Max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			wait, err := strconv.Atoi(c.GetRespHeader(fiber.HeaderRetryAfter))
			if err != nil || wait <= 0 {
				wait = int(window.Seconds())
			}
			return apperror.Throttled(wait)
		},
	}))
	token.Post("/", authHandler.ObtainToken)
	token.Post("/refresh", authHandler.RefreshToken)
	token.Post("/verify", authHandler.VerifyToken)

	app.Use(middleware.AuthMiddleware(authService))

	app.Post("/users", userHandler.CreateUser)

	events := app.Group("/events")
	events.Get("/", eventHandler.ListEvents)
	events.Post("/", middleware.RequireAuth(), eventHandler.CreateEvent)
	events.Get("/:id", eventHandler.GetEvent)
	events.Put("/:id", middleware.RequireAuth(), eventHandler.UpdateEvent)
	events.Patch("/:id", middleware.RequireAuth(), eventHandler.PartialUpdateEvent)
	events.Delete("/:id", middleware.RequireAuth(), eventHandler.DeleteEvent)
	events.Post("/:id/register", middleware.RequireAuth(), eventHandler.RegisterForEvent)
	events.Get("/:id/qrcode", eventHandler.GetEventQRCode)

	return app, nil
}
