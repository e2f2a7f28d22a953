package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	billingusecases "habita/internal/application/billing/usecases"
	listingusecases "habita/internal/application/listing/usecases"
	userusecases "habita/internal/application/user/usecases"
	"habita/internal/infrastructure/auth"
	"habita/internal/infrastructure/config"
	"habita/internal/infrastructure/database"
	"habita/internal/infrastructure/email"
	"habita/internal/infrastructure/migration"
	"habita/internal/infrastructure/payment"
	"habita/internal/infrastructure/ratelimit"
	"habita/internal/infrastructure/repository"
	httpRouter "habita/internal/interfaces/http"
	"habita/internal/interfaces/http/handlers"
	"habita/internal/interfaces/http/middleware"
	"habita/internal/shared/biztime"
	"habita/internal/shared/db"
	"habita/internal/shared/logger"
	"habita/internal/shared/services/markdown"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Habita HTTP server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	logger.Info("starting server", "environment", env)

	if err := biztime.Init(""); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate || cfg.Server.Mode == gin.DebugMode {
		manager := migration.NewManager(cfg.Server.Mode, cfg.Database.Driver)
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting degraded", "error", err)
	}
	cancelPing()
	limiter := ratelimit.NewRedisRateLimiter(redisClient)

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	userRepo := repository.NewUserRepository(gormDB, log)
	entitlementRepo := repository.NewEntitlementRepository(gormDB, log)
	processedRepo := repository.NewProcessedPaymentRepository(gormDB, log)
	checkoutRepo := repository.NewCheckoutSessionRepository(gormDB, log)
	listingRepo := repository.NewListingRepository(gormDB, log)

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)

	var notifier email.Notifier = email.NoopNotifier{}
	if cfg.Email.Enabled {
		notifier = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			FrontendURL: cfg.Server.FrontendURL,
		})
	}

	paymentGateway := payment.NewClient(
		cfg.Payment.BaseURL,
		cfg.Payment.AccessToken,
		time.Duration(cfg.Payment.TimeoutSeconds)*time.Second,
		log.Named("payment"),
	)

	markdownSvc := markdown.NewService()

	// Billing use cases.
	handleWebhookUC := billingusecases.NewHandlePaymentWebhookUseCase(
		paymentGateway, userRepo, entitlementRepo, processedRepo, checkoutRepo,
		txManager, notifier, cfg.Billing.EntitlementDays, cfg.Payment.Currency, log.Named("billing"))
	initiateCheckoutUC := billingusecases.NewInitiateCheckoutUseCase(
		userRepo, checkoutRepo, paymentGateway,
		billingusecases.CheckoutURLs{
			NotificationURL: cfg.Server.BaseURL + "/api/payments/webhook",
			SuccessURL:      cfg.Server.FrontendURL + "/account/billing/success",
			FailureURL:      cfg.Server.FrontendURL + "/account/billing/failure",
			PendingURL:      cfg.Server.FrontendURL + "/account/billing/pending",
		},
		cfg.Payment.Currency,
		time.Duration(cfg.Billing.CheckoutTTLMinutes)*time.Minute,
		log.Named("billing"))
	resolveEntitlementUC := billingusecases.NewResolveEntitlementUseCase(entitlementRepo, log.Named("billing"))
	listPlansUC := billingusecases.NewListPlansUseCase(cfg.Payment.Currency, log.Named("billing"))
	grantUC := billingusecases.NewGrantEntitlementUseCase(userRepo, entitlementRepo, txManager, cfg.Billing.EntitlementDays, log.Named("billing"))
	adjustUC := billingusecases.NewAdjustEntitlementUseCase(entitlementRepo, log.Named("billing"))
	sweepUC := billingusecases.NewExpireSweepUseCase(entitlementRepo, checkoutRepo, log.Named("billing"))

	// User use cases.
	registerUC := userusecases.NewRegisterUseCase(userRepo, entitlementRepo, hasher, txManager, notifier, log.Named("user"))
	loginUC := userusecases.NewLoginUseCase(userRepo, hasher, jwtService, log.Named("user"))
	refreshUC := userusecases.NewRefreshTokenUseCase(jwtService, log.Named("user"))
	getProfileUC := userusecases.NewGetProfileUseCase(userRepo, log.Named("user"))
	updateProfileUC := userusecases.NewUpdateProfileUseCase(userRepo, log.Named("user"))
	changePasswordUC := userusecases.NewChangePasswordUseCase(userRepo, hasher, log.Named("user"))

	// Listing use cases.
	createListingUC := listingusecases.NewCreateListingUseCase(listingRepo, resolveEntitlementUC, markdownSvc, log.Named("listing"))
	updateListingUC := listingusecases.NewUpdateListingUseCase(listingRepo, markdownSvc, log.Named("listing"))
	publishListingUC := listingusecases.NewPublishListingUseCase(listingRepo, log.Named("listing"))
	archiveListingUC := listingusecases.NewArchiveListingUseCase(listingRepo, log.Named("listing"))
	getListingUC := listingusecases.NewGetListingUseCase(listingRepo, log.Named("listing"))
	searchListingsUC := listingusecases.NewSearchListingsUseCase(listingRepo, log.Named("listing"))
	listMyListingsUC := listingusecases.NewListMyListingsUseCase(listingRepo, log.Named("listing"))
	setFeaturedUC := listingusecases.NewSetFeaturedUseCase(listingRepo, resolveEntitlementUC, log.Named("listing"))
	addImageUC := listingusecases.NewAddListingImageUseCase(listingRepo, resolveEntitlementUC, log.Named("listing"))
	removeImageUC := listingusecases.NewRemoveListingImageUseCase(listingRepo, log.Named("listing"))

	engine := httpRouter.NewRouter(httpRouter.Dependencies{
		Config:         cfg,
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService, userRepo, log.Named("auth")),
		RateLimiter:    limiter,
		WebhookHandler: handlers.NewWebhookHandler(handleWebhookUC, log.Named("webhook")),
		AuthHandler: handlers.NewAuthHandler(
			registerUC, loginUC, refreshUC, getProfileUC, updateProfileUC, changePasswordUC),
		PlanHandler:    handlers.NewPlanHandler(listPlansUC),
		BillingHandler: handlers.NewBillingHandler(initiateCheckoutUC, resolveEntitlementUC, entitlementRepo),
		ListingHandler: handlers.NewListingHandler(
			createListingUC, updateListingUC, publishListingUC, archiveListingUC,
			getListingUC, searchListingsUC, listMyListingsUC, setFeaturedUC,
			addImageUC, removeImageUC),
		AdminHandler: handlers.NewAdminHandler(grantUC, adjustUC, sweepUC, userRepo, entitlementRepo),
		Logger:       log.Named("http"),
	})

	sweepStop := startExpireSweep(sweepUC, log)
	defer close(sweepStop)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return err
	}

	logger.Info("server exited gracefully")
	return nil
}

// startExpireSweep runs the entitlement and checkout expiry sweep hourly
// until the returned channel is closed.
func startExpireSweep(sweepUC *billingusecases.ExpireSweepUseCase, log logger.Interface) chan struct{} {
	stop := make(chan struct{})

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := sweepUC.Execute(context.Background()); err != nil {
					log.Errorw("expiry sweep failed", "error", err)
				}
			case <-stop:
				return
			}
		}
	}()

	return stop
}

func mapEnvToGinMode(env string) string {
	switch env {
	case "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
