package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "wealthwise/docs"
	"wealthwise/internal/config"
	"wealthwise/internal/handlers"
	"wealthwise/internal/middleware"
	"wealthwise/internal/repositories"
	"wealthwise/internal/routes"
	"wealthwise/internal/services"
	"wealthwise/internal/utils"
	"wealthwise/internal/validation"
	"wealthwise/internal/web"
)

// Deps are the storage and delivery backends. Emails and Sender are built
// from the config when nil.
type Deps struct {
	Users         repositories.UserRepository
	Verifications repositories.VerificationRepository
	Expenses      repositories.ExpenseRepository
	Incomes       repositories.IncomeRepository
	Emails        services.EmailService
	Sender        services.CodeSender
}

func NewRouter(cfg *config.Config, deps Deps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	handlers.RegisterValidators()

	// === Services ===
	authService := services.NewAuthService([]byte(cfg.Security.SecretKey), cfg.SessionLifetime(), cfg.Security.BcryptCost)
	emailService := deps.Emails
	if emailService == nil {
		emailService = services.NewEmailService(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUser,
			cfg.Email.SMTPPassword,
			cfg.Email.FromEmail,
			cfg.Email.SuppressSend,
		)
	}
	sender := deps.Sender
	if sender == nil {
		sender = codeSender(cfg, emailService)
	}

	verificationService := services.NewVerificationService(
		deps.Verifications,
		sender,
		authService,
		validation.NewOTPGenerator(nil),
		services.VerificationConfig{
			CodeLength:   cfg.OTP.Length,
			TTL:          cfg.OTPTTL(),
			MaxAttempts:  cfg.OTP.MaxAttempts,
			MaxResends:   cfg.OTP.MaxResends,
			ResendWindow: cfg.ResendWindow(),
		},
	)
	userService := services.NewUserService(deps.Users, authService, verificationService, emailService)
	resetService := services.NewPasswordResetService(deps.Users, verificationService, authService)
	financeService := services.NewFinanceService(deps.Expenses, deps.Incomes, cfg.Location())

	// === Handlers ===
	cookie := middleware.SessionCookie{
		Name:     cfg.Security.SessionCookieName,
		Secure:   cfg.Security.SessionCookieSecure,
		HTTPOnly: cfg.Security.SessionCookieHTTPOnly,
		MaxAge:   int(cfg.SessionLifetime() / time.Second),
	}
	authHandler := handlers.NewAuthHandler(userService, authService, cookie)
	registrationHandler := handlers.NewRegistrationHandler(userService, verificationService.CodeLength())
	passwordHandler := handlers.NewPasswordHandler(resetService, verificationService.CodeLength())
	financeHandler := handlers.NewFinanceHandler(financeService, userService, cfg.Location())

	// === Gin ===
	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CSRF(middleware.CSRFOptions{
		Enabled: cfg.Security.CSRFEnabled,
		Secure:  cfg.Security.SessionCookieSecure,
	}))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		middleware.AuthRequired(authService, cookie),
		authHandler,
		registrationHandler,
		passwordHandler,
		financeHandler,
	)
	return router, nil
}

func codeSender(cfg *config.Config, emails services.EmailService) services.CodeSender {
	if cfg.OTP.Channel == "sms" {
		mobizonClient := utils.NewClientWithOptions(
			cfg.Mobizon.APIKey,
			cfg.Mobizon.SenderID,
			cfg.Mobizon.DryRun,
		)
		return services.NewSMSCodeSender(mobizonClient)
	}
	return services.NewEmailCodeSender(emails)
}

func Run() {
	cfg := config.LoadConfig()
	gin.SetMode(cfg.Server.Mode)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("database open failed: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("database close failed: %v", err)
		}
	}()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("database ping failed: ", err)
	}

	// === Repos ===
	router, err := NewRouter(cfg, Deps{
		Users:         repositories.NewUserRepository(db),
		Verifications: repositories.NewVerificationRepository(db),
		Expenses:      repositories.NewExpenseRepository(db),
		Incomes:       repositories.NewIncomeRepository(db),
	})
	if err != nil {
		log.Fatal("router setup failed: ", err)
	}

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("WealthWise listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("server failed: ", err)
	}
}
