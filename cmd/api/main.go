package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	_ "github.com/jhoicas/wholesale-api/docs"
	"github.com/jhoicas/wholesale-api/internal/application/auth"
	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/ports"
	"github.com/jhoicas/wholesale-api/internal/application/reporting"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/excel"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/mail"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/payment"
	"github.com/jhoicas/wholesale-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/wholesale-api/internal/interfaces/http"
	"github.com/jhoicas/wholesale-api/pkg/config"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// @title        Wholesale API
// @version      1.0
// @description  Ordering backend for shops buying from wholesale suppliers.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("starting")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open repositories")
	}
	defer repos.close()

	statsCache, closeCache := openStatsCache(ctx, cfg.Redis, log)
	defer closeCache()

	images, uploadsDir, closeImages, err := openImageStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("open image storage")
	}
	defer closeImages()

	var mailer ports.Mailer
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTPMailer(mail.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		log.Warn().Msg("SMTP_HOST not set, outgoing mail is only logged")
		mailer = mail.NewLogMailer(log)
	}

	gateway := payment.NewGateway(payment.Config{
		URL:             cfg.Payment.URL,
		Token:           cfg.Payment.Token,
		GatewayUsername: cfg.Payment.GatewayUsername,
		Timeout:         time.Duration(cfg.Payment.TimeoutSeconds) * time.Second,
	})

	authUC := auth.NewAuthUseCase(repos.users, mailer, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	reportUC := reporting.NewReportUseCase(repos.orders, repos.users, repos.suppliers, repos.stats,
		statsCache, excel.NewReportExporter(), log)
	orderUC := ordering.NewOrderUseCase(repos.tx, repos.orders, repos.products, repos.suppliers, repos.users, repos.cards,
		gateway, pdf.NewInvoiceRenderer(cfg.App.Name), mailer, statsCache, log,
		ordering.Config{Currency: cfg.Payment.Currency, NotifyEmail: cfg.Orders.NotifyEmail})

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	}, log)

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Wholesale API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if uploadsDir != "" {
		app.Static(cfg.Storage.PublicPath, uploadsDir)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ReportUC:   reportUC,
		BranchUC:   usecase.NewBranchUseCase(repos.users),
		SupplierUC: usecase.NewSupplierUseCase(repos.suppliers, repos.holidays, images, log),
		DeliveryUC: usecase.NewDeliveryUseCase(repos.deliveries, repos.users, repos.suppliers),
		CategoryUC: usecase.NewCategoryUseCase(repos.categories, images, log),
		ProductUC: usecase.NewProductUseCase(repos.products, repos.suppliers, repos.categories, repos.deliveries,
			images, cfg.Orders.VATStandardRate, log),
		OrderUC:   orderUC,
		BookUC:    usecase.NewAddressBookUseCase(repos.addresses, repos.cards),
		JWTSecret: cfg.JWT.Secret,
		PublicURL: cfg.App.PublicURL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("stopped")
}
