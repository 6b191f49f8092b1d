package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appbilling "github.com/mjansen/praktijk-billing/internal/application/billing"
	"github.com/mjansen/praktijk-billing/internal/infrastructure/archive"
	inframail "github.com/mjansen/praktijk-billing/internal/infrastructure/mail"
	infrapdf "github.com/mjansen/praktijk-billing/internal/infrastructure/pdf"
	"github.com/mjansen/praktijk-billing/internal/infrastructure/postgres"
	httpRouter "github.com/mjansen/praktijk-billing/internal/interfaces/http"
	"github.com/mjansen/praktijk-billing/pkg/config"
	"github.com/mjansen/praktijk-billing/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	recordRepo := postgres.NewServiceRecordRepository(pool)
	tariffRepo := postgres.NewTariffRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	renderer := infrapdf.NewMarotoRenderer(cfg.Billing.PracticeName)
	docArchive, err := archive.NewFileArchive(cfg.Billing.OutputDir)
	if err != nil {
		log.Fatal().Err(err).Msg("document archive")
	}

	// No SMTP host configured: invoices are archived but never mailed.
	var mailer appbilling.MailSender
	if cfg.Mail.Host != "" {
		mailer = inframail.NewGomailSender(cfg.Mail)
	} else {
		log.Warn().Msg("MAIL_HOST not set, invoice delivery disabled")
	}

	opts := appbilling.Options{
		PaymentTermDays: cfg.Billing.PaymentTermDays,
		MailSubject:     cfg.Billing.MailSubject,
	}
	recordsUC := appbilling.NewRecordsUseCase(recordRepo, tariffRepo, clientRepo)
	generateUC := appbilling.NewGenerateInvoicesUseCase(
		recordRepo, tariffRepo, clientRepo,
		renderer, docArchive, mailer, txRunner, opts, log,
	)
	printUC := appbilling.NewPrintInvoicesUseCase(
		recordRepo, tariffRepo, clientRepo,
		renderer, docArchive, opts, log,
	)
	overviewUC := appbilling.NewGenerateOverviewUseCase(
		recordRepo, tariffRepo, renderer, docArchive, log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // batch runs render and mail inline
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Records:          recordsUC,
		GenerateInvoices: generateUC,
		PrintInvoices:    printUC,
		GenerateOverview: overviewUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, closing server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
