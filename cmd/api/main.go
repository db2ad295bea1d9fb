package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appauth "github.com/agendaclin/consultorio-api/internal/application/auth"
	"github.com/agendaclin/consultorio-api/internal/application/financial"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	infrapdf "github.com/agendaclin/consultorio-api/internal/infrastructure/pdf"
	"github.com/agendaclin/consultorio-api/internal/infrastructure/postgres"
	httpRouter "github.com/agendaclin/consultorio-api/internal/interfaces/http"
	"github.com/agendaclin/consultorio-api/pkg/config"
	"github.com/agendaclin/consultorio-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	if err := postgres.ApplyMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	patientRepo := postgres.NewPatientRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	receivableRepo := postgres.NewReceivableRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	cashFlowRepo := postgres.NewCashFlowRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	signupTxRunner := postgres.NewSignupTxRunner(pool)

	scope := usecase.NewScopeResolver(profileRepo)

	authUC := appauth.NewAuthUseCase(userRepo, roleRepo, profileRepo, signupTxRunner, appauth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Auth.EmailConfirmation)

	issuerUC := invitation.NewIssuerUseCase(invitationRepo, roleRepo, invitation.IssuerConfig{
		ExpiryDays:    cfg.Invite.ExpiryDays,
		DefaultOrigin: cfg.Invite.AllowedOrigin,
	})
	acceptanceUC := invitation.NewAcceptanceUseCase(invitationRepo, txRunner)

	patientUC := usecase.NewPatientUseCase(patientRepo, scope)
	appointmentUC := usecase.NewAppointmentUseCase(appointmentRepo, patientRepo, scope)
	professionalUC := usecase.NewProfessionalUseCase(profileRepo)

	receivableUC := financial.NewReceivableUseCase(receivableRepo, patientRepo, scope)
	expenseUC := financial.NewExpenseUseCase(expenseRepo, scope)
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := financial.NewReportUseCase(cashFlowRepo, receivableRepo, expenseRepo, pdfGenerator, scope)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AgendaClin API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Issuer:         issuerUC,
		Acceptance:     acceptanceUC,
		PatientUC:      patientUC,
		AppointmentUC:  appointmentUC,
		ProfessionalUC: professionalUC,
		ReceivableUC:   receivableUC,
		ExpenseUC:      expenseUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("servidor encerrado")
}
