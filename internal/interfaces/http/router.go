package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendaclin/consultorio-api/internal/application/auth"
	"github.com/agendaclin/consultorio-api/internal/application/financial"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Issuer         *invitation.IssuerUseCase
	Acceptance     *invitation.AcceptanceUseCase
	PatientUC      *usecase.PatientUseCase
	AppointmentUC  *usecase.AppointmentUseCase
	ProfessionalUC *usecase.ProfessionalUseCase
	ReceivableUC   *financial.ReceivableUseCase
	ExpenseUC      *financial.ExpenseUseCase
	ReportUC       *financial.ReportUseCase
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	inviteHandler := NewInvitationHandler(deps.Issuer, deps.Acceptance)

	// Consulta pública do convite: a página de cadastro ainda não tem sessão.
	api.Get("/convites/token/:token", inviteHandler.Lookup)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Convites: emissão e listagem são do admin; aceitação, de quem recebeu.
	adminOnly := RequireRole(entity.RoleAdmin)
	protected.Post("/convites", adminOnly, inviteHandler.Invite)
	protected.Get("/convites", adminOnly, inviteHandler.List)
	protected.Post("/convites/aceitar", inviteHandler.Accept)

	// Pacientes
	patients := protected.Group("/pacientes")
	patientHandler := NewPatientHandler(deps.PatientUC)
	patients.Post("/", patientHandler.Create)
	patients.Get("/", patientHandler.List)
	patients.Get("/:id", patientHandler.GetByID)
	patients.Put("/:id", patientHandler.Update)
	patients.Delete("/:id", patientHandler.Archive)

	// Atendimentos
	appointments := protected.Group("/atendimentos")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Post("/", appointmentHandler.Create)
	appointments.Get("/", appointmentHandler.List)
	appointments.Get("/:id", appointmentHandler.GetByID)
	appointments.Put("/:id", appointmentHandler.Update)
	appointments.Delete("/:id", appointmentHandler.Archive)

	// Financeiro
	financialHandler := NewFinancialHandler(deps.ReceivableUC, deps.ExpenseUC, deps.ReportUC)
	receivables := protected.Group("/cobrancas")
	receivables.Post("/", financialHandler.CreateReceivable)
	receivables.Get("/", financialHandler.ListReceivables)
	receivables.Post("/:id/pagar", financialHandler.PayReceivable)
	receivables.Post("/:id/cancelar", financialHandler.CancelReceivable)
	receivables.Delete("/:id", financialHandler.ArchiveReceivable)

	expenses := protected.Group("/despesas")
	expenses.Post("/", financialHandler.CreateExpense)
	expenses.Get("/", financialHandler.ListExpenses)
	expenses.Post("/:id/pagar", financialHandler.PayExpense)
	expenses.Post("/:id/cancelar", financialHandler.CancelExpense)
	expenses.Delete("/:id", financialHandler.ArchiveExpense)

	protected.Get("/financeiro/resumo", financialHandler.Summary)
	protected.Get("/financeiro/relatorio", financialHandler.MonthlyReport)

	// Equipe e perfil
	professionalHandler := NewProfessionalHandler(deps.ProfessionalUC)
	protected.Get("/profissionais", adminOnly, professionalHandler.List)
	protected.Patch("/profissionais/:id/ativo", adminOnly, professionalHandler.SetAtivo)
	protected.Get("/perfil", professionalHandler.GetOwn)
	protected.Put("/perfil", professionalHandler.UpdateOwn)
}
