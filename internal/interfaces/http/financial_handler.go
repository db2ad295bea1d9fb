package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/financial"
)

// FinancialHandler trata cobranças, despesas, resumo e relatório mensal.
type FinancialHandler struct {
	receivables *financial.ReceivableUseCase
	expenses    *financial.ExpenseUseCase
	reports     *financial.ReportUseCase
}

// NewFinancialHandler constrói o handler financeiro.
func NewFinancialHandler(
	receivables *financial.ReceivableUseCase,
	expenses *financial.ExpenseUseCase,
	reports *financial.ReportUseCase,
) *FinancialHandler {
	return &FinancialHandler{receivables: receivables, expenses: expenses, reports: reports}
}

// CreateReceivable godoc
// @Summary      Criar cobrança
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReceivableRequest  true  "Dados da cobrança"
// @Success      201   {object}  dto.ReceivableResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cobrancas [post]
func (h *FinancialHandler) CreateReceivable(c *fiber.Ctx) error {
	var in dto.CreateReceivableRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.receivables.Create(GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListReceivables godoc
// @Summary      Listar cobranças do mês
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        mes     query  string  true   "Mês (YYYY-MM)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ReceivableResponse
// @Router       /api/cobrancas [get]
func (h *FinancialHandler) ListReceivables(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.receivables.ListByMonth(GetUserID(c), c.Query("mes"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PayReceivable godoc
// @Summary      Marcar cobrança como paga
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da cobrança"
// @Param        body  body  dto.PayRequest  true  "data_pagamento, forma_pagamento"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cobrancas/{id}/pagar [post]
func (h *FinancialHandler) PayReceivable(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.receivables.Pay(GetUserID(c), c.Params("id"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CancelReceivable godoc
// @Summary      Cancelar cobrança
// @Tags         financeiro
// @Security     Bearer
// @Param        id  path  string  true  "ID da cobrança"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cobrancas/{id}/cancelar [post]
func (h *FinancialHandler) CancelReceivable(c *fiber.Ctx) error {
	if err := h.receivables.Cancel(GetUserID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ArchiveReceivable godoc
// @Summary      Arquivar cobrança
// @Tags         financeiro
// @Security     Bearer
// @Param        id  path  string  true  "ID da cobrança"
// @Success      204
// @Router       /api/cobrancas/{id} [delete]
func (h *FinancialHandler) ArchiveReceivable(c *fiber.Ctx) error {
	if err := h.receivables.Archive(GetUserID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateExpense godoc
// @Summary      Criar despesa
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Dados da despesa"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/despesas [post]
func (h *FinancialHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.expenses.Create(GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListExpenses godoc
// @Summary      Listar despesas do mês
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        mes     query  string  true   "Mês (YYYY-MM)"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {array}  dto.ExpenseResponse
// @Router       /api/despesas [get]
func (h *FinancialHandler) ListExpenses(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.expenses.ListByMonth(GetUserID(c), c.Query("mes"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// PayExpense godoc
// @Summary      Marcar despesa como paga
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID da despesa"
// @Param        body  body  dto.PayRequest  true  "data_pagamento, forma_pagamento"
// @Success      204
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/despesas/{id}/pagar [post]
func (h *FinancialHandler) PayExpense(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.expenses.Pay(GetUserID(c), c.Params("id"), in); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CancelExpense godoc
// @Summary      Cancelar despesa
// @Tags         financeiro
// @Security     Bearer
// @Param        id  path  string  true  "ID da despesa"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/despesas/{id}/cancelar [post]
func (h *FinancialHandler) CancelExpense(c *fiber.Ctx) error {
	if err := h.expenses.Cancel(GetUserID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ArchiveExpense godoc
// @Summary      Arquivar despesa
// @Tags         financeiro
// @Security     Bearer
// @Param        id  path  string  true  "ID da despesa"
// @Success      204
// @Router       /api/despesas/{id} [delete]
func (h *FinancialHandler) ArchiveExpense(c *fiber.Ctx) error {
	if err := h.expenses.Archive(GetUserID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumo do fluxo de caixa do mês
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        mes  query  string  true  "Mês (YYYY-MM)"
// @Success      200  {object}  dto.CashFlowResponse
// @Router       /api/financeiro/resumo [get]
func (h *FinancialHandler) Summary(c *fiber.Ctx) error {
	out, err := h.reports.Summary(GetUserID(c), c.Query("mes"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// MonthlyReport godoc
// @Summary      Relatório financeiro mensal em PDF
// @Tags         financeiro
// @Security     Bearer
// @Produce      application/pdf
// @Param        mes  query  string  true  "Mês (YYYY-MM)"
// @Success      200  {file}  binary
// @Router       /api/financeiro/relatorio [get]
func (h *FinancialHandler) MonthlyReport(c *fiber.Ctx) error {
	mes := c.Query("mes")
	pdf, err := h.reports.MonthlyReportPDF(c.UserContext(), GetUserID(c), mes)
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="relatorio-%s.pdf"`, mes))
	return c.Send(pdf)
}
