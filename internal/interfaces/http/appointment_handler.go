package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
)

// AppointmentHandler trata as rotas de atendimentos (protegido).
type AppointmentHandler struct {
	uc *usecase.AppointmentUseCase
}

// NewAppointmentHandler constrói o handler.
func NewAppointmentHandler(uc *usecase.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// Create godoc
// @Summary      Criar atendimento
// @Tags         atendimentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "Dados do atendimento"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/atendimentos [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Create(GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter atendimento por ID
// @Tags         atendimentos
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do atendimento"
// @Success      200  {object}  dto.AppointmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/atendimentos/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetUserID(c), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar atendimentos
// @Tags         atendimentos
// @Security     Bearer
// @Produce      json
// @Param        patient_id  query  string  false  "Filtra por paciente"
// @Param        from        query  string  false  "Data inicial (YYYY-MM-DD)"
// @Param        to          query  string  false  "Data final (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Limite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.AppointmentListResponse
// @Router       /api/atendimentos [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.List(GetUserID(c),
		c.Query("patient_id"), c.Query("from"), c.Query("to"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar atendimento
// @Tags         atendimentos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do atendimento"
// @Param        body  body  dto.CreateAppointmentRequest  true  "Dados a atualizar"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/atendimentos/{id} [put]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Update(GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Arquivar atendimento
// @Tags         atendimentos
// @Security     Bearer
// @Param        id  path  string  true  "ID do atendimento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/atendimentos/{id} [delete]
func (h *AppointmentHandler) Archive(c *fiber.Ctx) error {
	if err := h.uc.Archive(GetUserID(c), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
