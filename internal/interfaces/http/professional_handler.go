package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
)

// ProfessionalHandler trata equipe da conta e o próprio perfil.
type ProfessionalHandler struct {
	uc *usecase.ProfessionalUseCase
}

// NewProfessionalHandler constrói o handler.
func NewProfessionalHandler(uc *usecase.ProfessionalUseCase) *ProfessionalHandler {
	return &ProfessionalHandler{uc: uc}
}

// List godoc
// @Summary      Listar profissionais da conta (admin)
// @Tags         profissionais
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.ProfileResponse
// @Router       /api/profissionais [get]
func (h *ProfessionalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	out, err := h.uc.ListByAccount(GetUserID(c), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// SetAtivo godoc
// @Summary      Ativar/desativar profissional (admin)
// @Tags         profissionais
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID do perfil"
// @Param        body  body  object{ativo=bool}  true  "ativo"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/profissionais/{id}/ativo [patch]
func (h *ProfessionalHandler) SetAtivo(c *fiber.Ctx) error {
	var in struct {
		Ativo bool `json:"ativo"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.SetAtivo(GetUserID(c), c.Params("id"), in.Ativo); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetOwn godoc
// @Summary      Obter o próprio perfil
// @Tags         perfil
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/perfil [get]
func (h *ProfessionalHandler) GetOwn(c *fiber.Ctx) error {
	out, err := h.uc.GetOwn(GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// UpdateOwn godoc
// @Summary      Atualizar o próprio perfil
// @Tags         perfil
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos editáveis"
// @Success      200   {object}  dto.ProfileResponse
// @Router       /api/perfil [put]
func (h *ProfessionalHandler) UpdateOwn(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.UpdateOwn(GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
