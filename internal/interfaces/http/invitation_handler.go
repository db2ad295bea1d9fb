package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
)

// InvitationHandler trata emissão, consulta e aceitação de convites.
type InvitationHandler struct {
	issuer     *invitation.IssuerUseCase
	acceptance *invitation.AcceptanceUseCase
}

// NewInvitationHandler constrói o handler de convites.
func NewInvitationHandler(issuer *invitation.IssuerUseCase, acceptance *invitation.AcceptanceUseCase) *InvitationHandler {
	return &InvitationHandler{issuer: issuer, acceptance: acceptance}
}

// Invite godoc
// @Summary      Convidar profissional
// @Tags         convites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteRequest  true  "email, nome, cor_identificacao, origin"
// @Success      200   {object}  dto.InviteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/convites [post]
func (h *InvitationHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.issuer.Issue(GetUserID(c), in, c.Get("Origin"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar convites emitidos
// @Tags         convites
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}  dto.InvitationResponse
// @Router       /api/convites [get]
func (h *InvitationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()
	out, err := h.issuer.List(GetUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Consultar convite por token (página de cadastro)
// @Tags         convites
// @Produce      json
// @Param        token  path  string  true  "Token do convite"
// @Success      200    {object}  dto.InvitationPublicResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      410    {object}  dto.ErrorResponse
// @Router       /api/convites/token/{token} [get]
func (h *InvitationHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.acceptance.Lookup(c.Params("token"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Accept godoc
// @Summary      Aceitar convite
// @Tags         convites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInviteRequest  true  "invite_token"
// @Success      200   {object}  dto.AcceptInviteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      410   {object}  dto.ErrorResponse
// @Router       /api/convites/aceitar [post]
func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	var in dto.AcceptInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.acceptance.Accept(c.UserContext(), GetUserID(c), GetEmail(c), in.InviteToken)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}
