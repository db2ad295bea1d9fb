package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
	apphttp "github.com/agendaclin/consultorio-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para exercitar o handler de convites
// ──────────────────────────────────────────────────────────────────────────────

type memInvitationRepo struct {
	byID map[string]*entity.Invitation
}

var _ repository.InvitationRepository = (*memInvitationRepo)(nil)

func newMemInvitationRepo() *memInvitationRepo {
	return &memInvitationRepo{byID: map[string]*entity.Invitation{}}
}

func (r *memInvitationRepo) Create(inv *entity.Invitation) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *memInvitationRepo) GetPendingByToken(token string) (*entity.Invitation, error) {
	for _, inv := range r.byID {
		if inv.Token == token && inv.Status == entity.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInvitationRepo) GetPendingByAdminAndEmail(adminID, email string) (*entity.Invitation, error) {
	for _, inv := range r.byID {
		if inv.AdminID == adminID && inv.Email == email && inv.Status == entity.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memInvitationRepo) ListByAdmin(adminID string, limit, offset int) ([]*entity.Invitation, error) {
	var out []*entity.Invitation
	for _, inv := range r.byID {
		if inv.AdminID == adminID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memInvitationRepo) RefreshPending(inv *entity.Invitation) error {
	cp := *inv
	r.byID[inv.ID] = &cp
	return nil
}

func (r *memInvitationRepo) MarkExpired(id string) error {
	if inv, ok := r.byID[id]; ok {
		inv.Status = entity.InvitationExpired
	}
	return nil
}

func (r *memInvitationRepo) MarkAccepted(id string) error {
	if inv, ok := r.byID[id]; ok {
		inv.Status = entity.InvitationAccepted
	}
	return nil
}

type memRoleRepo struct {
	roles map[string]string
}

var _ repository.RoleRepository = (*memRoleRepo)(nil)

func (r *memRoleRepo) GetByUserID(userID string) (*entity.UserRole, error) {
	role, ok := r.roles[userID]
	if !ok {
		return nil, nil
	}
	return &entity.UserRole{UserID: userID, Role: role}, nil
}

func (r *memRoleRepo) Create(role *entity.UserRole) error {
	r.roles[role.UserID] = role.Role
	return nil
}

func (r *memRoleRepo) ReplaceForUser(userID, role string) error {
	r.roles[userID] = role
	return nil
}

// buildInviteApp monta a rota de emissão como o router real a registra:
// AuthMiddleware, RequireRole("admin") e o handler por cima do caso de uso real.
func buildInviteApp(t *testing.T) *fiber.App {
	t.Helper()

	roles := &memRoleRepo{roles: map[string]string{testUserID: entity.RoleAdmin}}
	issuer := invitation.NewIssuerUseCase(newMemInvitationRepo(), roles, invitation.IssuerConfig{
		ExpiryDays:    7,
		DefaultOrigin: "https://app.agendaclin.test",
	})
	handler := apphttp.NewInvitationHandler(issuer, nil)

	app := fiber.New()
	app.Post("/api/convites",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(entity.RoleAdmin),
		handler.Invite,
	)
	return app
}

func postInvite(t *testing.T, app *fiber.App, in dto.InviteRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(in)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/convites", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAdmin))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests InvitationHandler.Invite
// ──────────────────────────────────────────────────────────────────────────────

// Emissão bem-sucedida responde 200 com o convite e o link compartilhável.
// A emissão devolve um recurso consultável de imediato, não um Created.
func TestInvite_EmissaoRespondeOKComLink(t *testing.T) {
	app := buildInviteApp(t)

	resp := postInvite(t, app, dto.InviteRequest{
		Email: "novo.pro@clinica.com",
		Nome:  "Dra. Carla",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.InviteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "novo.pro@clinica.com", out.Invitation.Email)
	assert.Equal(t, entity.InvitationPending, out.Invitation.Status)
	assert.Contains(t, out.InviteLink, "/signup?token=")
	assert.Contains(t, out.InviteLink, out.Invitation.Token)
}

// Reconvite para o mesmo email também responde 200 e renova o token.
func TestInvite_ReconviteRespondeOKComTokenNovo(t *testing.T) {
	app := buildInviteApp(t)

	resp1 := postInvite(t, app, dto.InviteRequest{Email: "pro@clinica.com"})
	defer resp1.Body.Close()
	require.Equal(t, http.StatusOK, resp1.StatusCode)
	var first dto.InviteResponse
	require.NoError(t, json.NewDecoder(resp1.Body).Decode(&first))

	resp2 := postInvite(t, app, dto.InviteRequest{Email: "pro@clinica.com"})
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
	var second dto.InviteResponse
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&second))

	assert.Equal(t, first.Invitation.ID, second.Invitation.ID)
	assert.NotEqual(t, first.Invitation.Token, second.Invitation.Token)
}

// Corpo sem email responde 400.
func TestInvite_SemEmailResponde400(t *testing.T) {
	app := buildInviteApp(t)

	resp := postInvite(t, app, dto.InviteRequest{Nome: "Sem Email"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
