package invitation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
)

const (
	testAdminID = "00000000-0000-0000-0000-00000000000a"
	testProID   = "00000000-0000-0000-0000-00000000000b"
)

func newIssuer(invRepo *fakeInvitationRepo, roleRepo *fakeRoleRepo, defaultOrigin string) *invitation.IssuerUseCase {
	return invitation.NewIssuerUseCase(invRepo, roleRepo, invitation.IssuerConfig{
		ExpiryDays:    7,
		DefaultOrigin: defaultOrigin,
	})
}

// Caso: quem não é admin não emite convite.
func TestIssue_NaoAdminRecusado(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testProID] = entity.RoleProfissional

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	_, err := uc.Issue(testProID, dto.InviteRequest{Email: "pro@x.com"}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Sem papel nenhum também é recusado.
	_, err = uc.Issue("desconhecido", dto.InviteRequest{Email: "pro@x.com"}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso: email é obrigatório.
func TestIssue_EmailObrigatorio(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	_, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "   "}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Caso: sem origem resolvível (payload, header, configuração) a emissão
// falha em vez de montar um link malformado.
func TestIssue_OrigemObrigatoria(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	uc := newIssuer(invRepo, roleRepo, "")
	_, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "pro@x.com"}, "")
	assert.ErrorIs(t, err, domain.ErrOriginRequired)
}

// Caso: emissão cria convite pendente com token, validade de 7 dias, cor
// padrão e link <origin>/signup?token=<token>.
func TestIssue_CriaConvitePendente(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	out, err := uc.Issue(testAdminID, dto.InviteRequest{
		Email: "Pro@X.com",
		Nome:  "Dr. Ana",
	}, "")
	require.NoError(t, err)

	inv := out.Invitation
	assert.Equal(t, "pro@x.com", inv.Email, "email é normalizado para minúsculas")
	assert.Equal(t, "Dr. Ana", inv.NomeProfissional)
	assert.Equal(t, entity.CorIdentificacaoPadrao, inv.CorIdentificacao)
	assert.Equal(t, entity.InvitationPending, inv.Status)
	assert.NotEmpty(t, inv.Token)
	assert.Equal(t, "https://app.local/signup?token="+inv.Token, out.InviteLink)

	wantExpiry := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, wantExpiry, inv.ExpiresAt, time.Minute)
}

// Caso: reconvidar o mesmo e-mail enquanto o convite segue pendente renova a
// mesma linha (token e validade novos), nunca cria uma segunda pendente.
func TestIssue_ReconviteRenovaMesmaLinha(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	first, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "pro@x.com", Nome: "Dr. Ana"}, "")
	require.NoError(t, err)

	second, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "PRO@x.com", Nome: "Dra. Ana"}, "")
	require.NoError(t, err)

	assert.Equal(t, first.Invitation.ID, second.Invitation.ID, "mesma linha renovada")
	assert.NotEqual(t, first.Invitation.Token, second.Invitation.Token, "token novo a cada reconvite")
	assert.Equal(t, "Dra. Ana", second.Invitation.NomeProfissional)
	assert.Equal(t, 1, invRepo.pendingCount(testAdminID, "pro@x.com"))
}

// Caso: duas emissões simultâneas para o mesmo par; a que perde a corrida no
// índice único parcial de pendentes responde conflito.
func TestIssue_CorridaDeEmissaoRespondeConflito(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	// O concorrente insere a pendente entre a consulta e o insert do perdedor.
	invRepo.beforeCreate = func() {
		hook := invRepo.beforeCreate
		invRepo.beforeCreate = nil
		defer func() { invRepo.beforeCreate = hook }()
		require.NoError(t, invRepo.Create(&entity.Invitation{
			ID:      "ganhador",
			AdminID: testAdminID,
			Email:   "pro@x.com",
			Token:   "tok-ganhador",
			Status:  entity.InvitationPending,
		}))
	}

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	_, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "PRO@x.com"}, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, invRepo.pendingCount(testAdminID, "pro@x.com"))
}

// Caso: precedência da origem: payload > header Origin > configuração; a
// barra final é aparada antes de montar o link.
func TestIssue_PrecedenciaDaOrigem(t *testing.T) {
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	cases := []struct {
		name    string
		payload string
		header  string
		cfg     string
		want    string
	}{
		{"payload vence", "https://a.local/", "https://b.local", "https://c.local", "https://a.local"},
		{"header vence a configuração", "", "https://b.local", "https://c.local", "https://b.local"},
		{"configuração por último", "", "", "https://c.local", "https://c.local"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := newIssuer(newFakeInvitationRepo(), roleRepo, tc.cfg)
			out, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "pro@x.com", Origin: tc.payload}, tc.header)
			require.NoError(t, err)
			assert.Equal(t, tc.want+"/signup?token="+out.Invitation.Token, out.InviteLink)
		})
	}
}

// Caso: a listagem devolve os convites do admin com token visível (é o
// emissor consultando as próprias emissões).
func TestList_ConvitesDoAdmin(t *testing.T) {
	invRepo := newFakeInvitationRepo()
	roleRepo := newFakeRoleRepo()
	roleRepo.roles[testAdminID] = entity.RoleAdmin

	uc := newIssuer(invRepo, roleRepo, "https://app.local")
	_, err := uc.Issue(testAdminID, dto.InviteRequest{Email: "a@x.com"}, "")
	require.NoError(t, err)
	_, err = uc.Issue(testAdminID, dto.InviteRequest{Email: "b@x.com"}, "")
	require.NoError(t, err)

	items, err := uc.List(testAdminID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	for _, it := range items {
		assert.NotEmpty(t, it.Token)
	}
}
