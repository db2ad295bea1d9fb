package auth_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclin/consultorio-api/internal/application/auth"
	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
	pkgjwt "github.com/agendaclin/consultorio-api/pkg/jwt"
)

var errInjetado = errors.New("falha injetada no banco")

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User // por ID
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(u *entity.User) error {
	return f.Create(u)
}

type fakeRoleRepo struct {
	roles map[string]string
	// failCreate injeta uma falha única no insert de papel.
	failCreate error
}

var _ repository.RoleRepository = (*fakeRoleRepo)(nil)

func newFakeRoleRepo() *fakeRoleRepo { return &fakeRoleRepo{roles: make(map[string]string)} }

func (f *fakeRoleRepo) GetByUserID(userID string) (*entity.UserRole, error) {
	r, ok := f.roles[userID]
	if !ok {
		return nil, nil
	}
	return &entity.UserRole{UserID: userID, Role: r}, nil
}

func (f *fakeRoleRepo) Create(role *entity.UserRole) error {
	if f.failCreate != nil {
		err := f.failCreate
		f.failCreate = nil
		return err
	}
	f.roles[role.UserID] = role.Role
	return nil
}

func (f *fakeRoleRepo) ReplaceForUser(userID, role string) error {
	f.roles[userID] = role
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (f *fakeProfileRepo) Upsert(p *entity.Profile) error {
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) ListByContaPrincipal(contaPrincipalID string, limit, offset int) ([]*entity.Profile, error) {
	var out []*entity.Profile
	for _, p := range f.profiles {
		if p.ContaPrincipalID == contaPrincipalID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) SetAtivo(id string, ativo bool) error {
	if p, ok := f.profiles[id]; ok {
		p.Ativo = ativo
	}
	return nil
}

func (f *fakeProfileRepo) Update(p *entity.Profile) error { return f.Upsert(p) }

// fakeTxRunner imita a transação PostgreSQL do cadastro: tira um snapshot dos
// três fakes antes do callback e o restaura quando o callback falha.
type fakeTxRunner struct {
	users    *fakeUserRepo
	roles    *fakeRoleRepo
	profiles *fakeProfileRepo
}

var _ auth.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) Run(fn func(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	profileRepo repository.ProfileRepository,
) error) error {
	usersSnap := make(map[string]*entity.User, len(f.users.users))
	for k, v := range f.users.users {
		cp := *v
		usersSnap[k] = &cp
	}
	rolesSnap := make(map[string]string, len(f.roles.roles))
	for k, v := range f.roles.roles {
		rolesSnap[k] = v
	}
	profilesSnap := make(map[string]*entity.Profile, len(f.profiles.profiles))
	for k, v := range f.profiles.profiles {
		cp := *v
		profilesSnap[k] = &cp
	}

	if err := fn(f.users, f.roles, f.profiles); err != nil {
		f.users.users = usersSnap
		f.roles.roles = rolesSnap
		f.profiles.profiles = profilesSnap
		return err
	}
	return nil
}

func newAuthUC(users *fakeUserRepo, roles *fakeRoleRepo, profiles *fakeProfileRepo, emailConfirmation bool) *auth.AuthUseCase {
	tx := &fakeTxRunner{users: users, roles: roles, profiles: profiles}
	return auth.NewAuthUseCase(users, roles, profiles, tx, auth.JWTConfig{
		Secret:     "segredo-de-teste",
		ExpMinutes: 60,
		Issuer:     "agendaclin-test",
	}, emailConfirmation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: cadastro avulso nasce admin de si mesmo, com perfil apontando para a
// própria conta e sessão imediata quando a confirmação está desabilitada.
func TestSignup_ContaNovaNasceAdmin(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	out, err := uc.Signup(dto.SignupRequest{Email: "Admin@X.com", Password: "senha-forte", Nome: "Dra. Bia"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.False(t, out.PendingConfirmation)
	assert.Equal(t, "admin@x.com", out.User.Email)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	claims, err := pkgjwt.Parse("segredo-de-teste", out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)

	p, _ := profiles.GetByID(out.User.ID)
	require.NotNil(t, p)
	assert.Equal(t, "Dra. Bia", p.Nome)
	assert.Equal(t, out.User.ID, p.ContaPrincipalID, "perfil do admin aponta para si mesmo")
	assert.True(t, p.Ativo)
}

// Caso: com confirmação de e-mail habilitada, o cadastro não emite sessão.
func TestSignup_ConfirmacaoPendenteSemSessao(t *testing.T) {
	uc := newAuthUC(newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo(), true)

	out, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)
	assert.Empty(t, out.Token)
	assert.True(t, out.PendingConfirmation)
}

// Caso: e-mail repetido (em qualquer caixa) responde conflito.
func TestSignup_EmailRepetido(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	_, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Signup(dto.SignupRequest{Email: "PRO@x.com", Password: "outra-senha"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// Caso: uma falha no meio do provisionamento desfaz o cadastro inteiro; não
// fica identidade sem papel nem perfil, e a repetição da chamada funciona.
func TestSignup_FalhaParcialNaoDeixaIdentidadeOrfa(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	roles.failCreate = errInjetado
	_, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.ErrorIs(t, err, errInjetado)

	u, _ := users.GetByEmail("pro@x.com")
	assert.Nil(t, u, "usuário não pode sobreviver à transação desfeita")
	assert.Empty(t, roles.roles)
	assert.Empty(t, profiles.profiles)

	out, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

// Caso: login com credenciais corretas devolve token carregando o papel atual.
func TestLogin_Sucesso(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	created, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)

	// A aceitação de convite trocou o papel depois do cadastro.
	require.NoError(t, roles.ReplaceForUser(created.User.ID, entity.RoleProfissional))

	out, err := uc.Login(dto.LoginRequest{Email: "PRO@x.com", Password: "senha-forte"})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse("segredo-de-teste", out.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProfissional, claims.Role)
}

// Caso: senha errada e usuário inexistente respondem o mesmo não-autorizado.
func TestLogin_CredenciaisInvalidas(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	_, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "pro@x.com", Password: "senha-errada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(dto.LoginRequest{Email: "nao-existe@x.com", Password: "tanto-faz"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Caso: perfil desativado pelo admin não entra.
func TestLogin_PerfilDesativado(t *testing.T) {
	users, roles, profiles := newFakeUserRepo(), newFakeRoleRepo(), newFakeProfileRepo()
	uc := newAuthUC(users, roles, profiles, false)

	created, err := uc.Signup(dto.SignupRequest{Email: "pro@x.com", Password: "senha-forte"})
	require.NoError(t, err)
	require.NoError(t, profiles.SetAtivo(created.User.ID, false))

	_, err = uc.Login(dto.LoginRequest{Email: "pro@x.com", Password: "senha-forte"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
