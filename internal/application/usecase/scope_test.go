package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake em memória
// ──────────────────────────────────────────────────────────────────────────────

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

func seedProfile(repo *fakeProfileRepo, id, contaPrincipalID string, ativo bool) {
	_ = repo.Upsert(&entity.Profile{ID: id, ContaPrincipalID: contaPrincipalID, Ativo: ativo})
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Caso: profissional recém-aceito ainda carrega a sessão admin do cadastro;
// o escopo vem do perfil no banco e aponta para a conta do admin que convidou,
// nunca para a própria conta.
func TestResolve_ProfissionalRecemAceitoUsaContaDoAdmin(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo, "admin-uid", "admin-uid", true)
	seedProfile(repo, "pro-uid", "admin-uid", true)

	sc, err := usecase.NewScopeResolver(repo).Resolve("pro-uid")
	require.NoError(t, err)

	assert.Equal(t, "admin-uid", sc.ContaPrincipalID)
	assert.Equal(t, []string{"pro-uid"}, sc.UserIDs)
	assert.False(t, sc.IsPrincipal)
}

// Caso: o dono da conta enxerga a si e a todos os profissionais vinculados.
func TestResolve_DonoDaContaEnxergaTodaAConta(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo, "admin-uid", "admin-uid", true)
	seedProfile(repo, "pro-a", "admin-uid", true)
	seedProfile(repo, "pro-b", "admin-uid", true)

	sc, err := usecase.NewScopeResolver(repo).Resolve("admin-uid")
	require.NoError(t, err)

	assert.Equal(t, "admin-uid", sc.ContaPrincipalID)
	assert.ElementsMatch(t, []string{"admin-uid", "pro-a", "pro-b"}, sc.UserIDs)
	assert.True(t, sc.IsPrincipal)
}

// Caso: perfil inexistente ou desativado não resolve escopo algum.
func TestResolve_PerfilInexistenteOuDesativado(t *testing.T) {
	repo := newFakeProfileRepo()
	seedProfile(repo, "inativo-uid", "admin-uid", false)

	resolver := usecase.NewScopeResolver(repo)

	_, err := resolver.Resolve("fantasma-uid")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = resolver.Resolve("inativo-uid")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
