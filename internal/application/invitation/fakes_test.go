package invitation_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes em memória com a mesma semântica dos adaptadores PostgreSQL:
// índice único parcial de pendentes, fechamento condicional, upsert de perfil.
// ──────────────────────────────────────────────────────────────────────────────

type fakeInvitationRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Invitation // por ID

	// afterGet, quando definido, roda depois de GetPendingByToken; os testes
	// de corrida o usam para intercalar um vencedor concorrente.
	afterGet func()
	// beforeCreate intercala um concorrente entre a consulta e o insert.
	beforeCreate func()
	// failMarkAccepted injeta uma falha única no fechamento.
	failMarkAccepted error
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{rows: make(map[string]*entity.Invitation)}
}

var _ repository.InvitationRepository = (*fakeInvitationRepo)(nil)

func (f *fakeInvitationRepo) Create(inv *entity.Invitation) error {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.Status == entity.InvitationPending &&
			r.AdminID == inv.AdminID &&
			strings.EqualFold(r.Email, inv.Email) {
			// Embrulhado como um adaptador real faria; quem trata precisa
			// de errors.Is, não de comparação direta com o sentinela.
			return fmt.Errorf("inserir convite: %w", domain.ErrDuplicate)
		}
	}
	cp := *inv
	f.rows[inv.ID] = &cp
	return nil
}

func (f *fakeInvitationRepo) GetPendingByToken(token string) (*entity.Invitation, error) {
	f.mu.Lock()
	var found *entity.Invitation
	for _, r := range f.rows {
		if r.Token == token && r.Status == entity.InvitationPending {
			cp := *r
			found = &cp
			break
		}
	}
	f.mu.Unlock()
	if f.afterGet != nil {
		f.afterGet()
	}
	return found, nil
}

func (f *fakeInvitationRepo) GetPendingByAdminAndEmail(adminID, email string) (*entity.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.AdminID == adminID && strings.EqualFold(r.Email, email) && r.Status == entity.InvitationPending {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvitationRepo) ListByAdmin(adminID string, limit, offset int) ([]*entity.Invitation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Invitation
	for _, r := range f.rows {
		if r.AdminID == adminID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvitationRepo) RefreshPending(inv *entity.Invitation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.rows[inv.ID]
	if !ok || r.Status != entity.InvitationPending {
		return domain.ErrConflict
	}
	r.Token = inv.Token
	r.ExpiresAt = inv.ExpiresAt
	r.NomeProfissional = inv.NomeProfissional
	r.CorIdentificacao = inv.CorIdentificacao
	return nil
}

func (f *fakeInvitationRepo) MarkExpired(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		r.Status = entity.InvitationExpired
	}
	return nil
}

func (f *fakeInvitationRepo) MarkAccepted(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failMarkAccepted != nil {
		err := f.failMarkAccepted
		f.failMarkAccepted = nil
		return err
	}
	r, ok := f.rows[id]
	if !ok || r.Status != entity.InvitationPending {
		return domain.ErrConflict
	}
	r.Status = entity.InvitationAccepted
	return nil
}

// status devolve o status corrente de um convite, para asserções.
func (f *fakeInvitationRepo) status(id string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.rows[id]; ok {
		return r.Status
	}
	return ""
}

// pendingCount conta as linhas pendentes de um par (admin, email).
func (f *fakeInvitationRepo) pendingCount(adminID, email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.rows {
		if r.AdminID == adminID && strings.EqualFold(r.Email, email) && r.Status == entity.InvitationPending {
			n++
		}
	}
	return n
}

type fakeRoleRepo struct {
	mu    sync.Mutex
	roles map[string]string // userID → role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[string]string)}
}

var _ repository.RoleRepository = (*fakeRoleRepo)(nil)

func (f *fakeRoleRepo) GetByUserID(userID string) (*entity.UserRole, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	role, ok := f.roles[userID]
	if !ok {
		return nil, nil
	}
	return &entity.UserRole{UserID: userID, Role: role}, nil
}

func (f *fakeRoleRepo) Create(role *entity.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[role.UserID] = role.Role
	return nil
}

func (f *fakeRoleRepo) ReplaceForUser(userID, role string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles[userID] = role
	return nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

var _ repository.ProfileRepository = (*fakeProfileRepo)(nil)

func (f *fakeProfileRepo) Upsert(p *entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) ListByContaPrincipal(contaPrincipalID string, limit, offset int) ([]*entity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.Ativo = ativo
	}
	return nil
}

func (f *fakeProfileRepo) Update(p *entity.Profile) error {
	return f.Upsert(p)
}

// fakeTxRunner roda o callback sobre os fakes e desfaz todas as escritas se
// ele falhar, espelhando o rollback do adaptador PostgreSQL.
type fakeTxRunner struct {
	inv      *fakeInvitationRepo
	roles    *fakeRoleRepo
	profiles *fakeProfileRepo
}

var _ invitation.TxRunner = (*fakeTxRunner)(nil)

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	invRepo repository.InvitationRepository,
) error) error {
	invSnap := snapshotInvitations(f.inv)
	roleSnap := snapshotRoles(f.roles)
	profSnap := snapshotProfiles(f.profiles)

	if err := fn(f.profiles, f.roles, f.inv); err != nil {
		restoreInvitations(f.inv, invSnap)
		restoreRoles(f.roles, roleSnap)
		restoreProfiles(f.profiles, profSnap)
		return err
	}
	return nil
}

func snapshotInvitations(f *fakeInvitationRepo) map[string]entity.Invitation {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]entity.Invitation, len(f.rows))
	for k, v := range f.rows {
		snap[k] = *v
	}
	return snap
}

func restoreInvitations(f *fakeInvitationRepo, snap map[string]entity.Invitation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = make(map[string]*entity.Invitation, len(snap))
	for k := range snap {
		v := snap[k]
		f.rows[k] = &v
	}
}

func snapshotRoles(f *fakeRoleRepo) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]string, len(f.roles))
	for k, v := range f.roles {
		snap[k] = v
	}
	return snap
}

func restoreRoles(f *fakeRoleRepo, snap map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.roles = make(map[string]string, len(snap))
	for k, v := range snap {
		f.roles[k] = v
	}
}

func snapshotProfiles(f *fakeProfileRepo) map[string]entity.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := make(map[string]entity.Profile, len(f.profiles))
	for k, v := range f.profiles {
		snap[k] = *v
	}
	return snap
}

func restoreProfiles(f *fakeProfileRepo, snap map[string]entity.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles = make(map[string]*entity.Profile, len(snap))
	for k := range snap {
		v := snap[k]
		f.profiles[k] = &v
	}
}
