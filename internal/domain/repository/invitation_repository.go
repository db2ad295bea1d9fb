package repository

import "github.com/agendaclin/consultorio-api/internal/domain/entity"

// InvitationRepository define o porto de persistência para convites.
type InvitationRepository interface {
	Create(inv *entity.Invitation) error
	GetPendingByToken(token string) (*entity.Invitation, error)
	GetPendingByAdminAndEmail(adminID, email string) (*entity.Invitation, error)
	ListByAdmin(adminID string, limit, offset int) ([]*entity.Invitation, error)
	// RefreshPending regrava token, validade, nome e cor de um convite ainda
	// pendente (reconvite atualiza a linha em vez de duplicar).
	RefreshPending(inv *entity.Invitation) error
	// MarkExpired fecha preguiçosamente um convite vencido.
	MarkExpired(id string) error
	// MarkAccepted fecha o convite de forma condicional:
	// UPDATE ... SET status = 'aceito' WHERE id = $1 AND status = 'pendente'.
	// Retorna domain.ErrConflict quando nenhuma linha foi afetada (outra
	// aceitação venceu a corrida); o chamador deve desfazer o provisionamento.
	MarkAccepted(id string) error
}

// ProfileRepository define o porto de persistência para perfis.
type ProfileRepository interface {
	// Upsert insere ou substitui o perfil pela chave primária (id do usuário).
	Upsert(p *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	ListByContaPrincipal(contaPrincipalID string, limit, offset int) ([]*entity.Profile, error)
	SetAtivo(id string, ativo bool) error
	Update(p *entity.Profile) error
}
