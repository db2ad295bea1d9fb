package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.InvitationRepository = (*InvitationRepo)(nil)

// InvitationRepo implementação do porto InvitationRepository sobre PostgreSQL.
type InvitationRepo struct {
	q Querier
}

// NewInvitationRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewInvitationRepository(q Querier) *InvitationRepo {
	return &InvitationRepo{q: q}
}

const invitationColumns = `id, admin_id, email, nome_profissional, cor_identificacao,
	token, status, expires_at, created_at`

// Create persiste um novo convite pendente. O índice único parcial em
// (admin_id, lower(email)) WHERE status = 'pendente' barra duplicatas em
// corrida; a violação volta como domain.ErrDuplicate.
func (r *InvitationRepo) Create(inv *entity.Invitation) error {
	query := `
		INSERT INTO invitations (id, admin_id, email, nome_profissional, cor_identificacao,
			token, status, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.AdminID, inv.Email, inv.NomeProfissional, inv.CorIdentificacao,
		inv.Token, inv.Status, inv.ExpiresAt, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

// GetPendingByToken busca um convite pendente pelo token.
func (r *InvitationRepo) GetPendingByToken(token string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + `
		FROM invitations WHERE token = $1 AND status = 'pendente'`
	return r.scanOne(query, token)
}

// GetPendingByAdminAndEmail busca o convite pendente de um par (admin, e-mail).
func (r *InvitationRepo) GetPendingByAdminAndEmail(adminID, email string) (*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + `
		FROM invitations
		WHERE admin_id = $1 AND lower(email) = lower($2) AND status = 'pendente'`
	return r.scanOne(query, adminID, email)
}

// ListByAdmin lista os convites emitidos por um admin, mais novos primeiro.
func (r *InvitationRepo) ListByAdmin(adminID string, limit, offset int) ([]*entity.Invitation, error) {
	query := `SELECT ` + invitationColumns + `
		FROM invitations WHERE admin_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, adminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invitation
	for rows.Next() {
		var inv entity.Invitation
		if err := rows.Scan(
			&inv.ID, &inv.AdminID, &inv.Email, &inv.NomeProfissional, &inv.CorIdentificacao,
			&inv.Token, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// RefreshPending regrava token, validade, nome e cor de um convite pendente.
func (r *InvitationRepo) RefreshPending(inv *entity.Invitation) error {
	query := `
		UPDATE invitations
		SET token = $2, expires_at = $3, nome_profissional = $4, cor_identificacao = $5
		WHERE id = $1 AND status = 'pendente'`
	tag, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.Token, inv.ExpiresAt, inv.NomeProfissional, inv.CorIdentificacao,
	)
	if err != nil {
		return fmt.Errorf("refresh invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// O convite deixou de estar pendente entre a leitura e a renovação.
		return domain.ErrConflict
	}
	return nil
}

// MarkExpired fecha preguiçosamente um convite vencido.
func (r *InvitationRepo) MarkExpired(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE invitations SET status = 'expirado' WHERE id = $1 AND status = 'pendente'`, id)
	if err != nil {
		return fmt.Errorf("expire invitation: %w", err)
	}
	return nil
}

// MarkAccepted fecha o convite de forma condicional. Zero linhas afetadas
// significa que outra aceitação venceu a corrida: devolve domain.ErrConflict
// para a transação do chamador desfazer o provisionamento.
func (r *InvitationRepo) MarkAccepted(id string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE invitations SET status = 'aceito' WHERE id = $1 AND status = 'pendente'`, id)
	if err != nil {
		return fmt.Errorf("accept invitation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *InvitationRepo) scanOne(query string, args ...any) (*entity.Invitation, error) {
	var inv entity.Invitation
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&inv.ID, &inv.AdminID, &inv.Email, &inv.NomeProfissional, &inv.CorIdentificacao,
		&inv.Token, &inv.Status, &inv.ExpiresAt, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invitation: %w", err)
	}
	return &inv, nil
}
