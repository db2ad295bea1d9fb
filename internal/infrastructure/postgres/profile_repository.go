package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo implementação do porto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileColumns = `id, nome, email, cpf, registro_profissional, cor_identificacao,
	conta_principal_id, ativo, created_at, updated_at`

// Upsert insere ou substitui o perfil pela chave primária (id do usuário).
// É a semântica que torna o provisionamento da aceitação idempotente.
func (r *ProfileRepo) Upsert(p *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, nome, email, cpf, registro_profissional, cor_identificacao,
			conta_principal_id, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			nome = EXCLUDED.nome,
			email = EXCLUDED.email,
			cor_identificacao = EXCLUDED.cor_identificacao,
			conta_principal_id = EXCLUDED.conta_principal_id,
			ativo = EXCLUDED.ativo,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nome, p.Email, p.CPF, p.RegistroProfissional, p.CorIdentificacao,
		p.ContaPrincipalID, p.Ativo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

// GetByID busca um perfil por ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	var p entity.Profile
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nome, &p.Email, &p.CPF, &p.RegistroProfissional, &p.CorIdentificacao,
		&p.ContaPrincipalID, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

// ListByContaPrincipal lista os perfis de uma conta com paginação.
func (r *ProfileRepo) ListByContaPrincipal(contaPrincipalID string, limit, offset int) ([]*entity.Profile, error) {
	query := `SELECT ` + profileColumns + `
		FROM profiles WHERE conta_principal_id = $1
		ORDER BY nome LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, contaPrincipalID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Profile
	for rows.Next() {
		var p entity.Profile
		if err := rows.Scan(
			&p.ID, &p.Nome, &p.Email, &p.CPF, &p.RegistroProfissional, &p.CorIdentificacao,
			&p.ContaPrincipalID, &p.Ativo, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SetAtivo ativa/desativa um perfil.
func (r *ProfileRepo) SetAtivo(id string, ativo bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE profiles SET ativo = $2, updated_at = now() WHERE id = $1`, id, ativo)
	if err != nil {
		return fmt.Errorf("set ativo: %w", err)
	}
	return nil
}

// Update atualiza os campos editáveis de um perfil.
// conta_principal_id fica de fora de propósito: só a aceitação o define.
func (r *ProfileRepo) Update(p *entity.Profile) error {
	query := `
		UPDATE profiles SET nome = $2, cpf = $3, registro_profissional = $4,
			cor_identificacao = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nome, p.CPF, p.RegistroProfissional, p.CorIdentificacao, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return nil
}
