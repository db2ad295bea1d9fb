package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

// RoleRepo implementação do porto RoleRepository sobre PostgreSQL.
type RoleRepo struct {
	q Querier
}

// NewRoleRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// GetByUserID busca o papel de um usuário.
func (r *RoleRepo) GetByUserID(userID string) (*entity.UserRole, error) {
	query := `SELECT id, user_id, role FROM user_roles WHERE user_id = $1`
	var ur entity.UserRole
	err := r.q.QueryRow(context.Background(), query, userID).Scan(&ur.ID, &ur.UserID, &ur.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return &ur, nil
}

// Create grava um papel para o usuário.
func (r *RoleRepo) Create(role *entity.UserRole) error {
	query := `INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, role.ID, role.UserID, role.Role)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

// ReplaceForUser remove qualquer papel do usuário e grava o novo. Dentro de
// uma transação a janela sem papel não é observável por outras sessões.
func (r *RoleRepo) ReplaceForUser(userID, role string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete roles: %w", err)
	}
	query := `INSERT INTO user_roles (id, user_id, role) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, uuid.NewString(), userID, role); err != nil {
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}
