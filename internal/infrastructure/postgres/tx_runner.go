package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agendaclin/consultorio-api/internal/application/auth"
	"github.com/agendaclin/consultorio-api/internal/application/invitation"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ invitation.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
// É o porto de atomicidade da aceitação de convite: perfil, papel e
// fechamento do convite ou entram juntos ou nada entra.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback conforme o retorno.
func (r *TxRunner) Run(ctx context.Context, fn func(
	profileRepo repository.ProfileRepository,
	roleRepo repository.RoleRepository,
	invRepo repository.InvitationRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProfileRepository(tx), NewRoleRepository(tx), NewInvitationRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ auth.TxRunner = (*SignupTxRunner)(nil)

// SignupTxRunner executa o provisionamento do cadastro (usuário, papel e
// perfil) dentro de uma transação PostgreSQL.
type SignupTxRunner struct {
	pool *pgxpool.Pool
}

// NewSignupTxRunner constrói o runner com o pool.
func NewSignupTxRunner(pool *pgxpool.Pool) *SignupTxRunner {
	return &SignupTxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repositórios atados à tx e faz
// Commit ou Rollback conforme o retorno.
func (r *SignupTxRunner) Run(fn func(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	profileRepo repository.ProfileRepository,
) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewUserRepository(tx), NewRoleRepository(tx), NewProfileRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
