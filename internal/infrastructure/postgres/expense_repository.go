package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo implementação do porto ExpenseRepository sobre PostgreSQL.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constrói o adaptador.
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

const expenseColumns = `id, user_id, conta_principal_id, descricao, categoria, valor,
	data_vencimento, data_pagamento, status, forma_pagamento, observacao, archived,
	created_at, updated_at`

func scanExpense(row pgx.Row) (*entity.Expense, error) {
	var e entity.Expense
	err := row.Scan(
		&e.ID, &e.UserID, &e.ContaPrincipalID, &e.Descricao, &e.Categoria, &e.Valor,
		&e.DataVencimento, &e.DataPagamento, &e.Status, &e.FormaPagamento,
		&e.Observacao, &e.Archived, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste uma nova despesa.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, user_id, conta_principal_id, descricao, categoria,
			valor, data_vencimento, data_pagamento, status, forma_pagamento,
			observacao, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.UserID, e.ContaPrincipalID, e.Descricao, e.Categoria,
		e.Valor, e.DataVencimento, e.DataPagamento, e.Status, e.FormaPagamento,
		e.Observacao, e.Archived, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID busca uma despesa da conta informada.
func (r *ExpenseRepo) GetByID(id string, contaPrincipalID string) (*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expenses WHERE id = $1 AND conta_principal_id = $2`
	e, err := scanExpense(r.q.QueryRow(context.Background(), query, id, contaPrincipalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	return e, nil
}

// ListByMonth lista as despesas de um mês da conta. Despesas são da conta
// inteira, não por profissional, por isso não recebem scope.
func (r *ExpenseRepo) ListByMonth(contaPrincipalID string, f repository.MonthFilter) ([]*entity.Expense, error) {
	query := `SELECT ` + expenseColumns + `
		FROM expenses
		WHERE conta_principal_id = $1 AND archived = FALSE
			AND data_vencimento >= $2 AND data_vencimento < $3
		ORDER BY data_vencimento, created_at LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		contaPrincipalID, f.From, f.To, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// UpdateStatus muda o status de pagamento da despesa.
func (r *ExpenseRepo) UpdateStatus(id, status string, dataPagamento *time.Time, formaPagamento string) error {
	query := `
		UPDATE expenses SET status = $2, data_pagamento = $3,
			forma_pagamento = COALESCE(NULLIF($4, ''), forma_pagamento), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, dataPagamento, formaPagamento)
	if err != nil {
		return fmt.Errorf("update expense status: %w", err)
	}
	return nil
}

// SetArchived arquiva/desarquiva uma despesa.
func (r *ExpenseRepo) SetArchived(id string, archived bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE expenses SET archived = $2, updated_at = now() WHERE id = $1`,
		id, archived)
	if err != nil {
		return fmt.Errorf("archive expense: %w", err)
	}
	return nil
}
