package postgres

import (
	"context"
	"fmt"

	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.CashFlowRepository = (*CashFlowRepo)(nil)

// CashFlowRepo agrega os totais do mês diretamente no banco com SUM ... FILTER,
// evitando carregar as linhas para somar em memória.
type CashFlowRepo struct {
	q Querier
}

// NewCashFlowRepository constrói o adaptador.
func NewCashFlowRepository(q Querier) *CashFlowRepo {
	return &CashFlowRepo{q: q}
}

// Summary calcula os totais pagos e pendentes de receitas e despesas do mês.
func (r *CashFlowRepo) Summary(contaPrincipalID string, f repository.MonthFilter) (*repository.CashFlowSummary, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(valor) FILTER (WHERE status_pagamento = 'pago')
				FROM receivables
				WHERE conta_principal_id = $1 AND archived = FALSE
					AND data_cobranca >= $2 AND data_cobranca < $3), 0),
			COALESCE((SELECT SUM(valor) FILTER (WHERE status_pagamento = 'pendente')
				FROM receivables
				WHERE conta_principal_id = $1 AND archived = FALSE
					AND data_cobranca >= $2 AND data_cobranca < $3), 0),
			COALESCE((SELECT SUM(valor) FILTER (WHERE status = 'pago')
				FROM expenses
				WHERE conta_principal_id = $1 AND archived = FALSE
					AND data_vencimento >= $2 AND data_vencimento < $3), 0),
			COALESCE((SELECT SUM(valor) FILTER (WHERE status = 'pendente')
				FROM expenses
				WHERE conta_principal_id = $1 AND archived = FALSE
					AND data_vencimento >= $2 AND data_vencimento < $3), 0)`
	var s repository.CashFlowSummary
	err := r.q.QueryRow(context.Background(), query, contaPrincipalID, f.From, f.To).Scan(
		&s.ReceitaPaga, &s.ReceitaPendente, &s.DespesaPaga, &s.DespesaPendente,
	)
	if err != nil {
		return nil, fmt.Errorf("cash flow summary: %w", err)
	}
	return &s, nil
}
