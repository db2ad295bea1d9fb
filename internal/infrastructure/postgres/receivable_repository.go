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

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

// ReceivableRepo implementação do porto ReceivableRepository sobre PostgreSQL.
// O recorte por conta usa conta_principal_id: toda a equipe enxerga as
// cobranças da conta, mas profissionais só as próprias (filtro por scope).
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository constrói o adaptador.
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

const receivableColumns = `id, user_id, conta_principal_id, patient_id,
	COALESCE(appointment_id::text, ''), data_cobranca, valor, status_pagamento,
	data_pagamento, forma_pagamento, observacao, gerar_nfe, origem, archived,
	created_at, updated_at`

func scanReceivable(row pgx.Row) (*entity.Receivable, error) {
	var rc entity.Receivable
	err := row.Scan(
		&rc.ID, &rc.UserID, &rc.ContaPrincipalID, &rc.PatientID,
		&rc.AppointmentID, &rc.DataCobranca, &rc.Valor, &rc.StatusPagamento,
		&rc.DataPagamento, &rc.FormaPagamento, &rc.Observacao, &rc.GerarNFe,
		&rc.Origem, &rc.Archived, &rc.CreatedAt, &rc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// Create persiste uma nova cobrança. appointment_id vazio vira NULL.
func (r *ReceivableRepo) Create(rc *entity.Receivable) error {
	query := `
		INSERT INTO receivables (id, user_id, conta_principal_id, patient_id,
			appointment_id, data_cobranca, valor, status_pagamento, data_pagamento,
			forma_pagamento, observacao, gerar_nfe, origem, archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, $8, $9,
			$10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		rc.ID, rc.UserID, rc.ContaPrincipalID, rc.PatientID,
		rc.AppointmentID, rc.DataCobranca, rc.Valor, rc.StatusPagamento, rc.DataPagamento,
		rc.FormaPagamento, rc.Observacao, rc.GerarNFe, rc.Origem, rc.Archived,
		rc.CreatedAt, rc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert receivable: %w", err)
	}
	return nil
}

// GetByID busca uma cobrança da conta informada.
func (r *ReceivableRepo) GetByID(id string, contaPrincipalID string) (*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + `
		FROM receivables WHERE id = $1 AND conta_principal_id = $2`
	rc, err := scanReceivable(r.q.QueryRow(context.Background(), query, id, contaPrincipalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receivable: %w", err)
	}
	return rc, nil
}

// ListByMonth lista as cobranças de um mês, restritas ao scope informado.
func (r *ReceivableRepo) ListByMonth(contaPrincipalID string, scope []string, f repository.MonthFilter) ([]*entity.Receivable, error) {
	query := `SELECT ` + receivableColumns + `
		FROM receivables
		WHERE conta_principal_id = $1 AND user_id = ANY($2)
			AND archived = FALSE
			AND data_cobranca >= $3 AND data_cobranca < $4
		ORDER BY data_cobranca, created_at LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(context.Background(), query,
		contaPrincipalID, scope, f.From, f.To, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list receivables: %w", err)
	}
	defer rows.Close()
	var list []*entity.Receivable
	for rows.Next() {
		rc, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receivable: %w", err)
		}
		list = append(list, rc)
	}
	return list, rows.Err()
}

// UpdateStatus muda o status de pagamento e registra data/forma do pagamento.
func (r *ReceivableRepo) UpdateStatus(id, status string, dataPagamento *time.Time, formaPagamento string) error {
	query := `
		UPDATE receivables SET status_pagamento = $2, data_pagamento = $3,
			forma_pagamento = COALESCE(NULLIF($4, ''), forma_pagamento), updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, dataPagamento, formaPagamento)
	if err != nil {
		return fmt.Errorf("update receivable status: %w", err)
	}
	return nil
}

// SetArchived arquiva/desarquiva uma cobrança.
func (r *ReceivableRepo) SetArchived(id string, archived bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE receivables SET archived = $2, updated_at = now() WHERE id = $1`,
		id, archived)
	if err != nil {
		return fmt.Errorf("archive receivable: %w", err)
	}
	return nil
}
