package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo implementação do porto PatientRepository sobre PostgreSQL.
// Toda leitura filtra por user_id = ANY(scope): é o análogo das políticas
// por linha do banco original.
type PatientRepo struct {
	q Querier
}

// NewPatientRepository constrói o adaptador. Aceita pool ou tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

const patientColumns = `id, user_id, nome_completo, nome_lowercase, telefone, endereco,
	responsavel_nome, doenca_principal, observacoes_gerais, convenio, cpf,
	data_nascimento, status, archived, created_by, updated_by, created_at, updated_at`

// Create persiste um novo paciente.
func (r *PatientRepo) Create(p *entity.Patient) error {
	query := `
		INSERT INTO patients (id, user_id, nome_completo, nome_lowercase, telefone, endereco,
			responsavel_nome, doenca_principal, observacoes_gerais, convenio, cpf,
			data_nascimento, status, archived, created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.NomeCompleto, p.NomeLowercase, p.Telefone, p.Endereco,
		p.ResponsavelNome, p.DoencaPrincipal, p.ObservacoesGerais, p.Convenio, p.CPF,
		p.DataNascimento, p.Status, p.Archived, p.CreatedBy, p.UpdatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID busca um paciente dentro do escopo do chamador.
func (r *PatientRepo) GetByID(id string, scope []string) (*entity.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients WHERE id = $1 AND user_id = ANY($2)`
	var p entity.Patient
	err := r.q.QueryRow(context.Background(), query, id, scope).Scan(
		&p.ID, &p.UserID, &p.NomeCompleto, &p.NomeLowercase, &p.Telefone, &p.Endereco,
		&p.ResponsavelNome, &p.DoencaPrincipal, &p.ObservacoesGerais, &p.Convenio, &p.CPF,
		&p.DataNascimento, &p.Status, &p.Archived, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// List lista pacientes do escopo com busca por prefixo de nome.
func (r *PatientRepo) List(scope []string, f repository.PatientFilter) ([]*entity.Patient, error) {
	query := `SELECT ` + patientColumns + `
		FROM patients
		WHERE user_id = ANY($1) AND archived = $2
			AND ($3 = '' OR nome_lowercase LIKE $3 || '%')
		ORDER BY nome_lowercase LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, scope, f.Archived, f.Nome, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.NomeCompleto, &p.NomeLowercase, &p.Telefone, &p.Endereco,
			&p.ResponsavelNome, &p.DoencaPrincipal, &p.ObservacoesGerais, &p.Convenio, &p.CPF,
			&p.DataNascimento, &p.Status, &p.Archived, &p.CreatedBy, &p.UpdatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update atualiza um paciente.
func (r *PatientRepo) Update(p *entity.Patient) error {
	query := `
		UPDATE patients SET nome_completo = $2, nome_lowercase = $3, telefone = $4,
			endereco = $5, responsavel_nome = $6, doenca_principal = $7,
			observacoes_gerais = $8, convenio = $9, cpf = $10, data_nascimento = $11,
			status = $12, updated_by = $13, updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.NomeCompleto, p.NomeLowercase, p.Telefone, p.Endereco, p.ResponsavelNome,
		p.DoencaPrincipal, p.ObservacoesGerais, p.Convenio, p.CPF, p.DataNascimento,
		p.Status, p.UpdatedBy, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

// SetArchived arquiva/desarquiva um paciente.
func (r *PatientRepo) SetArchived(id string, archived bool, updatedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE patients SET archived = $2, updated_by = $3, updated_at = now() WHERE id = $1`,
		id, archived, updatedBy)
	if err != nil {
		return fmt.Errorf("archive patient: %w", err)
	}
	return nil
}
