package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementação do porto AppointmentRepository sobre PostgreSQL.
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository constrói o adaptador.
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `id, user_id, patient_id, data_atendimento, hora, texto_prontuario,
	transcription_text, transcription_engine, transcription_confidence, gerar_nfe,
	status, archived, created_by, updated_by, created_at, updated_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.UserID, &a.PatientID, &a.DataAtendimento, &a.Hora, &a.TextoProntuario,
		&a.TranscriptionText, &a.TranscriptionEngine, &a.TranscriptionConfidence, &a.GerarNFe,
		&a.Status, &a.Archived, &a.CreatedBy, &a.UpdatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste um novo atendimento.
func (r *AppointmentRepo) Create(a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, user_id, patient_id, data_atendimento, hora,
			texto_prontuario, transcription_text, transcription_engine,
			transcription_confidence, gerar_nfe, status, archived,
			created_by, updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UserID, a.PatientID, a.DataAtendimento, a.Hora,
		a.TextoProntuario, a.TranscriptionText, a.TranscriptionEngine,
		a.TranscriptionConfidence, a.GerarNFe, a.Status, a.Archived,
		a.CreatedBy, a.UpdatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID busca um atendimento dentro do escopo do chamador.
func (r *AppointmentRepo) GetByID(id string, scope []string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments WHERE id = $1 AND user_id = ANY($2)`
	a, err := scanAppointment(r.q.QueryRow(context.Background(), query, id, scope))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

// List lista atendimentos do escopo, opcionalmente por paciente e intervalo de datas.
func (r *AppointmentRepo) List(scope []string, f repository.AppointmentFilter) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE user_id = ANY($1) AND archived = $2
			AND ($3 = '' OR patient_id::text = $3)
			AND ($4::date IS NULL OR data_atendimento >= $4)
			AND ($5::date IS NULL OR data_atendimento <= $5)
		ORDER BY data_atendimento DESC, hora DESC LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(context.Background(), query,
		scope, f.Archived, f.PatientID, f.From, f.To, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Update atualiza um atendimento.
func (r *AppointmentRepo) Update(a *entity.Appointment) error {
	query := `
		UPDATE appointments SET patient_id = $2, data_atendimento = $3, hora = $4,
			texto_prontuario = $5, transcription_text = $6, transcription_engine = $7,
			transcription_confidence = $8, gerar_nfe = $9, status = $10,
			updated_by = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.PatientID, a.DataAtendimento, a.Hora,
		a.TextoProntuario, a.TranscriptionText, a.TranscriptionEngine,
		a.TranscriptionConfidence, a.GerarNFe, a.Status,
		a.UpdatedBy, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// SetArchived arquiva/desarquiva um atendimento.
func (r *AppointmentRepo) SetArchived(id string, archived bool, updatedBy string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE appointments SET archived = $2, updated_by = $3, updated_at = now() WHERE id = $1`,
		id, archived, updatedBy)
	if err != nil {
		return fmt.Errorf("archive appointment: %w", err)
	}
	return nil
}
