package repository

import (
	"time"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
)

// AppointmentFilter filtros de listagem de atendimentos.
type AppointmentFilter struct {
	PatientID string
	From      *time.Time
	To        *time.Time
	Archived  bool
	Limit     int
	Offset    int
}

// AppointmentRepository define o porto de persistência para atendimentos.
type AppointmentRepository interface {
	Create(a *entity.Appointment) error
	GetByID(id string, scope []string) (*entity.Appointment, error)
	List(scope []string, f AppointmentFilter) ([]*entity.Appointment, error)
	Update(a *entity.Appointment) error
	SetArchived(id string, archived bool, updatedBy string) error
}
