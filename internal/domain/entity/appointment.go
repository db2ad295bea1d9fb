package entity

import "time"

// Status possíveis de um atendimento.
const (
	AppointmentScheduled = "agendado"
	AppointmentDone      = "realizado"
	AppointmentCanceled  = "cancelado"
)

// Appointment representa um atendimento (consulta) de um paciente.
// Os campos de transcrição são texto opaco produzido por um mecanismo
// externo de ditado; o sistema apenas armazena.
type Appointment struct {
	ID                      string
	UserID                  string
	PatientID               string
	DataAtendimento         time.Time
	Hora                    string
	TextoProntuario         string
	TranscriptionText       string
	TranscriptionEngine     string
	TranscriptionConfidence *float64
	GerarNFe                bool
	Status                  string // agendado, realizado, cancelado
	Archived                bool
	CreatedBy               string
	UpdatedBy               string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
