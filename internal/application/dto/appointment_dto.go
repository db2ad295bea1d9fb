package dto

import "time"

// CreateAppointmentRequest entrada para criar/atualizar um atendimento.
// Os campos transcription_* são texto opaco vindo do mecanismo de ditado.
type CreateAppointmentRequest struct {
	PatientID               string   `json:"patient_id"`
	DataAtendimento         string   `json:"data_atendimento"` // YYYY-MM-DD
	Hora                    string   `json:"hora"`
	TextoProntuario         string   `json:"texto_prontuario"`
	TranscriptionText       string   `json:"transcription_text"`
	TranscriptionEngine     string   `json:"transcription_engine"`
	TranscriptionConfidence *float64 `json:"transcription_confidence"`
	GerarNFe                bool     `json:"gerar_nfe"`
	Status                  string   `json:"status"`
}

// AppointmentResponse saída de um atendimento.
type AppointmentResponse struct {
	ID                      string    `json:"id"`
	UserID                  string    `json:"user_id"`
	PatientID               string    `json:"patient_id"`
	DataAtendimento         time.Time `json:"data_atendimento"`
	Hora                    string    `json:"hora,omitempty"`
	TextoProntuario         string    `json:"texto_prontuario,omitempty"`
	TranscriptionText       string    `json:"transcription_text,omitempty"`
	TranscriptionEngine     string    `json:"transcription_engine,omitempty"`
	TranscriptionConfidence *float64  `json:"transcription_confidence,omitempty"`
	GerarNFe                bool      `json:"gerar_nfe"`
	Status                  string    `json:"status"`
	Archived                bool      `json:"archived"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

// AppointmentListResponse página de atendimentos.
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
