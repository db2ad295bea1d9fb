package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// AppointmentUseCase regras de negócio de atendimentos.
type AppointmentUseCase struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	scope       *ScopeResolver
}

// NewAppointmentUseCase constrói o caso de uso.
func NewAppointmentUseCase(repo repository.AppointmentRepository, patientRepo repository.PatientRepository, scope *ScopeResolver) *AppointmentUseCase {
	return &AppointmentUseCase{repo: repo, patientRepo: patientRepo, scope: scope}
}

// Create cria um atendimento para um paciente visível ao chamador.
func (uc *AppointmentUseCase) Create(callerID string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	if in.PatientID == "" || in.DataAtendimento == "" {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(in.PatientID, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	data, err := parseDate(in.DataAtendimento)
	if err != nil || data == nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.AppointmentScheduled
	}
	now := time.Now()
	a := &entity.Appointment{
		ID:                      uuid.NewString(),
		UserID:                  callerID,
		PatientID:               in.PatientID,
		DataAtendimento:         *data,
		Hora:                    in.Hora,
		TextoProntuario:         in.TextoProntuario,
		TranscriptionText:       in.TranscriptionText,
		TranscriptionEngine:     in.TranscriptionEngine,
		TranscriptionConfidence: in.TranscriptionConfidence,
		GerarNFe:                in.GerarNFe,
		Status:                  status,
		CreatedBy:               callerID,
		UpdatedBy:               callerID,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := uc.repo.Create(a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// GetByID busca um atendimento visível ao chamador.
func (uc *AppointmentUseCase) GetByID(callerID, id string) (*dto.AppointmentResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAppointmentResponse(a), nil
}

// List lista atendimentos por paciente e/ou intervalo de datas.
func (uc *AppointmentUseCase) List(callerID, patientID, from, to string, page dto.PageRequest) (*dto.AppointmentListResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	fromT, err := parseDate(from)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	toT, err := parseDate(to)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.List(sc.UserIDs, repository.AppointmentFilter{
		PatientID: patientID,
		From:      fromT,
		To:        toT,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAppointmentResponse(a))
	}
	return &dto.AppointmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update atualiza um atendimento visível ao chamador.
func (uc *AppointmentUseCase) Update(callerID, id string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	a, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	if in.DataAtendimento != "" {
		data, err := parseDate(in.DataAtendimento)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		a.DataAtendimento = *data
	}
	if in.Hora != "" {
		a.Hora = in.Hora
	}
	a.TextoProntuario = in.TextoProntuario
	if in.TranscriptionText != "" {
		a.TranscriptionText = in.TranscriptionText
		a.TranscriptionEngine = in.TranscriptionEngine
		a.TranscriptionConfidence = in.TranscriptionConfidence
	}
	a.GerarNFe = in.GerarNFe
	if in.Status != "" {
		if !validAppointmentStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		a.Status = in.Status
	}
	a.UpdatedBy = callerID
	a.UpdatedAt = time.Now()
	if err := uc.repo.Update(a); err != nil {
		return nil, err
	}
	return toAppointmentResponse(a), nil
}

// Archive arquiva um atendimento visível ao chamador.
func (uc *AppointmentUseCase) Archive(callerID, id string) error {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return err
	}
	a, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetArchived(id, true, callerID)
}

func validAppointmentStatus(s string) bool {
	switch s {
	case entity.AppointmentScheduled, entity.AppointmentDone, entity.AppointmentCanceled:
		return true
	}
	return false
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	return &dto.AppointmentResponse{
		ID:                      a.ID,
		UserID:                  a.UserID,
		PatientID:               a.PatientID,
		DataAtendimento:         a.DataAtendimento,
		Hora:                    a.Hora,
		TextoProntuario:         a.TextoProntuario,
		TranscriptionText:       a.TranscriptionText,
		TranscriptionEngine:     a.TranscriptionEngine,
		TranscriptionConfidence: a.TranscriptionConfidence,
		GerarNFe:                a.GerarNFe,
		Status:                  a.Status,
		Archived:                a.Archived,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}
