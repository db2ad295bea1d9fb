package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// PatientUseCase regras de negócio de pacientes.
type PatientUseCase struct {
	repo  repository.PatientRepository
	scope *ScopeResolver
}

// NewPatientUseCase constrói o caso de uso.
func NewPatientUseCase(repo repository.PatientRepository, scope *ScopeResolver) *PatientUseCase {
	return &PatientUseCase{repo: repo, scope: scope}
}

// Create cria um paciente pertencente ao chamador.
func (uc *PatientUseCase) Create(callerID string, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if _, err := uc.scope.Resolve(callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.NomeCompleto) == "" || strings.TrimSpace(in.Telefone) == "" {
		return nil, domain.ErrInvalidInput
	}
	nascimento, err := parseDate(in.DataNascimento)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.PatientActive
	}
	now := time.Now()
	p := &entity.Patient{
		ID:                uuid.NewString(),
		UserID:            callerID,
		NomeCompleto:      strings.TrimSpace(in.NomeCompleto),
		NomeLowercase:     normalizeSearchName(in.NomeCompleto),
		Telefone:          in.Telefone,
		Endereco:          in.Endereco,
		ResponsavelNome:   in.ResponsavelNome,
		DoencaPrincipal:   in.DoencaPrincipal,
		ObservacoesGerais: in.ObservacoesGerais,
		Convenio:          in.Convenio,
		CPF:               in.CPF,
		DataNascimento:    nascimento,
		Status:            status,
		CreatedBy:         callerID,
		UpdatedBy:         callerID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// GetByID busca um paciente visível ao chamador.
func (uc *PatientUseCase) GetByID(callerID, id string) (*dto.PatientResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPatientResponse(p), nil
}

// List lista pacientes visíveis ao chamador, com busca por nome.
func (uc *PatientUseCase) List(callerID, nome string, archived bool, page dto.PageRequest) (*dto.PatientListResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.List(sc.UserIDs, repository.PatientFilter{
		Nome:     normalizeSearchName(nome),
		Archived: archived,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PatientResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPatientResponse(p))
	}
	return &dto.PatientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update atualiza um paciente visível ao chamador.
func (uc *PatientUseCase) Update(callerID, id string, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	p, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if strings.TrimSpace(in.NomeCompleto) == "" {
		return nil, domain.ErrInvalidInput
	}
	nascimento, err := parseDate(in.DataNascimento)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	p.NomeCompleto = strings.TrimSpace(in.NomeCompleto)
	p.NomeLowercase = normalizeSearchName(p.NomeCompleto)
	p.Telefone = in.Telefone
	p.Endereco = in.Endereco
	p.ResponsavelNome = in.ResponsavelNome
	p.DoencaPrincipal = in.DoencaPrincipal
	p.ObservacoesGerais = in.ObservacoesGerais
	p.Convenio = in.Convenio
	p.CPF = in.CPF
	p.DataNascimento = nascimento
	if in.Status != "" {
		p.Status = in.Status
	}
	p.UpdatedBy = callerID
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Archive arquiva (soft delete) um paciente visível ao chamador.
func (uc *PatientUseCase) Archive(callerID, id string) error {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return err
	}
	p, err := uc.repo.GetByID(id, sc.UserIDs)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SetArchived(id, true, callerID)
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	return &dto.PatientResponse{
		ID:                p.ID,
		UserID:            p.UserID,
		NomeCompleto:      p.NomeCompleto,
		Telefone:          p.Telefone,
		Endereco:          p.Endereco,
		ResponsavelNome:   p.ResponsavelNome,
		DoencaPrincipal:   p.DoencaPrincipal,
		ObservacoesGerais: p.ObservacoesGerais,
		Convenio:          p.Convenio,
		CPF:               p.CPF,
		DataNascimento:    p.DataNascimento,
		Status:            p.Status,
		Archived:          p.Archived,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// parseDate interpreta YYYY-MM-DD; vazio devolve nil.
func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q: %w", s, err)
	}
	return &t, nil
}
