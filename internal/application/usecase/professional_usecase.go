package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ProfessionalUseCase gestão dos perfis da conta pelo admin, mais a edição do
// próprio perfil por qualquer usuário.
type ProfessionalUseCase struct {
	profileRepo repository.ProfileRepository
}

// NewProfessionalUseCase constrói o caso de uso.
func NewProfessionalUseCase(profileRepo repository.ProfileRepository) *ProfessionalUseCase {
	return &ProfessionalUseCase{profileRepo: profileRepo}
}

// ListByAccount lista os perfis da conta do admin (inclui o próprio).
func (uc *ProfessionalUseCase) ListByAccount(adminID string, page dto.PageRequest) ([]dto.ProfileResponse, error) {
	page.DefaultPage()
	list, err := uc.profileRepo.ListByContaPrincipal(adminID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar perfis: %w", err)
	}
	items := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProfileResponse(p))
	}
	return items, nil
}

// SetAtivo ativa/desativa um profissional da conta do admin. Nunca apaga.
// O admin não pode desativar a si mesmo.
func (uc *ProfessionalUseCase) SetAtivo(adminID, profileID string, ativo bool) error {
	if profileID == adminID {
		return domain.ErrInvalidInput
	}
	p, err := uc.profileRepo.GetByID(profileID)
	if err != nil {
		return fmt.Errorf("consultar perfil: %w", err)
	}
	if p == nil || p.ContaPrincipalID != adminID {
		return domain.ErrNotFound
	}
	return uc.profileRepo.SetAtivo(profileID, ativo)
}

// GetOwn devolve o perfil do próprio chamador.
func (uc *ProfessionalUseCase) GetOwn(callerID string) (*dto.ProfileResponse, error) {
	p, err := uc.profileRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProfileResponse(p), nil
}

// UpdateOwn edita campos do próprio perfil. ContaPrincipalID é intocável por
// aqui; só a aceitação de convite o define.
func (uc *ProfessionalUseCase) UpdateOwn(callerID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	p, err := uc.profileRepo.GetByID(callerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if nome := strings.TrimSpace(in.Nome); nome != "" {
		p.Nome = nome
	}
	p.CPF = in.CPF
	p.RegistroProfissional = in.RegistroProfissional
	if in.CorIdentificacao != "" {
		p.CorIdentificacao = in.CorIdentificacao
	}
	p.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(p); err != nil {
		return nil, err
	}
	return toProfileResponse(p), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:                   p.ID,
		Nome:                 p.Nome,
		Email:                p.Email,
		CPF:                  p.CPF,
		RegistroProfissional: p.RegistroProfissional,
		CorIdentificacao:     p.CorIdentificacao,
		ContaPrincipalID:     p.ContaPrincipalID,
		Ativo:                p.Ativo,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
