package usecase

import (
	"fmt"

	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// AccountScope é a visibilidade resolvida de um chamador: a conta principal a
// que ele pertence e os IDs de usuário cujas linhas ele pode ler. Substitui as
// políticas por linha do banco original: todo repositório de leitura filtra
// por este escopo.
type AccountScope struct {
	ContaPrincipalID string
	UserIDs          []string
	// IsPrincipal indica que o chamador é o dono da conta (admin de fato,
	// segundo o perfil no banco, não segundo o claim do token).
	IsPrincipal bool
}

// ScopeResolver resolve o escopo de conta de um chamador a partir do perfil.
type ScopeResolver struct {
	profileRepo repository.ProfileRepository
}

// NewScopeResolver constrói o resolvedor.
func NewScopeResolver(profileRepo repository.ProfileRepository) *ScopeResolver {
	return &ScopeResolver{profileRepo: profileRepo}
}

// Resolve devolve o escopo do chamador a partir do perfil no banco:
//   - dono da conta (conta_principal_id aponta para si): a própria conta mais
//     todos os profissionais vinculados a ela;
//   - profissional: somente as próprias linhas.
//
// A autoridade é o perfil persistido, nunca o claim de papel do token: um
// profissional recém-aceito ainda carrega a sessão admin emitida no cadastro,
// e escopar por esse claim gravaria conta_principal_id errado nas linhas dele.
//
// Perfil inexistente ou desativado → domain.ErrForbidden.
func (s *ScopeResolver) Resolve(userID string) (*AccountScope, error) {
	profile, err := s.profileRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("consultar perfil: %w", err)
	}
	if profile == nil || !profile.Ativo {
		return nil, domain.ErrForbidden
	}

	if profile.ContaPrincipalID != profile.ID {
		return &AccountScope{ContaPrincipalID: profile.ContaPrincipalID, UserIDs: []string{userID}}, nil
	}

	members, err := s.profileRepo.ListByContaPrincipal(userID, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("listar perfis da conta: %w", err)
	}
	ids := []string{userID}
	for _, m := range members {
		if m.ID != userID {
			ids = append(ids, m.ID)
		}
	}
	return &AccountScope{ContaPrincipalID: userID, UserIDs: ids, IsPrincipal: true}, nil
}
