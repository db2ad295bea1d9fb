package invitation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// IssuerConfig parâmetros de emissão de convites.
type IssuerConfig struct {
	ExpiryDays    int    // validade do convite a partir da emissão
	DefaultOrigin string // origem de fallback para o link; vazio exige origin na chamada
}

// IssuerUseCase emite (ou renova) convites pendentes. Somente admins.
type IssuerUseCase struct {
	invRepo  repository.InvitationRepository
	roleRepo repository.RoleRepository
	cfg      IssuerConfig
}

// NewIssuerUseCase constrói o caso de uso de emissão.
func NewIssuerUseCase(invRepo repository.InvitationRepository, roleRepo repository.RoleRepository, cfg IssuerConfig) *IssuerUseCase {
	if cfg.ExpiryDays <= 0 {
		cfg.ExpiryDays = 7
	}
	return &IssuerUseCase{invRepo: invRepo, roleRepo: roleRepo, cfg: cfg}
}

// Issue cria um convite pendente para (adminID, email), ou renova o existente.
//
// Regras:
//   - o chamador precisa ter papel admin (domain.ErrForbidden caso contrário);
//   - email é obrigatório (domain.ErrInvalidInput);
//   - já existe pendente para o par → regrava token, validade, nome e cor na
//     mesma linha, nunca cria uma segunda pendente;
//   - o link tem a forma <origin>/signup?token=<token>; sem origem resolvível
//     a chamada falha com domain.ErrOriginRequired em vez de emitir um link
//     malformado.
//
// requestOrigin é o header Origin da requisição, usado como fallback.
func (uc *IssuerUseCase) Issue(adminID string, in dto.InviteRequest, requestOrigin string) (*dto.InviteResponse, error) {
	role, err := uc.roleRepo.GetByUserID(adminID)
	if err != nil {
		return nil, fmt.Errorf("consultar papel do emissor: %w", err)
	}
	if role == nil || role.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, domain.ErrInvalidInput
	}

	origin := resolveOrigin(in.Origin, requestOrigin, uc.cfg.DefaultOrigin)
	if origin == "" {
		return nil, domain.ErrOriginRequired
	}

	cor := in.CorIdentificacao
	if cor == "" {
		cor = entity.CorIdentificacaoPadrao
	}

	now := time.Now()
	token := uuid.NewString()
	expiresAt := now.Add(time.Duration(uc.cfg.ExpiryDays) * 24 * time.Hour)

	existing, err := uc.invRepo.GetPendingByAdminAndEmail(adminID, email)
	if err != nil {
		return nil, fmt.Errorf("consultar convite pendente: %w", err)
	}

	var inv *entity.Invitation
	if existing != nil {
		// Reconvite: renova a linha pendente em vez de duplicar.
		existing.Token = token
		existing.ExpiresAt = expiresAt
		existing.NomeProfissional = in.Nome
		existing.CorIdentificacao = cor
		if err := uc.invRepo.RefreshPending(existing); err != nil {
			return nil, fmt.Errorf("renovar convite: %w", err)
		}
		inv = existing
	} else {
		inv = &entity.Invitation{
			ID:               uuid.NewString(),
			AdminID:          adminID,
			Email:            email,
			NomeProfissional: in.Nome,
			CorIdentificacao: cor,
			Token:            token,
			Status:           entity.InvitationPending,
			ExpiresAt:        expiresAt,
			CreatedAt:        now,
		}
		if err := uc.invRepo.Create(inv); err != nil {
			// Corrida de emissões simultâneas: o índice único parcial em
			// (admin_id, lower(email)) WHERE status = 'pendente' barra a segunda.
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, domain.ErrConflict
			}
			return nil, fmt.Errorf("criar convite: %w", err)
		}
	}

	return &dto.InviteResponse{
		Invitation: toInvitationResponse(inv, true),
		InviteLink: fmt.Sprintf("%s/signup?token=%s", strings.TrimRight(origin, "/"), token),
	}, nil
}

// List lista os convites emitidos pelo admin.
func (uc *IssuerUseCase) List(adminID string, limit, offset int) ([]dto.InvitationResponse, error) {
	list, err := uc.invRepo.ListByAdmin(adminID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar convites: %w", err)
	}
	items := make([]dto.InvitationResponse, 0, len(list))
	for _, inv := range list {
		items = append(items, toInvitationResponse(inv, true))
	}
	return items, nil
}

func resolveOrigin(payload, request, fallback string) string {
	for _, o := range []string{payload, request, fallback} {
		if strings.TrimSpace(o) != "" {
			return strings.TrimSpace(o)
		}
	}
	return ""
}

func toInvitationResponse(inv *entity.Invitation, withToken bool) dto.InvitationResponse {
	out := dto.InvitationResponse{
		ID:               inv.ID,
		AdminID:          inv.AdminID,
		Email:            inv.Email,
		NomeProfissional: inv.NomeProfissional,
		CorIdentificacao: inv.CorIdentificacao,
		Status:           inv.Status,
		ExpiresAt:        inv.ExpiresAt,
		CreatedAt:        inv.CreatedAt,
	}
	if withToken {
		out.Token = inv.Token
	}
	return out
}
