package invitation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// TxRunner executa o provisionamento da aceitação dentro de uma transação.
// Os repositórios recebidos pelo callback estão atados à mesma transação;
// qualquer erro (inclusive o conflito do fechamento condicional) desfaz tudo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		profileRepo repository.ProfileRepository,
		roleRepo repository.RoleRepository,
		invRepo repository.InvitationRepository,
	) error) error
}

// AcceptanceUseCase converte um convite pendente mais uma sessão autenticada
// em perfil e papel provisionados, exatamente uma vez.
type AcceptanceUseCase struct {
	invRepo repository.InvitationRepository
	tx      TxRunner
}

// NewAcceptanceUseCase constrói o caso de uso de aceitação.
func NewAcceptanceUseCase(invRepo repository.InvitationRepository, tx TxRunner) *AcceptanceUseCase {
	return &AcceptanceUseCase{invRepo: invRepo, tx: tx}
}

// Accept valida o token e provisiona perfil + papel do chamador.
//
// Sequência:
//  1. token vazio → domain.ErrInvalidInput;
//  2. busca por token com status pendente; sem linha → domain.ErrInviteNotFound
//     (token errado, já aceito e já expirado-fechado respondem igual, para não
//     vazar se o token existiu);
//  3. vencido → marca expirado e falha com domain.ErrInviteExpired; a próxima
//     tentativa com o mesmo token cai no passo 2;
//  4. e-mail do convite ≠ e-mail autenticado (sem caixa) → domain.ErrEmailMismatch;
//  5. em uma transação: upsert do perfil (conta_principal_id = admin do
//     convite), troca do papel por "profissional" e fechamento condicional do
//     convite. Zero linhas no fechamento significa que outra aceitação venceu
//     a corrida: a transação desfaz o provisionamento e devolve
//     domain.ErrConflict.
//
// O convite só vira aceito depois de todo o provisionamento; uma falha parcial
// o deixa pendente e a repetição da chamada refaz os passos idempotentes.
func (uc *AcceptanceUseCase) Accept(ctx context.Context, callerID, callerEmail, inviteToken string) (*dto.AcceptInviteResponse, error) {
	if strings.TrimSpace(inviteToken) == "" {
		return nil, domain.ErrInvalidInput
	}

	inv, err := uc.invRepo.GetPendingByToken(inviteToken)
	if err != nil {
		return nil, fmt.Errorf("consultar convite: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrInviteNotFound
	}

	if !time.Now().Before(inv.ExpiresAt) {
		// Fechamento preguiçoso: única mutação em chamada que falha.
		if err := uc.invRepo.MarkExpired(inv.ID); err != nil {
			return nil, fmt.Errorf("expirar convite: %w", err)
		}
		return nil, domain.ErrInviteExpired
	}

	if !strings.EqualFold(inv.Email, callerEmail) {
		return nil, domain.ErrEmailMismatch
	}

	nome := inv.NomeProfissional
	if nome == "" {
		nome = emailLocalPart(callerEmail)
	}
	cor := inv.CorIdentificacao
	if cor == "" {
		cor = entity.CorIdentificacaoPadrao
	}

	err = uc.tx.Run(ctx, func(
		profileRepo repository.ProfileRepository,
		roleRepo repository.RoleRepository,
		invRepo repository.InvitationRepository,
	) error {
		now := time.Now()
		if err := profileRepo.Upsert(&entity.Profile{
			ID:               callerID,
			Nome:             nome,
			Email:            strings.ToLower(callerEmail),
			CorIdentificacao: cor,
			ContaPrincipalID: inv.AdminID,
			Ativo:            true,
			CreatedAt:        now,
			UpdatedAt:        now,
		}); err != nil {
			return fmt.Errorf("provisionar perfil: %w", err)
		}

		// Remove o papel admin atribuído no cadastro avulso e grava
		// profissional; evita que a conta fique também admin de si mesma.
		if err := roleRepo.ReplaceForUser(callerID, entity.RoleProfissional); err != nil {
			return fmt.Errorf("trocar papel: %w", err)
		}

		// Fechamento condicional; domain.ErrConflict desfaz a transação.
		return invRepo.MarkAccepted(inv.ID)
	})
	if err != nil {
		return nil, err
	}

	return &dto.AcceptInviteResponse{Success: true, Message: "Convite aceito com sucesso"}, nil
}

// Lookup devolve os metadados públicos de um convite pendente, para a página
// de cadastro renderizar o contexto do convite. A checagem de validade aqui é
// apenas informativa; o servidor continua sendo a autoridade na aceitação.
func (uc *AcceptanceUseCase) Lookup(token string) (*dto.InvitationPublicResponse, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invRepo.GetPendingByToken(token)
	if err != nil {
		return nil, fmt.Errorf("consultar convite: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrInviteNotFound
	}
	cor := inv.CorIdentificacao
	if cor == "" {
		cor = entity.CorIdentificacaoPadrao
	}
	return &dto.InvitationPublicResponse{
		Email:            inv.Email,
		NomeProfissional: inv.NomeProfissional,
		CorIdentificacao: cor,
		Status:           inv.Status,
		ExpiresAt:        inv.ExpiresAt,
	}, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}
