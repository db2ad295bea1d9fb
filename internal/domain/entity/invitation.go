package entity

import "time"

// Status possíveis de um convite.
const (
	InvitationPending  = "pendente"
	InvitationAccepted = "aceito"
	InvitationExpired  = "expirado"
)

// CorIdentificacaoPadrao é a cor usada quando o admin não escolhe uma.
const CorIdentificacaoPadrao = "#3b82f6"

// Invitation é uma oferta com prazo, de uso único, para um usuário entrar na
// conta de um admin como profissional.
//
// Invariantes:
//   - no máximo um convite pendente por (admin_id, email); reconvite
//     atualiza a linha existente (token e validade novos) em vez de duplicar;
//   - o token só é aceitável enquanto status = pendente e agora < ExpiresAt;
//   - consumido, o status vai para aceito e o token morre em definitivo.
type Invitation struct {
	ID               string
	AdminID          string
	Email            string // comparado sem diferenciar maiúsculas
	NomeProfissional string // sugestão de nome de exibição, opcional
	CorIdentificacao string // opcional; vazio usa CorIdentificacaoPadrao
	Token            string // UUID aleatório, credencial de uso único
	Status           string // pendente, aceito, expirado
	ExpiresAt        time.Time
	CreatedAt        time.Time
}
