package dto

import "time"

// InviteRequest entrada para convidar um profissional.
// Origin monta o link de aceitação; se vazio, usa o header Origin da
// requisição ou a origem configurada no servidor.
type InviteRequest struct {
	Email            string `json:"email"`
	Nome             string `json:"nome"`
	CorIdentificacao string `json:"cor_identificacao"`
	Origin           string `json:"origin"`
}

// InvitationResponse saída de um convite (o token só aparece para o admin emissor).
type InvitationResponse struct {
	ID               string    `json:"id"`
	AdminID          string    `json:"admin_id"`
	Email            string    `json:"email"`
	NomeProfissional string    `json:"nome_profissional,omitempty"`
	CorIdentificacao string    `json:"cor_identificacao"`
	Token            string    `json:"token,omitempty"`
	Status           string    `json:"status"`
	ExpiresAt        time.Time `json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

// InviteResponse resposta da emissão: o convite e o link compartilhável.
type InviteResponse struct {
	Invitation InvitationResponse `json:"invitation"`
	InviteLink string             `json:"invite_link"`
}

// InvitationPublicResponse metadados expostos na página de cadastro
// (consulta pública por token; nunca inclui o admin nem o próprio token).
type InvitationPublicResponse struct {
	Email            string    `json:"email"`
	NomeProfissional string    `json:"nome_profissional,omitempty"`
	CorIdentificacao string    `json:"cor_identificacao"`
	Status           string    `json:"status"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// AcceptInviteRequest entrada da aceitação de convite.
type AcceptInviteRequest struct {
	InviteToken string `json:"invite_token"`
}

// AcceptInviteResponse confirmação da aceitação.
type AcceptInviteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
