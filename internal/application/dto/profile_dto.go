package dto

import "time"

// ProfileResponse saída de um perfil profissional.
type ProfileResponse struct {
	ID                   string    `json:"id"`
	Nome                 string    `json:"nome"`
	Email                string    `json:"email,omitempty"`
	CPF                  string    `json:"cpf,omitempty"`
	RegistroProfissional string    `json:"registro_profissional,omitempty"`
	CorIdentificacao     string    `json:"cor_identificacao"`
	ContaPrincipalID     string    `json:"conta_principal_id"`
	Ativo                bool      `json:"ativo"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpdateProfileRequest campos editáveis do próprio perfil.
// ContaPrincipalID nunca é editável por aqui.
type UpdateProfileRequest struct {
	Nome                 string `json:"nome"`
	CPF                  string `json:"cpf"`
	RegistroProfissional string `json:"registro_profissional"`
	CorIdentificacao     string `json:"cor_identificacao"`
}
