package dto

import "time"

// CreatePatientRequest entrada para criar/atualizar um paciente.
type CreatePatientRequest struct {
	NomeCompleto      string `json:"nome_completo"`
	Telefone          string `json:"telefone"`
	Endereco          string `json:"endereco"`
	ResponsavelNome   string `json:"responsavel_nome"`
	DoencaPrincipal   string `json:"doenca_principal"`
	ObservacoesGerais string `json:"observacoes_gerais"`
	Convenio          string `json:"convenio"`
	CPF               string `json:"cpf"`
	DataNascimento    string `json:"data_nascimento"` // YYYY-MM-DD
	Status            string `json:"status"`
}

// PatientResponse saída de um paciente.
type PatientResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	NomeCompleto      string     `json:"nome_completo"`
	Telefone          string     `json:"telefone"`
	Endereco          string     `json:"endereco,omitempty"`
	ResponsavelNome   string     `json:"responsavel_nome,omitempty"`
	DoencaPrincipal   string     `json:"doenca_principal,omitempty"`
	ObservacoesGerais string     `json:"observacoes_gerais,omitempty"`
	Convenio          string     `json:"convenio,omitempty"`
	CPF               string     `json:"cpf,omitempty"`
	DataNascimento    *time.Time `json:"data_nascimento,omitempty"`
	Status            string     `json:"status"`
	Archived          bool       `json:"archived"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PatientListResponse página de pacientes.
type PatientListResponse struct {
	Items []PatientResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
