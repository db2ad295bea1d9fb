package entity

import "time"

// Status possíveis de um paciente.
const (
	PatientActive   = "ativo"
	PatientInactive = "inativo"
)

// Patient representa um paciente do consultório, pertencente a um
// profissional (UserID) dentro de uma conta.
type Patient struct {
	ID                string
	UserID            string
	NomeCompleto      string
	NomeLowercase     string // derivado de NomeCompleto, para busca sem caixa
	Telefone          string
	Endereco          string
	ResponsavelNome   string
	DoencaPrincipal   string
	ObservacoesGerais string
	Convenio          string
	CPF               string
	DataNascimento    *time.Time
	Status            string // ativo, inativo
	Archived          bool
	CreatedBy         string
	UpdatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
