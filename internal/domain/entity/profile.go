package entity

import "time"

// Profile descreve um usuário dentro da hierarquia de contas.
// O ID é o mesmo do usuário autenticado (FK 1:1, não uma chave independente).
// ContaPrincipalID é gravado uma única vez na aceitação do convite e tratado
// como imutável pelo fluxo de convites; para um admin, aponta para si mesmo.
type Profile struct {
	ID                   string
	Nome                 string
	Email                string
	CPF                  string
	RegistroProfissional string
	CorIdentificacao     string
	ContaPrincipalID     string
	Ativo                bool // admins desativam sem apagar
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
