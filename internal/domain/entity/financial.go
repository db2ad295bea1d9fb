package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de pagamento compartilhados por cobranças e despesas.
const (
	PaymentPending  = "pendente"
	PaymentPaid     = "pago"
	PaymentCanceled = "cancelado"
)

// Origens de uma cobrança.
const (
	ReceivableManual      = "manual"
	ReceivableAtendimento = "atendimento"
)

// Receivable é um valor a receber de um paciente (conta a receber).
// Valores monetários usam decimal para evitar erro de ponto flutuante.
type Receivable struct {
	ID               string
	UserID           string
	ContaPrincipalID string
	PatientID        string
	AppointmentID    string
	DataCobranca     time.Time
	Valor            decimal.Decimal
	StatusPagamento  string // pendente, pago, cancelado
	DataPagamento    *time.Time
	FormaPagamento   string
	Observacao       string
	GerarNFe         bool
	Origem           string // manual, atendimento
	Archived         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Expense é uma despesa da conta (contas a pagar).
type Expense struct {
	ID               string
	UserID           string
	ContaPrincipalID string
	Descricao        string
	Categoria        string
	Valor            decimal.Decimal
	DataVencimento   time.Time
	DataPagamento    *time.Time
	Status           string // pendente, pago, cancelado
	FormaPagamento   string
	Observacao       string
	Archived         bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
