package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReceivableRequest entrada para criar uma cobrança.
type CreateReceivableRequest struct {
	PatientID     string          `json:"patient_id"`
	AppointmentID string          `json:"appointment_id"`
	DataCobranca  string          `json:"data_cobranca"` // YYYY-MM-DD
	Valor         decimal.Decimal `json:"valor"`
	Observacao    string          `json:"observacao"`
	GerarNFe      bool            `json:"gerar_nfe"`
	Origem        string          `json:"origem"`
}

// ReceivableResponse saída de uma cobrança.
type ReceivableResponse struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	PatientID       string          `json:"patient_id"`
	AppointmentID   string          `json:"appointment_id,omitempty"`
	DataCobranca    time.Time       `json:"data_cobranca"`
	Valor           decimal.Decimal `json:"valor"`
	StatusPagamento string          `json:"status_pagamento"`
	DataPagamento   *time.Time      `json:"data_pagamento,omitempty"`
	FormaPagamento  string          `json:"forma_pagamento,omitempty"`
	Observacao      string          `json:"observacao,omitempty"`
	GerarNFe        bool            `json:"gerar_nfe"`
	Origem          string          `json:"origem"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateExpenseRequest entrada para criar uma despesa.
type CreateExpenseRequest struct {
	Descricao      string          `json:"descricao"`
	Categoria      string          `json:"categoria"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento string          `json:"data_vencimento"` // YYYY-MM-DD
	Observacao     string          `json:"observacao"`
}

// ExpenseResponse saída de uma despesa.
type ExpenseResponse struct {
	ID             string          `json:"id"`
	Descricao      string          `json:"descricao"`
	Categoria      string          `json:"categoria"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento time.Time       `json:"data_vencimento"`
	DataPagamento  *time.Time      `json:"data_pagamento,omitempty"`
	Status         string          `json:"status"`
	FormaPagamento string          `json:"forma_pagamento,omitempty"`
	Observacao     string          `json:"observacao,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PayRequest entrada para marcar cobrança/despesa como paga.
type PayRequest struct {
	DataPagamento  string `json:"data_pagamento"` // YYYY-MM-DD; vazio usa hoje
	FormaPagamento string `json:"forma_pagamento"`
}

// CashFlowResponse resumo do fluxo de caixa de um mês.
type CashFlowResponse struct {
	Mes             string          `json:"mes"` // YYYY-MM
	ReceitaPaga     decimal.Decimal `json:"receita_paga"`
	ReceitaPendente decimal.Decimal `json:"receita_pendente"`
	DespesaPaga     decimal.Decimal `json:"despesa_paga"`
	DespesaPendente decimal.Decimal `json:"despesa_pendente"`
	Saldo           decimal.Decimal `json:"saldo"` // receita paga - despesa paga
}
