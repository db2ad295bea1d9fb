package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agendaclin/consultorio-api/internal/domain/entity"
)

// MonthFilter recorta um mês-calendário (From inclusivo, To exclusivo).
type MonthFilter struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// CashFlowSummary totais agregados de um mês (calculados no banco).
type CashFlowSummary struct {
	ReceitaPaga     decimal.Decimal
	ReceitaPendente decimal.Decimal
	DespesaPaga     decimal.Decimal
	DespesaPendente decimal.Decimal
}

// ReceivableRepository define o porto de persistência para contas a receber.
type ReceivableRepository interface {
	Create(r *entity.Receivable) error
	GetByID(id string, contaPrincipalID string) (*entity.Receivable, error)
	ListByMonth(contaPrincipalID string, scope []string, f MonthFilter) ([]*entity.Receivable, error)
	UpdateStatus(id, status string, dataPagamento *time.Time, formaPagamento string) error
	SetArchived(id string, archived bool) error
}

// ExpenseRepository define o porto de persistência para despesas.
type ExpenseRepository interface {
	Create(e *entity.Expense) error
	GetByID(id string, contaPrincipalID string) (*entity.Expense, error)
	ListByMonth(contaPrincipalID string, f MonthFilter) ([]*entity.Expense, error)
	UpdateStatus(id, status string, dataPagamento *time.Time, formaPagamento string) error
	SetArchived(id string, archived bool) error
}

// CashFlowRepository agrega receitas e despesas de um mês em SQL.
type CashFlowRepository interface {
	Summary(contaPrincipalID string, f MonthFilter) (*CashFlowSummary, error)
}
