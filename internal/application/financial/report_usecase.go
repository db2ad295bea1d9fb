package financial

import (
	"context"
	"fmt"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ReportPDFGenerator porta para a geração do PDF do relatório mensal.
type ReportPDFGenerator interface {
	GenerateMonthlyReport(
		ctx context.Context,
		mes string,
		summary *repository.CashFlowSummary,
		receivables []*entity.Receivable,
		expenses []*entity.Expense,
	) ([]byte, error)
}

// ReportUseCase resumo de fluxo de caixa e relatório mensal em PDF.
type ReportUseCase struct {
	cashRepo    repository.CashFlowRepository
	recvRepo    repository.ReceivableRepository
	expenseRepo repository.ExpenseRepository
	pdf         ReportPDFGenerator
	scope       *usecase.ScopeResolver
}

// NewReportUseCase constrói o caso de uso.
func NewReportUseCase(
	cashRepo repository.CashFlowRepository,
	recvRepo repository.ReceivableRepository,
	expenseRepo repository.ExpenseRepository,
	pdf ReportPDFGenerator,
	scope *usecase.ScopeResolver,
) *ReportUseCase {
	return &ReportUseCase{
		cashRepo:    cashRepo,
		recvRepo:    recvRepo,
		expenseRepo: expenseRepo,
		pdf:         pdf,
		scope:       scope,
	}
}

// Summary agrega receitas e despesas do mês (YYYY-MM) da conta do chamador.
func (uc *ReportUseCase) Summary(callerID, mes string) (*dto.CashFlowResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	f, err := monthFilter(mes, dto.PageRequest{})
	if err != nil {
		return nil, err
	}
	s, err := uc.cashRepo.Summary(sc.ContaPrincipalID, f)
	if err != nil {
		return nil, fmt.Errorf("resumo do mês: %w", err)
	}
	return &dto.CashFlowResponse{
		Mes:             mes,
		ReceitaPaga:     s.ReceitaPaga,
		ReceitaPendente: s.ReceitaPendente,
		DespesaPaga:     s.DespesaPaga,
		DespesaPendente: s.DespesaPendente,
		Saldo:           s.ReceitaPaga.Sub(s.DespesaPaga),
	}, nil
}

// MonthlyReportPDF gera o PDF do mês com resumo e lançamentos.
func (uc *ReportUseCase) MonthlyReportPDF(ctx context.Context, callerID, mes string) ([]byte, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	f, err := monthFilter(mes, dto.PageRequest{Limit: 100})
	if err != nil {
		return nil, err
	}
	summary, err := uc.cashRepo.Summary(sc.ContaPrincipalID, f)
	if err != nil {
		return nil, fmt.Errorf("resumo do mês: %w", err)
	}
	receivables, err := uc.recvRepo.ListByMonth(sc.ContaPrincipalID, sc.UserIDs, f)
	if err != nil {
		return nil, fmt.Errorf("cobranças do mês: %w", err)
	}
	expenses, err := uc.expenseRepo.ListByMonth(sc.ContaPrincipalID, f)
	if err != nil {
		return nil, fmt.Errorf("despesas do mês: %w", err)
	}
	return uc.pdf.GenerateMonthlyReport(ctx, mes, summary, receivables, expenses)
}
