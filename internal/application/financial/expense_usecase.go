package financial

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ExpenseUseCase contas a pagar (despesas da conta).
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	scope *usecase.ScopeResolver
}

// NewExpenseUseCase constrói o caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository, scope *usecase.ScopeResolver) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, scope: scope}
}

// Create cria uma despesa na conta do chamador.
func (uc *ExpenseUseCase) Create(callerID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Descricao) == "" || in.DataVencimento == "" || !in.Valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	vencimento, err := time.Parse("2006-01-02", in.DataVencimento)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	e := &entity.Expense{
		ID:               uuid.NewString(),
		UserID:           callerID,
		ContaPrincipalID: sc.ContaPrincipalID,
		Descricao:        strings.TrimSpace(in.Descricao),
		Categoria:        in.Categoria,
		Valor:            in.Valor,
		DataVencimento:   vencimento,
		Status:           entity.PaymentPending,
		Observacao:       in.Observacao,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(e); err != nil {
		return nil, err
	}
	return toExpenseResponse(e), nil
}

// ListByMonth lista as despesas de um mês (YYYY-MM) da conta do chamador.
func (uc *ExpenseUseCase) ListByMonth(callerID, mes string, page dto.PageRequest) ([]dto.ExpenseResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	f, err := monthFilter(mes, page)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByMonth(sc.ContaPrincipalID, f)
	if err != nil {
		return nil, fmt.Errorf("listar despesas: %w", err)
	}
	items := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toExpenseResponse(e))
	}
	return items, nil
}

// Pay marca manualmente uma despesa como paga.
func (uc *ExpenseUseCase) Pay(callerID, id string, in dto.PayRequest) error {
	e, err := uc.resolveOwned(callerID, id)
	if err != nil {
		return err
	}
	if e.Status == entity.PaymentCanceled {
		return domain.ErrConflict
	}
	pago := time.Now()
	if in.DataPagamento != "" {
		t, err := time.Parse("2006-01-02", in.DataPagamento)
		if err != nil {
			return domain.ErrInvalidInput
		}
		pago = t
	}
	return uc.repo.UpdateStatus(id, entity.PaymentPaid, &pago, in.FormaPagamento)
}

// Cancel marca manualmente uma despesa como cancelada.
func (uc *ExpenseUseCase) Cancel(callerID, id string) error {
	e, err := uc.resolveOwned(callerID, id)
	if err != nil {
		return err
	}
	if e.Status == entity.PaymentPaid {
		return domain.ErrConflict
	}
	return uc.repo.UpdateStatus(id, entity.PaymentCanceled, nil, "")
}

// Archive arquiva uma despesa.
func (uc *ExpenseUseCase) Archive(callerID, id string) error {
	if _, err := uc.resolveOwned(callerID, id); err != nil {
		return err
	}
	return uc.repo.SetArchived(id, true)
}

func (uc *ExpenseUseCase) resolveOwned(callerID, id string) (*entity.Expense, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	e, err := uc.repo.GetByID(id, sc.ContaPrincipalID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if !sc.IsPrincipal && e.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return e, nil
}

func toExpenseResponse(e *entity.Expense) *dto.ExpenseResponse {
	return &dto.ExpenseResponse{
		ID:             e.ID,
		Descricao:      e.Descricao,
		Categoria:      e.Categoria,
		Valor:          e.Valor,
		DataVencimento: e.DataVencimento,
		DataPagamento:  e.DataPagamento,
		Status:         e.Status,
		FormaPagamento: e.FormaPagamento,
		Observacao:     e.Observacao,
		CreatedAt:      e.CreatedAt,
	}
}
