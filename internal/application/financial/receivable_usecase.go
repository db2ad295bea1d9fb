package financial

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agendaclin/consultorio-api/internal/application/dto"
	"github.com/agendaclin/consultorio-api/internal/application/usecase"
	"github.com/agendaclin/consultorio-api/internal/domain"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ReceivableUseCase contas a receber (cobranças de pacientes).
type ReceivableUseCase struct {
	repo        repository.ReceivableRepository
	patientRepo repository.PatientRepository
	scope       *usecase.ScopeResolver
}

// NewReceivableUseCase constrói o caso de uso.
func NewReceivableUseCase(repo repository.ReceivableRepository, patientRepo repository.PatientRepository, scope *usecase.ScopeResolver) *ReceivableUseCase {
	return &ReceivableUseCase{repo: repo, patientRepo: patientRepo, scope: scope}
}

// Create cria uma cobrança para um paciente visível ao chamador.
func (uc *ReceivableUseCase) Create(callerID string, in dto.CreateReceivableRequest) (*dto.ReceivableResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	if in.PatientID == "" || in.DataCobranca == "" || !in.Valor.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(in.PatientID, sc.UserIDs)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	data, err := time.Parse("2006-01-02", in.DataCobranca)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	origem := in.Origem
	if origem == "" {
		origem = entity.ReceivableManual
	}
	now := time.Now()
	r := &entity.Receivable{
		ID:               uuid.NewString(),
		UserID:           callerID,
		ContaPrincipalID: sc.ContaPrincipalID,
		PatientID:        in.PatientID,
		AppointmentID:    in.AppointmentID,
		DataCobranca:     data,
		Valor:            in.Valor,
		StatusPagamento:  entity.PaymentPending,
		Observacao:       in.Observacao,
		GerarNFe:         in.GerarNFe,
		Origem:           origem,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(r); err != nil {
		return nil, err
	}
	return toReceivableResponse(r), nil
}

// ListByMonth lista as cobranças de um mês (YYYY-MM) visíveis ao chamador.
func (uc *ReceivableUseCase) ListByMonth(callerID, mes string, page dto.PageRequest) ([]dto.ReceivableResponse, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	f, err := monthFilter(mes, page)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByMonth(sc.ContaPrincipalID, sc.UserIDs, f)
	if err != nil {
		return nil, fmt.Errorf("listar cobranças: %w", err)
	}
	items := make([]dto.ReceivableResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toReceivableResponse(r))
	}
	return items, nil
}

// Pay marca manualmente uma cobrança como paga.
func (uc *ReceivableUseCase) Pay(callerID, id string, in dto.PayRequest) error {
	r, err := uc.resolveOwned(callerID, id)
	if err != nil {
		return err
	}
	if r.StatusPagamento == entity.PaymentCanceled {
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

// Cancel marca manualmente uma cobrança como cancelada.
func (uc *ReceivableUseCase) Cancel(callerID, id string) error {
	r, err := uc.resolveOwned(callerID, id)
	if err != nil {
		return err
	}
	if r.StatusPagamento == entity.PaymentPaid {
		return domain.ErrConflict
	}
	return uc.repo.UpdateStatus(id, entity.PaymentCanceled, nil, "")
}

// Archive arquiva uma cobrança.
func (uc *ReceivableUseCase) Archive(callerID, id string) error {
	if _, err := uc.resolveOwned(callerID, id); err != nil {
		return err
	}
	return uc.repo.SetArchived(id, true)
}

func (uc *ReceivableUseCase) resolveOwned(callerID, id string) (*entity.Receivable, error) {
	sc, err := uc.scope.Resolve(callerID)
	if err != nil {
		return nil, err
	}
	r, err := uc.repo.GetByID(id, sc.ContaPrincipalID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	// Profissional só mexe nas próprias cobranças; o admin em todas da conta.
	if !sc.IsPrincipal && r.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return r, nil
}

func toReceivableResponse(r *entity.Receivable) *dto.ReceivableResponse {
	return &dto.ReceivableResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		PatientID:       r.PatientID,
		AppointmentID:   r.AppointmentID,
		DataCobranca:    r.DataCobranca,
		Valor:           r.Valor,
		StatusPagamento: r.StatusPagamento,
		DataPagamento:   r.DataPagamento,
		FormaPagamento:  r.FormaPagamento,
		Observacao:      r.Observacao,
		GerarNFe:        r.GerarNFe,
		Origem:          r.Origem,
		CreatedAt:       r.CreatedAt,
	}
}

// monthFilter converte YYYY-MM num recorte [primeiro dia, primeiro dia do mês seguinte).
func monthFilter(mes string, page dto.PageRequest) (repository.MonthFilter, error) {
	t, err := time.Parse("2006-01", mes)
	if err != nil {
		return repository.MonthFilter{}, domain.ErrInvalidInput
	}
	page.DefaultPage()
	return repository.MonthFilter{
		From:   t,
		To:     t.AddDate(0, 1, 0),
		Limit:  page.Limit,
		Offset: page.Offset,
	}, nil
}
