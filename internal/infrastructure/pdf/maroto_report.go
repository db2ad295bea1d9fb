// Package pdf implementa a geração do relatório financeiro mensal em PDF.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Relatório Financeiro + mês de referência           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: receita paga/pendente, despesa paga/pendente, saldo│
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Cobranças (data | valor | status | forma)          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Despesas (vencimento | descrição | valor | status) │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/agendaclin/consultorio-api/internal/application/financial"
	"github.com/agendaclin/consultorio-api/internal/domain/entity"
	"github.com/agendaclin/consultorio-api/internal/domain/repository"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 59, Green: 130, Blue: 246}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ financial.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa financial.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateMonthlyReport gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateMonthlyReport(
	_ context.Context,
	mes string,
	summary *repository.CashFlowSummary,
	receivables []*entity.Receivable,
	expenses []*entity.Expense,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório Financeiro "+mes, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(mes))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(summary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitleRow("Cobranças"))
	m.AddRows(receivableHeaderRow())
	for _, rc := range receivables {
		m.AddRows(receivableRow(rc))
	}
	if len(receivables) == 0 {
		m.AddRows(emptyRow("Nenhuma cobrança no mês"))
	}

	m.AddRows(line.NewRow(2))
	m.AddRows(sectionTitleRow("Despesas"))
	m.AddRows(expenseHeaderRow())
	for _, e := range expenses {
		m.AddRows(expenseRow(e))
	}
	if len(expenses) == 0 {
		m.AddRows(emptyRow("Nenhuma despesa no mês"))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

func headerRow(mes string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Relatório Financeiro", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Mês: "+mes, props.Text{
				Size: 10, Top: 3, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func summaryRows(s *repository.CashFlowSummary) []core.Row {
	saldo := s.ReceitaPaga.Sub(s.DespesaPaga)
	return []core.Row{
		summaryLine("Receita paga", "R$ "+s.ReceitaPaga.StringFixed(2)),
		summaryLine("Receita pendente", "R$ "+s.ReceitaPendente.StringFixed(2)),
		summaryLine("Despesa paga", "R$ "+s.DespesaPaga.StringFixed(2)),
		summaryLine("Despesa pendente", "R$ "+s.DespesaPendente.StringFixed(2)),
		row.New(7).Add(
			col.New(6).Add(text.New("Saldo do mês", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1,
			})),
			col.New(6).Add(text.New("R$ "+saldo.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 1, Align: align.Right, Color: colorPrimary,
			})),
		),
	}
}

func summaryLine(label, value string) core.Row {
	return row.New(5).Add(
		col.New(6).Add(text.New(label, props.Text{Size: 9, Color: colorGray})),
		col.New(6).Add(text.New(value, props.Text{Size: 9, Align: align.Right})),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 1,
		})),
	)
}

func receivableHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(3, "Data"),
		headerCell(3, "Valor"),
		headerCell(3, "Status"),
		headerCell(3, "Forma"),
	)
}

func receivableRow(rc *entity.Receivable) core.Row {
	return row.New(5).Add(
		bodyCell(3, rc.DataCobranca.Format("02/01/2006")),
		bodyCell(3, "R$ "+rc.Valor.StringFixed(2)),
		bodyCell(3, rc.StatusPagamento),
		bodyCell(3, rc.FormaPagamento),
	)
}

func expenseHeaderRow() core.Row {
	return row.New(6).Add(
		headerCell(3, "Vencimento"),
		headerCell(4, "Descrição"),
		headerCell(2, "Valor"),
		headerCell(3, "Status"),
	)
}

func expenseRow(e *entity.Expense) core.Row {
	return row.New(5).Add(
		bodyCell(3, e.DataVencimento.Format("02/01/2006")),
		bodyCell(4, e.Descricao),
		bodyCell(2, "R$ "+e.Valor.StringFixed(2)),
		bodyCell(3, e.Status),
	)
}

func headerCell(size int, title string) core.Col {
	return col.New(size).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 8, Color: colorGray,
	}))
}

func bodyCell(size int, value string) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8}))
}

func emptyRow(msg string) core.Row {
	return row.New(5).Add(
		col.New(12).Add(text.New(msg, props.Text{
			Size: 8, Color: colorGray, Style: fontstyle.Italic,
		})),
	)
}
