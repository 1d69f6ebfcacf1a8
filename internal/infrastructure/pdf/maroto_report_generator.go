// Package pdf renderiza o modelo de documento do relatório de inventário
// com Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Subtítulo │ Data/hora + Período + Filtro  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMO: Produtos / OK / Baixo / Zerado / Valor Total        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Nome | Atual | Mín | Status | Custo | Venda | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MOVIMENTAÇÕES (opcional): Data | Tipo | Produto | Qtd | Obs │
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

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/report"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 123, Blue: 255}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 40, Green: 167, Blue: 69}
	colorLow     = &props.Color{Red: 253, Green: 126, Blue: 20}
	colorOut     = &props.Color{Red: 220, Green: 53, Blue: 69}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Garante a conformidade com a porta de report.
var _ report.PDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator constrói o gerador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateReportPDF gera o PDF e devolve seus bytes.
func (g *MarotoReportGenerator) GenerateReportPDF(_ context.Context, rep *dto.Report) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(rep.Header.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep.Header))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Resumo
	m.AddRows(sectionTitleRow("Resumo"))
	m.AddRows(summaryRow(rep.Summary, rep.Header.Movements))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabela de produtos
	m.AddRows(sectionTitleRow(fmt.Sprintf("Produtos (%d)", len(rep.Products))))
	m.AddRows(productHeaderRow())
	for _, r := range productRows(rep.Products) {
		m.AddRows(r)
	}

	// Movimentações (opcional)
	if rep.Movements != nil {
		m.AddRows(line.NewRow(3))
		m.AddRows(sectionTitleRow(fmt.Sprintf("Movimentações (%d)", len(rep.Movements))))
		if len(rep.Movements) == 0 {
			m.AddRows(row.New(8).Add(col.New(12).Add(
				text.New("Sem movimentações no período", props.Text{
					Size: 8, Align: align.Center, Color: colorGray, Style: fontstyle.Italic, Top: 2,
				}),
			)))
		} else {
			m.AddRows(movementHeaderRow())
			for _, r := range movementRows(rep.Movements) {
				m.AddRows(r)
			}
		}
	}

	// Rodapé
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(12).Add(
		text.New("Gerado automaticamente • "+rep.Header.GeneratedAt.Format("02/01/2006"), props.Text{
			Size: 6, Align: align.Center, Color: colorGray, Top: 1,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: título + subtítulo (esq) e data/hora + período + filtro (dir).
func headerRow(h dto.ReportHeader) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(h.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(h.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(h.GeneratedAt.Format("02/01/2006 • 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(h.Period, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Filtro: "+h.FilterLabel, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitleRow(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

// summaryRow: estatísticas lado a lado, como o bloco de resumo do original.
func summaryRow(s dto.ReportSummary, movCount *int) core.Row {
	statCol := func(value, label string, color *props.Color) core.Col {
		return col.New(2).Add(
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 1}),
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 7}),
		)
	}
	cols := []core.Col{
		statCol(fmt.Sprintf("%d", s.TotalProducts), "Produtos", colorPrimary),
		statCol(fmt.Sprintf("%d", s.OKCount), "OK", colorOK),
		statCol(fmt.Sprintf("%d", s.LowCount), "Baixo", colorLow),
		statCol(fmt.Sprintf("%d", s.OutCount), "Zerado", colorOut),
		statCol("R$ "+s.StockValue.StringFixed(2), "Valor Total", colorPrimary),
	}
	if movCount != nil {
		cols = append(cols, statCol(fmt.Sprintf("%d", *movCount), "Movimentações", colorPrimary))
	}
	return row.New(12).Add(cols...)
}

func productHeaderRow() core.Row {
	hdr := func(size int, label string, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: alignment, Top: 1,
		}))
	}
	return row.New(6).Add(
		hdr(4, "NOME", align.Left),
		hdr(1, "ATUAL", align.Right),
		hdr(1, "MÍN", align.Right),
		hdr(2, "STATUS", align.Center),
		hdr(1, "CUSTO", align.Right),
		hdr(1, "VENDA", align.Right),
		hdr(2, "TOTAL", align.Right),
	)
}

func productRows(rows []dto.ReportProductRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, row.New(5).Add(
			col.New(4).Add(text.New(r.Name, props.Text{Size: 8})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.MinQuantity), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New(statusLabel(r.Status), props.Text{
				Size: 8, Align: align.Center, Style: fontstyle.Bold, Color: statusColor(r.Status),
			})),
			col.New(1).Add(text.New("R$ "+r.Cost.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(1).Add(text.New("R$ "+r.Price.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
			col.New(2).Add(text.New("R$ "+r.StockValue.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		))
	}
	return out
}

func movementHeaderRow() core.Row {
	hdr := func(size int, label string, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: alignment, Top: 1,
		}))
	}
	return row.New(6).Add(
		hdr(2, "DATA", align.Left),
		hdr(2, "TIPO", align.Left),
		hdr(3, "PRODUTO", align.Left),
		hdr(1, "QTD", align.Right),
		hdr(4, "OBS", align.Left),
	)
}

func movementRows(rows []dto.ReportMovementRow) []core.Row {
	out := make([]core.Row, 0, len(rows))
	for _, r := range rows {
		kindTxt := "↑ ENT"
		kindColor := colorOK
		if r.Kind == entity.MovementExit {
			kindTxt = "↓ SAI"
			kindColor = colorOut
		}
		if r.Cancelled {
			kindTxt += " (cancelada)"
			kindColor = colorGray
		}
		note := r.Note
		if note == "" {
			note = "-"
		}
		out = append(out, row.New(5).Add(
			col.New(2).Add(text.New(r.Date.Format("02/01/2006"), props.Text{Size: 8})),
			col.New(2).Add(text.New(kindTxt, props.Text{Size: 8, Color: kindColor})),
			col.New(3).Add(text.New(r.ProductName, props.Text{Size: 8})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", r.Quantity), props.Text{Size: 8, Align: align.Right})),
			col.New(4).Add(text.New(note, props.Text{Size: 8})),
		))
	}
	return out
}

func statusLabel(status string) string {
	switch status {
	case entity.StatusOut:
		return "ZERADO"
	case entity.StatusLow:
		return "BAIXO"
	default:
		return "OK"
	}
}

func statusColor(status string) *props.Color {
	switch status {
	case entity.StatusOut:
		return colorOut
	case entity.StatusLow:
		return colorLow
	default:
		return colorOK
	}
}
