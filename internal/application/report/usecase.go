// Package report agrega catálogo e livro de movimentações em estatísticas e
// num modelo de documento renderizável. Nada aqui muta os stores.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/query"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/config"
)

// Rótulos dos filtros de status, como o app original exibe.
var filterLabels = map[string]string{
	dto.ReportFilterAll: "Todos",
	dto.ReportFilterOK:  "Estoque ok",
	dto.ReportFilterLow: "Estoque baixo",
	dto.ReportFilterOut: "Zerados",
}

// UseCase monta resumos e relatórios a partir dos repositórios de leitura.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.MovementRepository
	pdfGen    PDFGenerator
	cfg       config.ReportConfig
}

// NewUseCase constrói o caso de uso; pdfGen pode ser nil quando só o modelo
// JSON interessa.
func NewUseCase(products repository.ProductRepository, movements repository.MovementRepository, pdfGen PDFGenerator, cfg config.ReportConfig) *UseCase {
	return &UseCase{products: products, movements: movements, pdfGen: pdfGen, cfg: cfg}
}

// Summarize calcula as estatísticas de um conjunto de produtos: contagem por
// classe de estoque, total e valor em estoque (Σ quantidade × custo).
func Summarize(products []entity.Product) dto.ReportSummary {
	s := dto.ReportSummary{TotalProducts: len(products), StockValue: decimal.Zero}
	for _, p := range products {
		switch p.Status() {
		case entity.StatusOK:
			s.OKCount++
		case entity.StatusLow:
			s.LowCount++
		case entity.StatusOut:
			s.OutCount++
		}
		s.StockValue = s.StockValue.Add(p.StockValue())
	}
	return s
}

// Summary devolve as estatísticas do catálogo inteiro.
func (uc *UseCase) Summary(ctx context.Context) (*dto.ReportSummary, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	s := Summarize(products)
	return &s, nil
}

// BuildReport aplica os filtros e monta o modelo de documento: cabeçalho,
// resumo (sobre o subconjunto filtrado de produtos), linhas de produto e,
// se pedido, as movimentações do período por data decrescente.
func (uc *UseCase) BuildReport(ctx context.Context, opts dto.ReportOptions) (*dto.Report, error) {
	status := opts.StatusFilter
	if status == "" {
		status = dto.ReportFilterAll
	}
	label, ok := filterLabels[status]
	if !ok {
		return nil, fmt.Errorf("%w: filtro de status desconhecido %q", domain.ErrValidation, status)
	}

	all, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	products := all
	if status != dto.ReportFilterAll {
		products = query.ByStockStatus(all, status)
	}

	rep := &dto.Report{
		Header: dto.ReportHeader{
			Title:       uc.cfg.Title,
			Subtitle:    uc.cfg.Subtitle,
			GeneratedAt: time.Now(),
			Period:      periodLabel(opts.DateStart, opts.DateEnd),
			FilterLabel: label,
		},
		Summary:  Summarize(products),
		Products: productRows(products),
	}

	if opts.IncludeMovements {
		movs, err := uc.movements.List(ctx)
		if err != nil {
			return nil, err
		}
		movs = query.ByDateRange(movs, opts.DateStart, opts.DateEnd)
		// Os nomes resolvem contra o catálogo completo: o filtro de status
		// restringe as linhas de produto, não as de movimentação.
		rep.Movements = movementRows(movs, all)
		count := len(rep.Movements)
		rep.Header.Movements = &count
	}
	return rep, nil
}

// RenderPDF monta o relatório e o entrega ao renderizador.
func (uc *UseCase) RenderPDF(ctx context.Context, opts dto.ReportOptions) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, fmt.Errorf("report: nenhum renderizador de PDF configurado")
	}
	rep, err := uc.BuildReport(ctx, opts)
	if err != nil {
		return nil, err
	}
	return uc.pdfGen.GenerateReportPDF(ctx, rep)
}

// periodLabel formata o período como o app original: "Período completo"
// quando ambos os limites estão ausentes, senão "dd/mm/aaaa até dd/mm/aaaa"
// com o limite ausente preenchido pela data de hoje.
func periodLabel(start, end *time.Time) string {
	if start == nil && end == nil {
		return "Período completo"
	}
	return fmt.Sprintf("%s até %s", dateLabel(start), dateLabel(end))
}

func dateLabel(t *time.Time) string {
	if t == nil {
		return time.Now().Format("02/01/2006")
	}
	return t.Format("02/01/2006")
}

func productRows(products []entity.Product) []dto.ReportProductRow {
	rows := make([]dto.ReportProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, dto.ReportProductRow{
			Name:        p.Name,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Status:      p.Status(),
			Cost:        p.Cost,
			Price:       p.Price,
			StockValue:  p.StockValue(),
		})
	}
	return rows
}

func movementRows(movs []entity.Movement, all []entity.Product) []dto.ReportMovementRow {
	names := make(map[string]string, len(all))
	for _, p := range all {
		names[p.ID] = p.Name
	}
	rows := make([]dto.ReportMovementRow, 0, len(movs))
	for _, m := range movs {
		name, ok := names[m.ProductID]
		if !ok {
			// Referência pendente: mesmo fallback do app original.
			name = "ID " + m.ProductID
		}
		rows = append(rows, dto.ReportMovementRow{
			Date:        m.Timestamp,
			Kind:        m.Kind,
			ProductName: name,
			Quantity:    m.Quantity,
			Note:        m.Note,
			Cancelled:   m.Cancelled,
		})
	}
	return rows
}
