package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/catalog"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/ledger"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/report"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/infrastructure/storage"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/config"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/logger"
)

var testReportCfg = config.ReportConfig{
	Title:    "Controle de Estoque",
	Subtitle: "Relatório de Inventário",
}

type harness struct {
	report  *report.UseCase
	catalog *catalog.UseCase
	ledger  *ledger.UseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := storage.NewMemoryStore()
	tx := storage.NewTxRunner(store)
	products := storage.NewProductReader(store)
	movements := storage.NewMovementReader(store)
	return &harness{
		report:  report.NewUseCase(products, movements, nil, testReportCfg),
		catalog: catalog.NewUseCase(products, tx, logger.Nop()),
		ledger:  ledger.NewUseCase(tx, products, movements, logger.Nop()),
	}
}

func (h *harness) seed(t *testing.T, name string, qty, min int, cost float64) string {
	t.Helper()
	out, err := h.catalog.Create(context.Background(), dto.CreateProductRequest{
		Name: name, Quantity: qty, MinQuantity: min,
		Cost: decimal.NewFromFloat(cost), Price: decimal.NewFromFloat(cost * 2),
	})
	require.NoError(t, err)
	return out.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Summarize / Summary
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize(t *testing.T) {
	products := []entity.Product{
		{Quantity: 10, MinQuantity: 2, Cost: decimal.NewFromFloat(1.50)}, // ok, 15.00
		{Quantity: 2, MinQuantity: 5, Cost: decimal.NewFromFloat(4.00)},  // baixo, 8.00
		{Quantity: 0, MinQuantity: 1, Cost: decimal.NewFromFloat(99.0)},  // zerado, 0.00
	}
	s := report.Summarize(products)

	assert.Equal(t, 3, s.TotalProducts)
	assert.Equal(t, 1, s.OKCount)
	assert.Equal(t, 1, s.LowCount)
	assert.Equal(t, 1, s.OutCount)
	assert.True(t, s.StockValue.Equal(decimal.NewFromFloat(23.00)), "15 + 8 + 0, veio %s", s.StockValue)
}

func TestSummarize_Vazio(t *testing.T) {
	s := report.Summarize(nil)
	assert.Zero(t, s.TotalProducts)
	assert.True(t, s.StockValue.Equal(decimal.Zero))
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildReport
// ──────────────────────────────────────────────────────────────────────────────

// Relatório sem filtros: período completo, resumo do catálogo inteiro e
// nenhuma seção de movimentações.
func TestBuildReport_SemFiltros(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seed(t, "Café", 10, 3, 2.00)
	h.seed(t, "Açúcar", 1, 4, 1.00)

	rep, err := h.report.BuildReport(ctx, dto.ReportOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Controle de Estoque", rep.Header.Title)
	assert.Equal(t, "Relatório de Inventário", rep.Header.Subtitle)
	assert.Equal(t, "Período completo", rep.Header.Period)
	assert.Equal(t, "Todos", rep.Header.FilterLabel)
	assert.Nil(t, rep.Header.Movements)
	assert.Nil(t, rep.Movements)

	assert.Equal(t, 2, rep.Summary.TotalProducts)
	assert.Len(t, rep.Products, 2)
}

// O filtro de status restringe as linhas de produto E o resumo: as
// estatísticas são calculadas sobre o subconjunto filtrado.
func TestBuildReport_FiltroDeStatusRestringeOResumo(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.seed(t, "Café", 10, 3, 2.00)   // ok
	h.seed(t, "Açúcar", 1, 4, 1.00)  // baixo
	h.seed(t, "Farinha", 2, 2, 3.00) // baixo

	rep, err := h.report.BuildReport(ctx, dto.ReportOptions{StatusFilter: dto.ReportFilterLow})
	require.NoError(t, err)

	assert.Equal(t, "Estoque baixo", rep.Header.FilterLabel)
	require.Len(t, rep.Products, 2)
	assert.Equal(t, 2, rep.Summary.TotalProducts)
	assert.Equal(t, 2, rep.Summary.LowCount)
	assert.Zero(t, rep.Summary.OKCount)
	assert.True(t, rep.Summary.StockValue.Equal(decimal.NewFromFloat(7.00)),
		"1×1.00 + 2×3.00 só dos filtrados, veio %s", rep.Summary.StockValue)
}

func TestBuildReport_FiltroDesconhecido(t *testing.T) {
	h := newHarness(t)
	_, err := h.report.BuildReport(context.Background(), dto.ReportOptions{StatusFilter: "critico"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// Período com limites: rótulo "dd/mm/aaaa até dd/mm/aaaa" e movimentações
// recortadas pelo intervalo inclusivo.
func TestBuildReport_PeriodoEMovimentacoes(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seed(t, "Café", 50, 3, 2.00)

	_, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 5})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 2})
	require.NoError(t, err)

	start := time.Now().AddDate(0, 0, -1)
	end := time.Now()
	rep, err := h.report.BuildReport(ctx, dto.ReportOptions{
		DateStart: &start, DateEnd: &end, IncludeMovements: true,
	})
	require.NoError(t, err)

	want := start.Format("02/01/2006") + " até " + end.Format("02/01/2006")
	assert.Equal(t, want, rep.Header.Period)
	require.NotNil(t, rep.Header.Movements)
	assert.Equal(t, 2, *rep.Header.Movements)
	require.Len(t, rep.Movements, 2)
	// Data decrescente: a saída veio depois da entrada.
	assert.Equal(t, entity.MovementExit, rep.Movements[0].Kind)
	assert.Equal(t, entity.MovementEntry, rep.Movements[1].Kind)

	// Fora do período: nenhuma movimentação.
	past := time.Now().AddDate(0, 0, -10)
	pastEnd := time.Now().AddDate(0, 0, -5)
	rep, err = h.report.BuildReport(ctx, dto.ReportOptions{
		DateStart: &past, DateEnd: &pastEnd, IncludeMovements: true,
	})
	require.NoError(t, err)
	assert.Empty(t, rep.Movements)
	require.NotNil(t, rep.Header.Movements)
	assert.Zero(t, *rep.Header.Movements)
}

// Movimentação de produto removido aparece com o fallback "ID <produtoId>",
// e os nomes resolvem contra o catálogo completo mesmo com filtro de status.
func TestBuildReport_ReferenciaPendenteENomesCompletos(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	keep := h.seed(t, "Café", 10, 3, 2.00) // ok
	gone := h.seed(t, "Açúcar", 9, 1, 1.00)

	_, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: keep, Quantity: 1})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: gone, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, h.catalog.Delete(ctx, gone))

	rep, err := h.report.BuildReport(ctx, dto.ReportOptions{
		StatusFilter: dto.ReportFilterOK, IncludeMovements: true,
	})
	require.NoError(t, err)

	require.Len(t, rep.Movements, 2)
	names := []string{rep.Movements[0].ProductName, rep.Movements[1].ProductName}
	assert.Contains(t, names, "Café")
	assert.Contains(t, names, "ID "+gone, "referência pendente usa o fallback com o id")
}

// ──────────────────────────────────────────────────────────────────────────────
// RenderPDF
// ──────────────────────────────────────────────────────────────────────────────

type stubPDF struct {
	got *dto.Report
}

func (s *stubPDF) GenerateReportPDF(_ context.Context, rep *dto.Report) ([]byte, error) {
	s.got = rep
	return []byte("%PDF-stub"), nil
}

func TestRenderPDF_DelegaAoGerador(t *testing.T) {
	store := storage.NewMemoryStore()
	products := storage.NewProductReader(store)
	movements := storage.NewMovementReader(store)
	stub := &stubPDF{}
	uc := report.NewUseCase(products, movements, stub, testReportCfg)

	out, err := uc.RenderPDF(context.Background(), dto.ReportOptions{})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-stub"), out)
	require.NotNil(t, stub.got, "o modelo montado deve chegar ao gerador")
	assert.Equal(t, "Controle de Estoque", stub.got.Header.Title)
}

func TestRenderPDF_SemGerador(t *testing.T) {
	h := newHarness(t)
	_, err := h.report.RenderPDF(context.Background(), dto.ReportOptions{})
	assert.Error(t, err)
}
