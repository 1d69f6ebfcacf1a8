package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Filtros de status aceitos pelo relatório. Vazio equivale a "todos".
const (
	ReportFilterAll = "todos"
	ReportFilterOK  = "ok"
	ReportFilterLow = "baixo"
	ReportFilterOut = "zerado"
)

// ReportOptions parâmetros do relatório: período opcional (granularidade de
// dia, limites inclusivos), filtro de status e inclusão de movimentações.
type ReportOptions struct {
	DateStart        *time.Time
	DateEnd          *time.Time
	StatusFilter     string
	IncludeMovements bool
}

// Report é o modelo de documento do relatório, neutro quanto ao formato de
// saída: quem renderiza (PDF, HTML) consome só esta estrutura.
type Report struct {
	Header    ReportHeader        `json:"cabecalho"`
	Summary   ReportSummary       `json:"resumo"`
	Products  []ReportProductRow  `json:"produtos"`
	Movements []ReportMovementRow `json:"movimentacoes,omitempty"`
}

// ReportHeader metadados do cabeçalho.
type ReportHeader struct {
	Title       string    `json:"titulo"`
	Subtitle    string    `json:"subtitulo"`
	GeneratedAt time.Time `json:"gerado_em"`
	Period      string    `json:"periodo"`      // ex.: "Período completo" ou "01/02/2026 até 15/02/2026"
	FilterLabel string    `json:"filtro"`       // rótulo do filtro de status aplicado
	Movements   *int      `json:"movimentacoes,omitempty"` // contagem, quando incluídas
}

// ReportSummary estatísticas sobre o subconjunto filtrado de produtos.
type ReportSummary struct {
	TotalProducts int             `json:"total_produtos"`
	OKCount       int             `json:"ok"`
	LowCount      int             `json:"baixo"`
	OutCount      int             `json:"zerado"`
	StockValue    decimal.Decimal `json:"valor_total"` // Σ quantidade × custo
}

// ReportProductRow linha de produto do relatório.
type ReportProductRow struct {
	Name        string          `json:"nome"`
	Quantity    int             `json:"quantidade"`
	MinQuantity int             `json:"quantidade_minima"`
	Status      string          `json:"status"`
	Cost        decimal.Decimal `json:"custo"`
	Price       decimal.Decimal `json:"venda"`
	StockValue  decimal.Decimal `json:"valor_em_estoque"`
}

// ReportMovementRow linha de movimentação do relatório. ProductName cai para
// "ID <produtoId>" quando a referência está pendente, como no app original.
type ReportMovementRow struct {
	Date        time.Time `json:"data"`
	Kind        string    `json:"tipo"`
	ProductName string    `json:"produto"`
	Quantity    int       `json:"quantidade"`
	Note        string    `json:"observacao,omitempty"`
	Cancelled   bool      `json:"cancelada"`
}
