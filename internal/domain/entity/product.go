package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status de estoque de um produto. As três classes particionam todos os
// produtos: exatamente uma vale para cada um.
const (
	StatusOK  = "ok"     // quantidade > quantidade mínima
	StatusLow = "baixo"  // 0 < quantidade <= quantidade mínima
	StatusOut = "zerado" // quantidade == 0
)

// Product representa um produto do catálogo com a quantidade em mãos.
// Quantity é um valor derivado/cacheado: deve bater com o efeito líquido das
// movimentações não canceladas que o referenciam (ver Ledger.Reconcile).
// As tags JSON seguem o formato persistido pelo app original, para que os
// blobs gravados continuem legíveis por ele.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Quantity    int             `json:"quantidade"`
	MinQuantity int             `json:"quantidadeMinima"`
	Cost        decimal.Decimal `json:"custo"`
	Price       decimal.Decimal `json:"venda"`
	PhotoRef    string          `json:"foto,omitempty"` // referência opaca; o core nunca a interpreta
	CreatedAt   time.Time       `json:"dataCadastro"`
}

// Status classifica o produto em ok/baixo/zerado a partir da quantidade atual
// e da quantidade mínima.
func (p Product) Status() string {
	switch {
	case p.Quantity == 0:
		return StatusOut
	case p.Quantity <= p.MinQuantity:
		return StatusLow
	default:
		return StatusOK
	}
}

// StockValue devolve quantidade × custo.
func (p Product) StockValue() decimal.Decimal {
	return decimal.NewFromInt(int64(p.Quantity)).Mul(p.Cost)
}
