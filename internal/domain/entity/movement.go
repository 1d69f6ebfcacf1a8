package entity

import "time"

// Tipos de movimentação de estoque.
const (
	MovementEntry = "entrada" // aumenta o estoque
	MovementExit  = "saida"   // diminui o estoque
)

// Movement representa uma entrada ou saída de estoque. Quantity e Kind são
// imutáveis após a criação; somente Cancelled transita, e apenas de false
// para true. A referência ao produto é por id e pode ficar pendente depois
// que o produto é removido do catálogo (estado tolerado, não é erro).
type Movement struct {
	ID        string    `json:"id"`
	Kind      string    `json:"-"` // derivado da coleção (entradas/saidas) onde o registro vive
	ProductID string    `json:"produtoId"`
	Quantity  int       `json:"quantidade"`
	Note      string    `json:"observacao,omitempty"`
	Timestamp time.Time `json:"data"`
	Cancelled bool      `json:"cancelada"`
}

// Delta devolve o efeito da movimentação sobre o estoque: +Quantity para
// entradas, -Quantity para saídas.
func (m Movement) Delta() int {
	if m.Kind == MovementExit {
		return -m.Quantity
	}
	return m.Quantity
}

// IsEntry informa se a movimentação é uma entrada.
func (m Movement) IsEntry() bool { return m.Kind == MovementEntry }
