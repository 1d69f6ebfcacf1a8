package dto

import (
	"time"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// RegisterMovementRequest payload de registro de entrada ou saída.
type RegisterMovementRequest struct {
	ProductID string `json:"produto_id" validate:"required"`
	Quantity  int    `json:"quantidade" validate:"gt=0"`
	Note      string `json:"observacao,omitempty"`
}

// MovementResponse movimentação nas respostas da API. ProductName vem
// resolvido do catálogo; fica vazio quando a referência está pendente
// (produto removido).
type MovementResponse struct {
	ID          string    `json:"id"`
	Kind        string    `json:"tipo"`
	ProductID   string    `json:"produto_id"`
	ProductName string    `json:"produto_nome,omitempty"`
	Quantity    int       `json:"quantidade"`
	Note        string    `json:"observacao,omitempty"`
	Timestamp   time.Time `json:"data"`
	Cancelled   bool      `json:"cancelada"`
}

// MovementListResponse listagem de movimentações (data decrescente).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Total int                `json:"total"`
}

// ReconciliationIssue divergência entre a quantidade cacheada de um produto
// e a soma das movimentações não canceladas que o referenciam.
type ReconciliationIssue struct {
	ProductID   string `json:"produto_id"`
	ProductName string `json:"produto_nome"`
	Cached      int    `json:"quantidade_cacheada"`
	Expected    int    `json:"quantidade_esperada"`
}

// ToMovementResponse converte a entidade, resolvendo o nome do produto.
func ToMovementResponse(m *entity.Movement, productName string) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:          m.ID,
		Kind:        m.Kind,
		ProductID:   m.ProductID,
		ProductName: productName,
		Quantity:    m.Quantity,
		Note:        m.Note,
		Timestamp:   m.Timestamp,
		Cancelled:   m.Cancelled,
	}
}
