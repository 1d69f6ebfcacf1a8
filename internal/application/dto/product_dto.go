package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// CreateProductRequest payload de criação de produto. Custo e venda são
// decimais não negativos (validados no caso de uso).
type CreateProductRequest struct {
	Name        string          `json:"nome" validate:"required"`
	Quantity    int             `json:"quantidade" validate:"gte=0"`
	MinQuantity int             `json:"quantidade_minima" validate:"gte=0"`
	Cost        decimal.Decimal `json:"custo"`
	Price       decimal.Decimal `json:"venda"`
	PhotoRef    string          `json:"foto,omitempty"`
}

// UpdateProductRequest payload de atualização parcial: só os campos
// presentes são aplicados. ID e data de cadastro nunca mudam.
type UpdateProductRequest struct {
	Name        *string          `json:"nome,omitempty"`
	Quantity    *int             `json:"quantidade,omitempty"`
	MinQuantity *int             `json:"quantidade_minima,omitempty"`
	Cost        *decimal.Decimal `json:"custo,omitempty"`
	Price       *decimal.Decimal `json:"venda,omitempty"`
	PhotoRef    *string          `json:"foto,omitempty"`
}

// ProductResponse produto nas respostas da API, com o status derivado e o
// valor em estoque (quantidade × custo).
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nome"`
	Quantity    int             `json:"quantidade"`
	MinQuantity int             `json:"quantidade_minima"`
	Cost        decimal.Decimal `json:"custo"`
	Price       decimal.Decimal `json:"venda"`
	PhotoRef    string          `json:"foto,omitempty"`
	Status      string          `json:"status"`
	StockValue  decimal.Decimal `json:"valor_em_estoque"`
	CreatedAt   time.Time       `json:"data_cadastro"`
}

// ProductListResponse listagem de produtos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ToProductResponse converte a entidade para o DTO de resposta.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Cost:        p.Cost,
		Price:       p.Price,
		PhotoRef:    p.PhotoRef,
		Status:      p.Status(),
		StockValue:  p.StockValue(),
		CreatedAt:   p.CreatedAt,
	}
}
