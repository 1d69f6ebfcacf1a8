// Package catalog implementa os casos de uso do catálogo de produtos:
// cadastro, edição, remoção e o ajuste de quantidade usado pelo livro de
// movimentações.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/query"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/logger"
)

// UseCase casos de uso CRUD do catálogo. As leituras usam o repositório
// direto; as mutações passam pelo TxRunner.
type UseCase struct {
	products repository.ProductRepository
	tx       TxRunner
	log      *logger.Logger
}

// NewUseCase constrói o caso de uso.
func NewUseCase(products repository.ProductRepository, tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{products: products, tx: tx, log: log}
}

// Create valida e cadastra um produto novo, atribuindo id e data de cadastro.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Quantity:    in.Quantity,
		MinQuantity: in.MinQuantity,
		Cost:        in.Cost,
		Price:       in.Price,
		PhotoRef:    in.PhotoRef,
		CreatedAt:   time.Now(),
	}
	if err := validateProduct(p); err != nil {
		return nil, err
	}
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		return products.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToProductResponse(p), nil
}

// Update aplica um patch parcial ao produto, preservando id e data de
// cadastro. Editar a quantidade por aqui ignora o livro de movimentações —
// é permitido para correções manuais, mas registra um aviso, pois quebra a
// reconciliação daquele produto.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *dto.ProductResponse
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		p, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			p.Name = strings.TrimSpace(*in.Name)
		}
		if in.Quantity != nil && *in.Quantity != p.Quantity {
			uc.log.Warn().
				Str("produto_id", p.ID).
				Int("de", p.Quantity).
				Int("para", *in.Quantity).
				Msg("quantidade editada diretamente, fora do livro de movimentações")
			p.Quantity = *in.Quantity
		}
		if in.MinQuantity != nil {
			p.MinQuantity = *in.MinQuantity
		}
		if in.Cost != nil {
			p.Cost = *in.Cost
		}
		if in.Price != nil {
			p.Price = *in.Price
		}
		if in.PhotoRef != nil {
			p.PhotoRef = *in.PhotoRef
		}
		if err := validateProduct(p); err != nil {
			return err
		}
		if err := products.Update(ctx, p); err != nil {
			return err
		}
		out = dto.ToProductResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete remove o produto do catálogo. As movimentações que o referenciam
// não são tocadas: a referência pendente é um estado tolerado.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.Run(ctx, func(products repository.ProductRepository, _ repository.MovementRepository) error {
		return products.Delete(ctx, id)
	})
}

// Get devolve (nil, nil) quando o produto não existe.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return dto.ToProductResponse(p), nil
}

// List devolve o catálogo, opcionalmente filtrado por busca textual e por
// classe de estoque.
func (uc *UseCase) List(ctx context.Context, search, status string) (*dto.ProductListResponse, error) {
	list, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	list = query.FilterProducts(list, search)
	switch status {
	case "", dto.ReportFilterAll:
	case entity.StatusOK, entity.StatusLow, entity.StatusOut:
		list = query.ByStockStatus(list, status)
	default:
		return nil, fmt.Errorf("%w: status desconhecido %q", domain.ErrValidation, status)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for i := range list {
		items = append(items, *dto.ToProductResponse(&list[i]))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// AdjustQuantity aplica delta à quantidade do produto, com clamp em zero:
// a quantidade nunca fica negativa, mesmo que o delta a levasse abaixo de
// zero. É o único ponto de mutação de estoque usado pelo livro — quem
// precisar de contabilidade estrita confere o disponível antes de emitir a
// movimentação, como o próprio livro faz.
func AdjustQuantity(ctx context.Context, products repository.ProductRepository, id string, delta int) error {
	p, err := products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	p.Quantity += delta
	if p.Quantity < 0 {
		p.Quantity = 0
	}
	return products.Update(ctx, p)
}

func validateProduct(p *entity.Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: nome é obrigatório", domain.ErrValidation)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantidade não pode ser negativa", domain.ErrValidation)
	}
	if p.MinQuantity < 0 {
		return fmt.Errorf("%w: quantidade mínima não pode ser negativa", domain.ErrValidation)
	}
	if p.Cost.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: custo não pode ser negativo", domain.ErrValidation)
	}
	if p.Price.LessThan(decimal.Zero) {
		return fmt.Errorf("%w: preço de venda não pode ser negativo", domain.ErrValidation)
	}
	return nil
}
