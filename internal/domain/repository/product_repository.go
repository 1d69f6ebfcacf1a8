package repository

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// ProductRepository porta de persistência do catálogo de produtos.
// List preserva a ordem de inserção; GetByID devolve (nil, nil) quando o id
// não existe, para que o chamador distinga "ausente" de falha de storage.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]entity.Product, error)
}
