package repository

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// MovementRepository porta de persistência do livro de movimentações.
// List e ListByProduct devolvem as movimentações ordenadas por data
// decrescente, com empates resolvidos pela ordem inversa de inserção —
// contrato do qual todos os consumidores dependem. Update só altera o flag
// de cancelamento; quantidade e tipo são imutáveis.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	Update(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context) ([]entity.Movement, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Movement, error)
}
