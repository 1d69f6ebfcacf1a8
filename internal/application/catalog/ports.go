package catalog

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

// TxRunner executa uma função como seção crítica sobre o storage, com
// repositórios atados à mesma sessão. Garante que nenhuma outra escrita se
// intercala entre a leitura e a gravação de uma mutação do catálogo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}
