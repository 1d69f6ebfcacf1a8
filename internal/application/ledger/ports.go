package ledger

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

// TxRunner executa uma função como unidade atômica sobre o storage, com
// repositórios atados à mesma sessão. É o que garante que a criação de uma
// movimentação e o ajuste de quantidade pareado entram juntos — ou nenhum
// dos dois, se qualquer passo falhar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
	) error) error
}
