package auth

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

// UserTxRunner executa uma função como seção crítica sobre a coleção de
// usuários (evita registro duplicado entre a checagem e a gravação).
type UserTxRunner interface {
	RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error
}
