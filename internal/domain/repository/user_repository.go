package repository

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// UserRepository porta de persistência de usuários da API.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
