// Package auth implementa registro e login de usuários da API.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticação.
type UseCase struct {
	users  repository.UserRepository
	tx     UserTxRunner
	jwtCfg JWTConfig
}

// NewUseCase constrói o caso de uso.
func NewUseCase(users repository.UserRepository, tx UserTxRunner, jwtCfg JWTConfig) *UseCase {
	return &UseCase{users: users, tx: tx, jwtCfg: jwtCfg}
}

// Register cria um usuário: hasheia a senha com bcrypt e persiste. Devolve
// ErrEmailExists se o e-mail já estiver cadastrado.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    time.Now(),
	}
	err = uc.tx.RunUsers(ctx, func(users repository.UserRepository) error {
		existing, err := users.FindByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailExists
		}
		return users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// Login verifica e-mail/senha, gera o JWT e devolve token + usuário.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.users.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(user)}, nil
}
