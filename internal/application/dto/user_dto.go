package dto

import (
	"time"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// RegisterRequest payload de criação de conta.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required,min=6"`
	Name     string `json:"nome,omitempty"`
}

// LoginRequest payload de login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"senha" validate:"required"`
}

// UserResponse usuário nas respostas (nunca expõe o hash de senha).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"criado_em"`
}

// LoginResponse token + usuário autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// ToUserResponse converte a entidade para o DTO de resposta.
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
