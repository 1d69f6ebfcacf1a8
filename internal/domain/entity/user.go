package entity

import "time"

// User representa um usuário da API (login via e-mail e senha).
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"senhaHash"`
	Name         string    `json:"nome"`
	CreatedAt    time.Time `json:"criadoEm"`
}
