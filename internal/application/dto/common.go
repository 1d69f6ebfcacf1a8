package dto

import "github.com/go-playground/validator/v10"

// ErrorResponse corpo de erro HTTP. Available/Requested só aparecem em
// erros de estoque insuficiente.
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

var validate = validator.New()

// Validate aplica as tags `validate` de um request DTO.
func Validate(s any) error {
	return validate.Struct(s)
}
