package domain

import (
	"errors"
	"fmt"
)

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrValidation       = errors.New("entrada inválida")
	ErrAlreadyCancelled = errors.New("movimentação já cancelada")
	ErrUserNotFound     = errors.New("usuário não encontrado")
	ErrEmailExists      = errors.New("e-mail já cadastrado")
	ErrUnauthorized     = errors.New("não autorizado")
)

// InsufficientStockError indica que uma saída (ou o cancelamento de uma
// entrada) deixaria o estoque negativo. Carrega o disponível e o solicitado
// para a camada de apresentação montar a mensagem.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente: disponível %d, solicitado %d", e.Available, e.Requested)
}

// AsInsufficientStock devolve o erro tipado se err for (ou envolver) um
// InsufficientStockError.
func AsInsufficientStock(err error) (*InsufficientStockError, bool) {
	var ise *InsufficientStockError
	if errors.As(err, &ise) {
		return ise, true
	}
	return nil, false
}

// StorageError envolve uma falha do colaborador de persistência.
// O core não interpreta a causa; apenas a propaga intacta.
type StorageError struct {
	Op  string // operação que falhou (ex.: "carregar produtos")
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// NewStorageError constrói um StorageError preservando a causa.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsStorage informa se err é (ou envolve) um StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
