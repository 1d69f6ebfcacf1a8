package storage

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository persiste os usuários da API na chave "usuarios".
type UserRepository struct {
	rw blobRW
}

// NewUserRepository constrói o repositório.
func NewUserRepository(rw blobRW) *UserRepository {
	return &UserRepository{rw: rw}
}

// NewUserReader constrói o repositório somente-leitura sobre o store.
func NewUserReader(store BlobStore) *UserRepository {
	return &UserRepository{rw: direct{store: store}}
}

func (r *UserRepository) load(ctx context.Context) ([]entity.User, error) {
	data, ok, err := r.rw.Get(ctx, KeyUsuarios)
	if err != nil {
		return nil, domain.NewStorageError("carregar usuários", err)
	}
	if !ok || len(data) == 0 {
		return []entity.User{}, nil
	}
	var list []entity.User
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, domain.NewStorageError("decodificar usuários", err)
	}
	return list, nil
}

// Create acrescenta o usuário à lista.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, *u)
	data, err := json.Marshal(list)
	if err != nil {
		return domain.NewStorageError("codificar usuários", err)
	}
	if err := r.rw.Set(ctx, KeyUsuarios, data); err != nil {
		return domain.NewStorageError("gravar usuários", err)
	}
	return nil
}

// FindByEmail devolve (nil, nil) quando o e-mail não está cadastrado.
// A comparação ignora maiúsculas/minúsculas.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if strings.EqualFold(list[i].Email, email) {
			u := list[i]
			return &u, nil
		}
	}
	return nil, nil
}
