package storage

import (
	"context"
	"encoding/json"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

// Garante a conformidade com a porta de domínio.
var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persiste o catálogo como uma única lista JSON na chave
// "produtos", regravada inteira a cada mutação. A ordem da lista é a ordem
// de inserção.
type ProductRepository struct {
	rw blobRW
}

// NewProductRepository constrói o repositório sobre a sessão ou o acesso
// direto ao store.
func NewProductRepository(rw blobRW) *ProductRepository {
	return &ProductRepository{rw: rw}
}

// NewProductReader constrói o repositório somente-leitura sobre o store
// (fora de transação).
func NewProductReader(store BlobStore) *ProductRepository {
	return &ProductRepository{rw: direct{store: store}}
}

func (r *ProductRepository) load(ctx context.Context) ([]entity.Product, error) {
	data, ok, err := r.rw.Get(ctx, KeyProdutos)
	if err != nil {
		return nil, domain.NewStorageError("carregar produtos", err)
	}
	if !ok || len(data) == 0 {
		return []entity.Product{}, nil
	}
	var list []entity.Product
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, domain.NewStorageError("decodificar produtos", err)
	}
	return list, nil
}

func (r *ProductRepository) save(ctx context.Context, list []entity.Product) error {
	data, err := json.Marshal(list)
	if err != nil {
		return domain.NewStorageError("codificar produtos", err)
	}
	if err := r.rw.Set(ctx, KeyProdutos, data); err != nil {
		return domain.NewStorageError("gravar produtos", err)
	}
	return nil
}

// Create acrescenta o produto ao fim da lista (ordem de inserção).
func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	list = append(list, *p)
	return r.save(ctx, list)
}

// Update substitui o produto de mesmo id. Devolve ErrNotFound se o id não
// existir.
func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == p.ID {
			list[i] = *p
			return r.save(ctx, list)
		}
	}
	return domain.ErrNotFound
}

// Delete remove o produto da lista. Não toca nas movimentações: referências
// pendentes são toleradas por contrato.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	list, err := r.load(ctx)
	if err != nil {
		return err
	}
	out := list[:0]
	found := false
	for _, p := range list {
		if p.ID == id {
			found = true
			continue
		}
		out = append(out, p)
	}
	if !found {
		return domain.ErrNotFound
	}
	return r.save(ctx, out)
}

// GetByID devolve (nil, nil) quando o produto não existe.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			p := list[i]
			return &p, nil
		}
	}
	return nil, nil
}

// List devolve todos os produtos na ordem de inserção.
func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	return r.load(ctx)
}
