package storage

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepository)(nil)

// MovementRepository persiste o livro de movimentações em duas listas JSON,
// separadas por tipo ("entradas" e "saidas"), como o app original. Toda
// gravação reordena a lista por data decrescente antes de persistir; criações
// entram no início da lista, de modo que a ordenação estável preserva a ordem
// inversa de inserção nos empates de data.
type MovementRepository struct {
	rw blobRW
}

// NewMovementRepository constrói o repositório sobre a sessão ou o acesso
// direto ao store.
func NewMovementRepository(rw blobRW) *MovementRepository {
	return &MovementRepository{rw: rw}
}

// NewMovementReader constrói o repositório somente-leitura sobre o store.
func NewMovementReader(store BlobStore) *MovementRepository {
	return &MovementRepository{rw: direct{store: store}}
}

func keyFor(kind string) string {
	if kind == entity.MovementExit {
		return KeySaidas
	}
	return KeyEntradas
}

func (r *MovementRepository) load(ctx context.Context, kind string) ([]entity.Movement, error) {
	data, ok, err := r.rw.Get(ctx, keyFor(kind))
	if err != nil {
		return nil, domain.NewStorageError("carregar "+keyFor(kind), err)
	}
	if !ok || len(data) == 0 {
		return []entity.Movement{}, nil
	}
	var list []entity.Movement
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, domain.NewStorageError("decodificar "+keyFor(kind), err)
	}
	// O tipo não é serializado: deriva da coleção onde o registro vive.
	for i := range list {
		list[i].Kind = kind
	}
	return list, nil
}

func (r *MovementRepository) save(ctx context.Context, kind string, list []entity.Movement) error {
	sortByTimestampDesc(list)
	data, err := json.Marshal(list)
	if err != nil {
		return domain.NewStorageError("codificar "+keyFor(kind), err)
	}
	if err := r.rw.Set(ctx, keyFor(kind), data); err != nil {
		return domain.NewStorageError("gravar "+keyFor(kind), err)
	}
	return nil
}

// sortByTimestampDesc reordena por data decrescente. A ordenação é estável e
// reaplicada a cada mutação — o contrato de ordem nunca depende apenas da
// ordem de inserção.
func sortByTimestampDesc(list []entity.Movement) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Timestamp.After(list[j].Timestamp)
	})
}

// Create insere a movimentação no início da lista do seu tipo e regrava.
func (r *MovementRepository) Create(ctx context.Context, m *entity.Movement) error {
	list, err := r.load(ctx, m.Kind)
	if err != nil {
		return err
	}
	list = append([]entity.Movement{*m}, list...)
	return r.save(ctx, m.Kind, list)
}

// Update substitui a movimentação de mesmo id na lista do seu tipo.
func (r *MovementRepository) Update(ctx context.Context, m *entity.Movement) error {
	list, err := r.load(ctx, m.Kind)
	if err != nil {
		return err
	}
	for i := range list {
		if list[i].ID == m.ID {
			list[i] = *m
			return r.save(ctx, m.Kind, list)
		}
	}
	return domain.ErrNotFound
}

// GetByID procura nas duas coleções. Devolve (nil, nil) quando não existe.
func (r *MovementRepository) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	for _, kind := range []string{entity.MovementEntry, entity.MovementExit} {
		list, err := r.load(ctx, kind)
		if err != nil {
			return nil, err
		}
		for i := range list {
			if list[i].ID == id {
				m := list[i]
				return &m, nil
			}
		}
	}
	return nil, nil
}

// List devolve entradas e saídas mescladas, por data decrescente.
func (r *MovementRepository) List(ctx context.Context) ([]entity.Movement, error) {
	entries, err := r.load(ctx, entity.MovementEntry)
	if err != nil {
		return nil, err
	}
	exits, err := r.load(ctx, entity.MovementExit)
	if err != nil {
		return nil, err
	}
	merged := make([]entity.Movement, 0, len(entries)+len(exits))
	merged = append(merged, entries...)
	merged = append(merged, exits...)
	sortByTimestampDesc(merged)
	return merged, nil
}

// ListByProduct filtra List pelo produto referenciado.
func (r *MovementRepository) ListByProduct(ctx context.Context, productID string) ([]entity.Movement, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Movement, 0, len(all))
	for _, m := range all {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}
