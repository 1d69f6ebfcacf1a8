package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/internal/infrastructure/storage"
)

func newRedisStore(t *testing.T) *storage.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return storage.NewRedisStoreWithClient(client)
}

func TestRedisStore_GetChaveAusente(t *testing.T) {
	store := newRedisStore(t)
	_, ok, err := store.Get(context.Background(), storage.KeyProdutos)
	require.NoError(t, err)
	assert.False(t, ok, "chave ausente devolve ok=false, sem erro")
}

func TestRedisStore_SetMultiGravaTodasAsChaves(t *testing.T) {
	store := newRedisStore(t)
	ctx := context.Background()

	err := store.SetMulti(ctx, map[string][]byte{
		storage.KeyProdutos: []byte(`[{"id":"p1"}]`),
		storage.KeyEntradas: []byte(`[]`),
	})
	require.NoError(t, err)

	data, ok, err := store.Get(ctx, storage.KeyProdutos)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[{"id":"p1"}]`, string(data))

	_, ok, err = store.Get(ctx, storage.KeyEntradas)
	require.NoError(t, err)
	assert.True(t, ok)
}

// Os repositórios e o TxRunner funcionam sobre o Redis exatamente como sobre
// a memória: mesmo contrato de BlobStore.
func TestRedisStore_ComTxRunnerERepositorios(t *testing.T) {
	store := newRedisStore(t)
	tx := storage.NewTxRunner(store)
	products := storage.NewProductReader(store)
	movements := storage.NewMovementReader(store)
	ctx := context.Background()

	err := tx.Run(ctx, func(p repository.ProductRepository, m repository.MovementRepository) error {
		if err := p.Create(ctx, &entity.Product{ID: "p1", Name: "Café", Quantity: 5, CreatedAt: time.Now()}); err != nil {
			return err
		}
		return m.Create(ctx, &entity.Movement{
			ID: "m1", Kind: entity.MovementEntry, ProductID: "p1", Quantity: 5, Timestamp: time.Now(),
		})
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Café", got.Name)

	list, err := movements.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementEntry, list[0].Kind)
}
