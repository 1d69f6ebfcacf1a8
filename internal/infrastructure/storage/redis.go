package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Eduardo-Manarte/controle-estoque/pkg/config"
)

var _ BlobStore = (*RedisStore)(nil)

// RedisStore implementação do BlobStore sobre Redis: cada coleção é um valor
// string (GET/SET). SetMulti usa MULTI/EXEC (TxPipelined) para que as chaves
// da mesma gravação entrem juntas.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore conecta ao Redis e valida com ping.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("storage/redis: ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient embrulha um cliente existente (testes com miniredis).
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get devolve o blob da chave, ou ok=false se ausente.
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage/redis: get %s: %w", key, err)
	}
	return data, true, nil
}

// SetMulti grava todas as chaves numa transação Redis.
func (s *RedisStore) SetMulti(ctx context.Context, blobs map[string][]byte) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range blobs {
			pipe.Set(ctx, key, data, 0)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage/redis: set: %w", err)
	}
	return nil
}

// Close encerra a conexão.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
