package storage

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Eduardo-Manarte/controle-estoque/pkg/config"
)

var _ BlobStore = (*PostgresStore)(nil)

// PostgresStore implementação do BlobStore sobre PostgreSQL: uma tabela
// chave-valor com os blobs JSON das coleções. SetMulti grava todas as chaves
// numa transação.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore cria o pool, garante o schema e devolve o store.
func NewPostgresStore(ctx context.Context, cfg config.DBConfig) (*PostgresStore, error) {
	pool, err := newPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// newPool cria um pool de conexões PostgreSQL com os ajustes da aplicação e
// o codec NUMERIC/DECIMAL -> shopspring/decimal registrado em todas as
// conexões.
func newPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("storage/postgres: parse DSN: %w", err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("storage/postgres: criar pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage/postgres: ping: %w", err)
	}
	return pool, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS colecoes (
			chave         TEXT PRIMARY KEY,
			dados         JSONB NOT NULL,
			atualizado_em TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("storage/postgres: criar schema: %w", err)
	}
	return nil
}

// Get devolve o blob da chave, ou ok=false se ausente.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `SELECT dados FROM colecoes WHERE chave = $1`, key).Scan(&data)
	if err == pgx.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("storage/postgres: get %s: %w", key, err)
	}
	return data, true, nil
}

// SetMulti faz upsert de todas as chaves numa única transação: ou todas
// persistem, ou nenhuma.
func (s *PostgresStore) SetMulti(ctx context.Context, blobs map[string][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("storage/postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const upsert = `
		INSERT INTO colecoes (chave, dados, atualizado_em)
		VALUES ($1, $2, now())
		ON CONFLICT (chave) DO UPDATE SET dados = EXCLUDED.dados, atualizado_em = now()`
	for key, data := range blobs {
		if _, err := tx.Exec(ctx, upsert, key, data); err != nil {
			return fmt.Errorf("storage/postgres: upsert %s: %w", key, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("storage/postgres: commit: %w", err)
	}
	return nil
}

// Close encerra o pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
