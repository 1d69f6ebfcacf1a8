package storage

import (
	"context"
	"sync"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
)

// TxRunner executa callbacks como uma seção crítica sobre o storage:
// uma trava global de escrita serializa todas as mutações (disciplina de
// escritor único), e as escritas feitas pelo callback ficam em stage numa
// sessão até o commit. Se o callback devolve erro, nada é gravado; o commit
// em si envia todas as chaves sujas de uma vez via SetMulti.
type TxRunner struct {
	store BlobStore
	mu    sync.Mutex
}

// NewTxRunner constrói o runner sobre o store.
func NewTxRunner(store BlobStore) *TxRunner {
	return &TxRunner{store: store}
}

// Run executa fn com repositórios atados à sessão transacional e faz o
// commit ao final. As leituras dentro de fn enxergam as escritas já feitas
// na própria sessão, e nenhuma outra escrita se intercala entre a leitura de
// validação e o ajuste de quantidade pareado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.MovementRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSession(r.store)
	if err := fn(NewProductRepository(s), NewMovementRepository(s)); err != nil {
		return err
	}
	return s.commit(ctx)
}

// RunUsers idem a Run, mas com o repositório de usuários (registro de conta).
func (r *TxRunner) RunUsers(ctx context.Context, fn func(users repository.UserRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSession(r.store)
	if err := fn(NewUserRepository(s)); err != nil {
		return err
	}
	return s.commit(ctx)
}

// session acumula escritas em memória e só as envia ao BlobStore no commit.
type session struct {
	store BlobStore
	dirty map[string][]byte
}

func newSession(store BlobStore) *session {
	return &session{store: store, dirty: make(map[string][]byte)}
}

func (s *session) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok := s.dirty[key]; ok {
		return data, true, nil
	}
	return s.store.Get(ctx, key)
}

func (s *session) Set(_ context.Context, key string, data []byte) error {
	s.dirty[key] = data
	return nil
}

func (s *session) commit(ctx context.Context) error {
	if len(s.dirty) == 0 {
		return nil
	}
	return s.store.SetMulti(ctx, s.dirty)
}
