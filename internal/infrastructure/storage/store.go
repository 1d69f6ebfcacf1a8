// Package storage implementa a persistência do app: coleções inteiras
// serializadas e gravadas por chave (o mesmo modelo do armazenamento
// chave-valor do app original). Cada mutação regrava a lista completa,
// já reordenada; chave ausente equivale a lista vazia.
package storage

import "context"

// Chaves das coleções persistidas. Os nomes batem com os usados pelo app
// original, mantendo os blobs intercambiáveis.
const (
	KeyProdutos = "produtos"
	KeyEntradas = "entradas"
	KeySaidas   = "saidas"
	KeyUsuarios = "usuarios"
)

// BlobStore porta do colaborador de persistência: blobs opacos por chave.
// Get devolve ok=false quando a chave não existe (o chamador trata como
// lista vazia). SetMulti grava todas as chaves como uma unidade: ou todas
// persistem, ou nenhuma — é o que garante commit íntegro nas operações
// compostas do livro de movimentações.
type BlobStore interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	SetMulti(ctx context.Context, blobs map[string][]byte) error
}

// blobRW é a visão que os repositórios têm do storage: leitura por chave e
// escrita de uma chave. Implementada pelo acesso direto (leituras) e pela
// sessão transacional (escritas em stage até o commit).
type blobRW interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
}

// direct adapta um BlobStore para blobRW, gravando cada Set imediatamente.
// Usado apenas para leitura e para escritas de chave única fora do TxRunner.
type direct struct {
	store BlobStore
}

func (d direct) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return d.store.Get(ctx, key)
}

func (d direct) Set(ctx context.Context, key string, data []byte) error {
	return d.store.SetMulti(ctx, map[string][]byte{key: data})
}
