package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/catalog"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/ledger"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/internal/infrastructure/storage"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de teste
// ──────────────────────────────────────────────────────────────────────────────

type harness struct {
	store   *storage.MemoryStore
	tx      *storage.TxRunner
	ledger  *ledger.UseCase
	catalog *catalog.UseCase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	store := storage.NewMemoryStore()
	tx := storage.NewTxRunner(store)
	products := storage.NewProductReader(store)
	movements := storage.NewMovementReader(store)
	return &harness{
		store:   store,
		tx:      tx,
		ledger:  ledger.NewUseCase(tx, products, movements, logger.Nop()),
		catalog: catalog.NewUseCase(products, tx, logger.Nop()),
	}
}

// seedProduct cadastra um produto com a quantidade inicial dada.
func (h *harness) seedProduct(t *testing.T, name string, qty int) string {
	t.Helper()
	out, err := h.catalog.Create(context.Background(), dto.CreateProductRequest{
		Name:     name,
		Quantity: qty,
		Cost:     decimal.NewFromFloat(2.50),
		Price:    decimal.NewFromFloat(5.00),
	})
	require.NoError(t, err, "o produto de seed deve ser cadastrado")
	return out.ID
}

// quantityOf devolve a quantidade atual do produto.
func (h *harness) quantityOf(t *testing.T, id string) int {
	t.Helper()
	out, err := h.catalog.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, out, "o produto deve existir")
	return out.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de entradas e saídas
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: entrada soma a quantidade ao estoque e aparece no livro.
func TestRegisterEntry_SomaQuantidade(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Café", 10)

	out, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{
		ProductID: id, Quantity: 5, Note: "reposição semanal",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovementEntry, out.Kind)
	assert.Equal(t, "Café", out.ProductName, "o nome deve vir resolvido na resposta")
	assert.False(t, out.Cancelled)
	assert.Equal(t, 15, h.quantityOf(t, id), "10 + 5 = 15")

	list, err := h.ledger.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "reposição semanal", list.Items[0].Note)
}

// Caso 2: saída subtrai do estoque; saída maior que o disponível é rejeitada
// com o erro tipado carregando disponível e solicitado, e nada é gravado.
func TestRegisterExit_EstoqueInsuficiente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Açúcar", 3)

	_, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, h.quantityOf(t, id))

	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 5})
	ise, ok := domain.AsInsufficientStock(err)
	require.True(t, ok, "deve falhar com InsufficientStockError, veio: %v", err)
	assert.Equal(t, 1, ise.Available)
	assert.Equal(t, 5, ise.Requested)

	assert.Equal(t, 1, h.quantityOf(t, id), "a quantidade não pode mudar numa saída rejeitada")
	list, err := h.ledger.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1, "a saída rejeitada não pode entrar no livro")
}

// Saída do estoque inteiro é válida e deixa o produto zerado.
func TestRegisterExit_EstoqueExato(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Farinha", 4)

	_, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, h.quantityOf(t, id))
}

func TestRegister_Validacao(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Sal", 1)

	_, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrValidation, "quantidade zero deve ser rejeitada")

	_, err = h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrValidation, "quantidade negativa deve ser rejeitada")

	_, err = h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: "  ", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation, "produto em branco deve ser rejeitado")

	_, err = h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: "inexistente", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelamento com estorno
// ──────────────────────────────────────────────────────────────────────────────

// Caso 3: cancelar uma saída devolve a quantidade; o registro permanece no
// livro, marcado como cancelado.
func TestCancel_SaidaDevolveEstoque(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Leite", 10)

	out, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 6})
	require.NoError(t, err)
	require.Equal(t, 4, h.quantityOf(t, id))

	cancelled, err := h.ledger.Cancel(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Equal(t, 10, h.quantityOf(t, id), "o estorno deve devolver as 6 unidades")

	list, err := h.ledger.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1, "movimentação cancelada continua visível")
	assert.True(t, list.Items[0].Cancelled)
}

// Cancelar uma entrada é uma saída implícita: se o estoque que ela trouxe já
// foi consumido, o cancelamento é rejeitado e nada muda.
func TestCancel_EntradaComEstoqueConsumido(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Óleo", 0)

	entry, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 10})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 7})
	require.NoError(t, err)
	require.Equal(t, 3, h.quantityOf(t, id))

	_, err = h.ledger.Cancel(ctx, entry.ID)
	ise, ok := domain.AsInsufficientStock(err)
	require.True(t, ok, "cancelar a entrada exigiria remover 10 com só 3 disponíveis")
	assert.Equal(t, 3, ise.Available)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 3, h.quantityOf(t, id), "rejeição não pode alterar o estoque")
}

// Caso 4: cancelamento é idempotente só na rejeição — a segunda tentativa
// falha com ErrAlreadyCancelled e não estorna duas vezes.
func TestCancel_Duplicado(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Arroz", 8)

	out, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 2})
	require.NoError(t, err)

	_, err = h.ledger.Cancel(ctx, out.ID)
	require.NoError(t, err)
	require.Equal(t, 8, h.quantityOf(t, id))

	_, err = h.ledger.Cancel(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 8, h.quantityOf(t, id), "o estorno não pode ser aplicado duas vezes")
}

func TestCancel_MovimentacaoInexistente(t *testing.T) {
	h := newHarness(t)
	_, err := h.ledger.Cancel(context.Background(), "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Cancelar uma movimentação cujo produto foi removido do catálogo falha com
// ErrNotFound: não há mais estoque a estornar.
func TestCancel_ProdutoRemovido(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Feijão", 5)

	out, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, h.catalog.Delete(ctx, id))

	_, err = h.ledger.Cancel(ctx, out.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listagem: ordenação e filtros
// ──────────────────────────────────────────────────────────────────────────────

// Caso 5: a listagem vem por data decrescente; empates de timestamp ficam na
// ordem inversa de inserção (o mais recente primeiro).
func TestList_OrdenacaoPorDataComEmpates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Trigo", 100)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)
	seed := func(note string, ts time.Time) {
		err := h.tx.Run(ctx, func(_ repository.ProductRepository, movements repository.MovementRepository) error {
			return movements.Create(ctx, &entity.Movement{
				ID: note, Kind: entity.MovementEntry, ProductID: id,
				Quantity: 1, Note: note, Timestamp: ts,
			})
		})
		require.NoError(t, err)
	}
	seed("antiga", base.Add(-time.Hour))
	seed("empate-1", base)
	seed("empate-2", base) // mesmo timestamp, inserida depois
	seed("recente", base.Add(time.Hour))

	list, err := h.ledger.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list.Items, 4)

	got := []string{list.Items[0].Note, list.Items[1].Note, list.Items[2].Note, list.Items[3].Note}
	assert.Equal(t, []string{"recente", "empate-2", "empate-1", "antiga"}, got)
}

func TestList_FiltroPorTipoEProduto(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.seedProduct(t, "Café", 10)
	b := h.seedProduct(t, "Chá", 10)

	_, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: a, Quantity: 1})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: a, Quantity: 2})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: b, Quantity: 3})
	require.NoError(t, err)

	exits, err := h.ledger.List(ctx, ledger.ListOptions{Kind: entity.MovementExit})
	require.NoError(t, err)
	assert.Equal(t, 2, exits.Total)

	ofA, err := h.ledger.List(ctx, ledger.ListOptions{ProductID: a})
	require.NoError(t, err)
	assert.Equal(t, 2, ofA.Total)

	exitsOfB, err := h.ledger.List(ctx, ledger.ListOptions{ProductID: b, Kind: entity.MovementExit})
	require.NoError(t, err)
	require.Equal(t, 1, exitsOfB.Total)
	assert.Equal(t, "Chá", exitsOfB.Items[0].ProductName)
}

// Busca não vazia exclui movimentações de produto removido (o nome não
// resolve); sem busca elas continuam visíveis, com o nome vazio.
func TestList_ReferenciaPendente(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Café Torrado", 10)

	_, err := h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, h.catalog.Delete(ctx, id))

	all, err := h.ledger.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, all.Total, "sem busca, a referência pendente fica visível")
	assert.Empty(t, all.Items[0].ProductName)

	searched, err := h.ledger.List(ctx, ledger.ListOptions{Search: "cafe"})
	require.NoError(t, err)
	assert.Zero(t, searched.Total, "com busca, a referência pendente é excluída")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliação
// ──────────────────────────────────────────────────────────────────────────────

// A quantidade movimentada só pelo livro confere com a soma das não
// canceladas; a edição direta pelo catálogo produz uma divergência reportada.
func TestReconcile_DivergenciaAposEdicaoDireta(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Milho", 0)

	_, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 10})
	require.NoError(t, err)
	_, err = h.ledger.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 4})
	require.NoError(t, err)

	issues, err := h.ledger.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues, "movimentado só pelo livro, não há divergência")

	novaQtd := 50
	_, err = h.catalog.Update(ctx, id, dto.UpdateProductRequest{Quantity: &novaQtd})
	require.NoError(t, err)

	issues, err = h.ledger.Reconcile(ctx)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, 50, issues[0].Cached)
	assert.Equal(t, 6, issues[0].Expected, "10 de entrada - 4 de saída")
}

// Movimentações canceladas ficam fora da soma esperada.
func TestReconcile_IgnoraCanceladas(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	id := h.seedProduct(t, "Aveia", 0)

	entry, err := h.ledger.RegisterEntry(ctx, dto.RegisterMovementRequest{ProductID: id, Quantity: 8})
	require.NoError(t, err)
	_, err = h.ledger.Cancel(ctx, entry.ID)
	require.NoError(t, err)

	issues, err := h.ledger.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, issues, "entrada cancelada e estornada: cacheado 0, esperado 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidade: falha de persistência não pode deixar efeito parcial
// ──────────────────────────────────────────────────────────────────────────────

// flakyStore delega ao MemoryStore mas passa a falhar o SetMulti sob demanda.
type flakyStore struct {
	*storage.MemoryStore
	fail bool
}

func (s *flakyStore) SetMulti(ctx context.Context, blobs map[string][]byte) error {
	if s.fail {
		return errors.New("disco cheio")
	}
	return s.MemoryStore.SetMulti(ctx, blobs)
}

func TestRegister_FalhaDePersistenciaNaoDeixaEfeitoParcial(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	tx := storage.NewTxRunner(store)
	products := storage.NewProductReader(store)
	movements := storage.NewMovementReader(store)
	uc := ledger.NewUseCase(tx, products, movements, logger.Nop())
	cat := catalog.NewUseCase(products, tx, logger.Nop())
	ctx := context.Background()

	created, err := cat.Create(ctx, dto.CreateProductRequest{Name: "Cacau", Quantity: 5})
	require.NoError(t, err)

	store.fail = true
	_, err = uc.RegisterExit(ctx, dto.RegisterMovementRequest{ProductID: created.ID, Quantity: 2})
	require.Error(t, err, "o commit deve propagar a falha do storage")

	store.fail = false
	got, err := cat.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity, "a quantidade não pode ter sido ajustada")

	list, err := uc.List(ctx, ledger.ListOptions{})
	require.NoError(t, err)
	assert.Zero(t, list.Total, "a movimentação não pode ter sido gravada")
}
