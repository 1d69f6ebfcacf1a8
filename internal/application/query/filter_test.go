package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/query"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalização de texto
// ──────────────────────────────────────────────────────────────────────────────

func TestFold(t *testing.T) {
	assert.Equal(t, "cafe", query.Fold("Café"))
	assert.Equal(t, "acucar cristal", query.Fold("AÇÚCAR Cristal"))
	assert.Equal(t, "pao", query.Fold("PÃO"))
	assert.Equal(t, "", query.Fold(""))
}

func TestFilterProducts(t *testing.T) {
	products := []entity.Product{
		{ID: "1", Name: "Café Torrado"},
		{ID: "2", Name: "Açúcar"},
		{ID: "3", Name: "Chá de Camomila"},
	}

	assert.Len(t, query.FilterProducts(products, ""), 3, "busca vazia devolve todos")
	assert.Len(t, query.FilterProducts(products, "   "), 3, "só espaços conta como vazia")

	got := query.FilterProducts(products, "CAFE")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	got = query.FilterProducts(products, "cha")
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	assert.Empty(t, query.FilterProducts(products, "farinha"))
}

// A busca de movimentações casa pelo nome resolvido do produto ou pela
// observação; sem resolver e sem casar na observação, a movimentação sai.
func TestFilterMovements(t *testing.T) {
	products := []entity.Product{{ID: "p1", Name: "Café"}}
	movements := []entity.Movement{
		{ID: "m1", ProductID: "p1", Note: "reposição"},
		{ID: "m2", ProductID: "orfao", Note: "ajuste de inventário"},
		{ID: "m3", ProductID: "orfao"},
	}

	assert.Len(t, query.FilterMovements(movements, products, ""), 3, "sem busca, todas visíveis")

	byName := query.FilterMovements(movements, products, "cafe")
	require.Len(t, byName, 1)
	assert.Equal(t, "m1", byName[0].ID)

	byNote := query.FilterMovements(movements, products, "inventario")
	require.Len(t, byNote, 1)
	assert.Equal(t, "m2", byNote[0].ID, "a observação casa mesmo sem o nome resolver")

	assert.Empty(t, query.FilterMovements(movements, products, "zzz"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Intervalo de datas: inclusivo, na granularidade de dia
// ──────────────────────────────────────────────────────────────────────────────

func TestByDateRange_LimitesInclusivos(t *testing.T) {
	day := time.Date(2026, 5, 20, 0, 0, 0, 0, time.Local)
	movements := []entity.Movement{
		{ID: "meia-noite", Timestamp: day},
		{ID: "meio-dia", Timestamp: day.Add(12 * time.Hour)},
		{ID: "ultimo-ms", Timestamp: day.Add(24*time.Hour - time.Millisecond)},
		{ID: "dia-seguinte", Timestamp: day.Add(24 * time.Hour)},
		{ID: "vespera", Timestamp: day.Add(-time.Millisecond)},
	}

	// Início e fim no mesmo dia: pega tudo que cai dentro das 24h, inclusive
	// os extremos 00:00:00.000 e 23:59:59.999.
	meioDoDia := day.Add(15 * time.Hour) // o truncamento ignora a hora passada
	got := query.ByDateRange(movements, &meioDoDia, &meioDoDia)
	require.Len(t, got, 3)
	assert.Equal(t, "meia-noite", got[0].ID)
	assert.Equal(t, "meio-dia", got[1].ID)
	assert.Equal(t, "ultimo-ms", got[2].ID)

	// Só o início: ilimitado para frente.
	got = query.ByDateRange(movements, &day, nil)
	assert.Len(t, got, 4)

	// Só o fim: ilimitado para trás.
	got = query.ByDateRange(movements, nil, &day)
	assert.Len(t, got, 4)

	// Sem limites: devolve a própria lista.
	assert.Len(t, query.ByDateRange(movements, nil, nil), 5)
}

// ──────────────────────────────────────────────────────────────────────────────
// Classes de estoque: partição exata
// ──────────────────────────────────────────────────────────────────────────────

// Todo produto cai em exatamente uma das três classes:
// zerado ⇔ quantidade 0; baixo ⇔ 0 < quantidade ≤ mínimo; ok ⇔ quantidade > mínimo.
func TestByStockStatus_Particao(t *testing.T) {
	products := []entity.Product{
		{ID: "a", Quantity: 0, MinQuantity: 5},  // zerado (mesmo abaixo do mínimo)
		{ID: "b", Quantity: 0, MinQuantity: 0},  // zerado
		{ID: "c", Quantity: 3, MinQuantity: 5},  // baixo
		{ID: "d", Quantity: 5, MinQuantity: 5},  // baixo (igual ao mínimo)
		{ID: "e", Quantity: 6, MinQuantity: 5},  // ok
		{ID: "f", Quantity: 1, MinQuantity: 0},  // ok (mínimo zero)
	}

	out := query.ByStockStatus(products, entity.StatusOut)
	low := query.ByStockStatus(products, entity.StatusLow)
	ok := query.ByStockStatus(products, entity.StatusOK)

	assert.Len(t, out, 2)
	assert.Len(t, low, 2)
	assert.Len(t, ok, 2)
	assert.Equal(t, len(products), len(out)+len(low)+len(ok), "as classes particionam o conjunto")

	ids := func(list []entity.Product) []string {
		got := make([]string, 0, len(list))
		for _, p := range list {
			got = append(got, p.ID)
		}
		return got
	}
	assert.Equal(t, []string{"a", "b"}, ids(out))
	assert.Equal(t, []string{"c", "d"}, ids(low))
	assert.Equal(t, []string{"e", "f"}, ids(ok))
}
