// Package query implementa o motor de busca e filtragem sobre produtos e
// movimentações. Todas as funções são puras: recebem o estado e devolvem o
// subconjunto filtrado, sem tocar nos stores.
package query

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// stripAccents decompõe (NFD), remove as marcas de acentuação e recompõe.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normaliza texto para busca: minúsculas e sem acentos, de modo que
// "Café" case com "cafe".
func Fold(s string) string {
	folded, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return folded
}

// FilterProducts busca por substring no nome, sem diferenciar maiúsculas nem
// acentos. Busca vazia (ou só espaços) devolve todos, na ordem recebida.
func FilterProducts(products []entity.Product, search string) []entity.Product {
	needle := Fold(strings.TrimSpace(search))
	if needle == "" {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(Fold(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FilterMovements casa pelo nome resolvido do produto ou pela observação.
// Com busca vazia devolve todas — inclusive movimentações com referência
// pendente, que ficam visíveis na listagem sem filtro mas são excluídas de
// buscas não vazias (o nome não resolve).
func FilterMovements(movements []entity.Movement, products []entity.Product, search string) []entity.Movement {
	needle := Fold(strings.TrimSpace(search))
	if needle == "" {
		return movements
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = Fold(p.Name)
	}
	out := make([]entity.Movement, 0, len(movements))
	for _, m := range movements {
		name, resolved := names[m.ProductID]
		if resolved && strings.Contains(name, needle) {
			out = append(out, m)
			continue
		}
		if m.Note != "" && strings.Contains(Fold(m.Note), needle) {
			out = append(out, m)
		}
	}
	return out
}

// ByDateRange filtra pelo intervalo inclusivo, truncado à granularidade de
// dia: o início vai para 00:00:00.000 e o fim para 23:59:59.999. Limite
// omitido (nil) significa ilimitado daquele lado.
func ByDateRange(movements []entity.Movement, start, end *time.Time) []entity.Movement {
	if start == nil && end == nil {
		return movements
	}
	out := make([]entity.Movement, 0, len(movements))
	for _, m := range movements {
		if start != nil && m.Timestamp.Before(dayFloor(*start)) {
			continue
		}
		if end != nil && m.Timestamp.After(dayCeil(*end)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func dayFloor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func dayCeil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999_000_000, t.Location())
}

// ByStockStatus devolve os produtos na classe pedida (ok, baixo ou zerado).
// As três classes particionam o catálogo: todo produto cai em exatamente uma.
func ByStockStatus(products []entity.Product, status string) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if p.Status() == status {
			out = append(out, p)
		}
	}
	return out
}
