// Package ledger implementa o livro de movimentações: registro de entradas
// e saídas, cancelamento com estorno e a listagem ordenada que todos os
// consumidores usam. Toda mutação mantém a quantidade do produto consistente
// com o histórico, via catalog.AdjustQuantity dentro da mesma transação.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/catalog"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/query"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/repository"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/logger"
)

// UseCase casos de uso do livro de movimentações.
type UseCase struct {
	tx        TxRunner
	products  repository.ProductRepository
	movements repository.MovementRepository
	log       *logger.Logger
}

// NewUseCase constrói o caso de uso. products e movements são usados nas
// leituras; as mutações passam pelo TxRunner.
func NewUseCase(tx TxRunner, products repository.ProductRepository, movements repository.MovementRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, products: products, movements: movements, log: log}
}

// RegisterEntry registra uma entrada: valida quantidade e existência do
// produto, grava a movimentação e soma a quantidade ao estoque — tudo na
// mesma transação.
func (uc *UseCase) RegisterEntry(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.register(ctx, entity.MovementEntry, in)
}

// RegisterExit registra uma saída. Saída maior que o estoque disponível é
// uma pré-condição rejeitada com InsufficientStockError — nunca um clamp
// silencioso.
func (uc *UseCase) RegisterExit(ctx context.Context, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.register(ctx, entity.MovementExit, in)
}

func (uc *UseCase) register(ctx context.Context, kind string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantidade deve ser positiva", domain.ErrValidation)
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, fmt.Errorf("%w: produto é obrigatório", domain.ErrValidation)
	}

	var out *dto.MovementResponse
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		p, err := products.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		delta := in.Quantity
		if kind == entity.MovementExit {
			if in.Quantity > p.Quantity {
				return &domain.InsufficientStockError{Available: p.Quantity, Requested: in.Quantity}
			}
			delta = -in.Quantity
		}
		m := &entity.Movement{
			ID:        uuid.New().String(),
			Kind:      kind,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Note:      strings.TrimSpace(in.Note),
			Timestamp: time.Now(),
		}
		if err := movements.Create(ctx, m); err != nil {
			return err
		}
		if err := catalog.AdjustQuantity(ctx, products, in.ProductID, delta); err != nil {
			return err
		}
		out = dto.ToMovementResponse(m, p.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("tipo", kind).
		Str("produto_id", in.ProductID).
		Int("quantidade", in.Quantity).
		Msg("movimentação registrada")
	return out, nil
}

// Cancel cancela uma movimentação, estornando seu efeito sobre o estoque.
// O cancelamento de uma entrada é uma saída implícita da mesma quantidade:
// se o estoque restante já foi consumido por saídas posteriores, o
// cancelamento é rejeitado com InsufficientStockError. O cancelamento de
// uma saída sempre devolve a quantidade. Cancelled transita uma única vez,
// de false para true.
func (uc *UseCase) Cancel(ctx context.Context, movementID string) (*dto.MovementResponse, error) {
	var out *dto.MovementResponse
	err := uc.tx.Run(ctx, func(products repository.ProductRepository, movements repository.MovementRepository) error {
		m, err := movements.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Cancelled {
			return domain.ErrAlreadyCancelled
		}
		p, err := products.GetByID(ctx, m.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if m.IsEntry() && p.Quantity < m.Quantity {
			return &domain.InsufficientStockError{Available: p.Quantity, Requested: m.Quantity}
		}
		m.Cancelled = true
		if err := movements.Update(ctx, m); err != nil {
			return err
		}
		if err := catalog.AdjustQuantity(ctx, products, m.ProductID, -m.Delta()); err != nil {
			return err
		}
		out = dto.ToMovementResponse(m, p.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("movimentacao_id", movementID).
		Str("tipo", out.Kind).
		Msg("movimentação cancelada")
	return out, nil
}

// ListOptions filtros da listagem de movimentações.
type ListOptions struct {
	ProductID string
	Kind      string // "" = todas; "entrada" ou "saida"
	Search    string
	DateStart *time.Time
	DateEnd   *time.Time
}

// List devolve as movimentações por data decrescente (empates pela ordem
// inversa de inserção), com os filtros de produto, tipo, busca e período
// aplicados. Os nomes de produto vêm resolvidos; referências pendentes ficam
// com o nome vazio mas continuam visíveis quando não há busca.
func (uc *UseCase) List(ctx context.Context, opts ListOptions) (*dto.MovementListResponse, error) {
	var movs []entity.Movement
	var err error
	if opts.ProductID != "" {
		movs, err = uc.movements.ListByProduct(ctx, opts.ProductID)
	} else {
		movs, err = uc.movements.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}

	if opts.Kind != "" {
		filtered := movs[:0]
		for _, m := range movs {
			if m.Kind == opts.Kind {
				filtered = append(filtered, m)
			}
		}
		movs = filtered
	}
	movs = query.ByDateRange(movs, opts.DateStart, opts.DateEnd)
	movs = query.FilterMovements(movs, products, opts.Search)

	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}
	items := make([]dto.MovementResponse, 0, len(movs))
	for i := range movs {
		items = append(items, *dto.ToMovementResponse(&movs[i], names[movs[i].ProductID]))
	}
	return &dto.MovementListResponse{Items: items, Total: len(items)}, nil
}

// Reconcile é o diagnóstico de reconciliação: para cada produto, compara a
// quantidade cacheada com a soma das entradas menos saídas não canceladas.
// Divergências são esperadas quando a quantidade foi editada diretamente
// pelo catálogo; o diagnóstico só as reporta, não corrige nada.
func (uc *UseCase) Reconcile(ctx context.Context) ([]dto.ReconciliationIssue, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	movs, err := uc.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	net := make(map[string]int, len(products))
	for _, m := range movs {
		if m.Cancelled {
			continue
		}
		net[m.ProductID] += m.Delta()
	}
	issues := make([]dto.ReconciliationIssue, 0)
	for _, p := range products {
		expected := net[p.ID]
		if p.Quantity != expected {
			issues = append(issues, dto.ReconciliationIssue{
				ProductID:   p.ID,
				ProductName: p.Name,
				Cached:      p.Quantity,
				Expected:    expected,
			})
		}
	}
	if len(issues) > 0 {
		uc.log.Warn().Int("divergencias", len(issues)).Msg("reconciliação encontrou divergências")
	}
	return issues, nil
}
