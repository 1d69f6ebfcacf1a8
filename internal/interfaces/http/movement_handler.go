package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/ledger"
	"github.com/Eduardo-Manarte/controle-estoque/internal/domain/entity"
)

// MovementHandler trata o livro de movimentações (protegido).
type MovementHandler struct {
	uc *ledger.UseCase
}

// NewMovementHandler constrói o handler.
func NewMovementHandler(uc *ledger.UseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// RegisterEntry godoc
// @Summary      Registrar entrada de estoque
// @Tags         movimentacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Dados da entrada"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movimentacoes/entradas [post]
func (h *MovementHandler) RegisterEntry(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.RegisterEntry(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterExit godoc
// @Summary      Registrar saída de estoque
// @Tags         movimentacoes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Dados da saída"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movimentacoes/saidas [post]
func (h *MovementHandler) RegisterExit(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.RegisterExit(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel godoc
// @Summary      Cancelar movimentação
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da movimentação"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movimentacoes/{id}/cancelar [post]
func (h *MovementHandler) Cancel(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id é requerido"})
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar movimentações
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Param        produto_id  query  string  false  "Filtra por produto"
// @Param        tipo        query  string  false  "Filtra por tipo"  Enums(entrada, saida)
// @Param        busca       query  string  false  "Busca por nome do produto ou observação"
// @Param        inicio      query  string  false  "Data inicial (AAAA-MM-DD, inclusiva)"
// @Param        fim         query  string  false  "Data final (AAAA-MM-DD, inclusiva)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movimentacoes [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	opts := ledger.ListOptions{
		ProductID: c.Query("produto_id"),
		Kind:      c.Query("tipo"),
		Search:    c.Query("busca"),
	}
	if opts.Kind != "" && opts.Kind != entity.MovementEntry && opts.Kind != entity.MovementExit {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo deve ser entrada ou saida"})
	}
	var err error
	if opts.DateStart, err = parseDateQuery(c, "inicio"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inicio inválido (use AAAA-MM-DD)"})
	}
	if opts.DateEnd, err = parseDateQuery(c, "fim"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fim inválido (use AAAA-MM-DD)"})
	}
	out, err := h.uc.List(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conferir quantidades contra o livro
// @Tags         movimentacoes
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReconciliationIssue
// @Router       /api/movimentacoes/conferencia [get]
func (h *MovementHandler) Reconcile(c *fiber.Ctx) error {
	issues, err := h.uc.Reconcile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	if issues == nil {
		issues = []dto.ReconciliationIssue{}
	}
	return c.JSON(issues)
}

// parseDateQuery lê um query param de data no formato AAAA-MM-DD.
// Devolve nil quando o parâmetro está ausente.
func parseDateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
