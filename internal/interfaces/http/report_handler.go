package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/report"
)

// ReportHandler trata o resumo do inventário e a geração de relatórios (protegido).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler constrói o handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumo do inventário
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReportSummary
// @Router       /api/relatorios/resumo [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Build godoc
// @Summary      Montar relatório de inventário
// @Tags         relatorios
// @Security     Bearer
// @Produce      json
// @Param        inicio         query  string  false  "Data inicial (AAAA-MM-DD, inclusiva)"
// @Param        fim            query  string  false  "Data final (AAAA-MM-DD, inclusiva)"
// @Param        status         query  string  false  "Filtro de status"  Enums(todos, ok, baixo, zerado)
// @Param        movimentacoes  query  bool    false  "Inclui a seção de movimentações"
// @Success      200  {object}  dto.Report
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios [get]
func (h *ReportHandler) Build(c *fiber.Ctx) error {
	opts, err := reportOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.BuildReport(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PDF godoc
// @Summary      Gerar relatório em PDF
// @Tags         relatorios
// @Security     Bearer
// @Produce      application/pdf
// @Param        inicio         query  string  false  "Data inicial (AAAA-MM-DD, inclusiva)"
// @Param        fim            query  string  false  "Data final (AAAA-MM-DD, inclusiva)"
// @Param        status         query  string  false  "Filtro de status"  Enums(todos, ok, baixo, zerado)
// @Param        movimentacoes  query  bool    false  "Inclui a seção de movimentações"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/relatorios/pdf [get]
func (h *ReportHandler) PDF(c *fiber.Ctx) error {
	opts, err := reportOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	pdfBytes, err := h.uc.RenderPDF(c.UserContext(), opts)
	if err != nil {
		return writeError(c, err)
	}
	filename := "relatorio-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// reportOptions monta dto.ReportOptions a partir dos query params.
func reportOptions(c *fiber.Ctx) (dto.ReportOptions, error) {
	opts := dto.ReportOptions{
		StatusFilter:     c.Query("status", dto.ReportFilterAll),
		IncludeMovements: c.QueryBool("movimentacoes", false),
	}
	switch opts.StatusFilter {
	case dto.ReportFilterAll, dto.ReportFilterOK, dto.ReportFilterLow, dto.ReportFilterOut:
	default:
		return opts, fmt.Errorf("status deve ser todos, ok, baixo ou zerado")
	}
	var err error
	if opts.DateStart, err = parseDateQuery(c, "inicio"); err != nil {
		return opts, fmt.Errorf("inicio inválido (use AAAA-MM-DD)")
	}
	if opts.DateEnd, err = parseDateQuery(c, "fim"); err != nil {
		return opts, fmt.Errorf("fim inválido (use AAAA-MM-DD)")
	}
	return opts, nil
}
