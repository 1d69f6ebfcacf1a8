package report

import (
	"context"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/dto"
)

// PDFGenerator renderiza o modelo de documento do relatório para PDF.
// O core só conhece o modelo; o formato de saída é do colaborador.
type PDFGenerator interface {
	GenerateReportPDF(ctx context.Context, rep *dto.Report) ([]byte, error)
}
