package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/auth"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/catalog"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/ledger"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/report"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	CatalogUC *catalog.UseCase
	LedgerUC  *ledger.UseCase
	ReportUC  *report.UseCase
	AuthUC    *auth.UseCase
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Produtos (protegido)
	products := protected.Group("/produtos")
	productHandler := NewProductHandler(deps.CatalogUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Movimentações (protegido)
	movements := protected.Group("/movimentacoes")
	movementHandler := NewMovementHandler(deps.LedgerUC)
	movements.Post("/entradas", movementHandler.RegisterEntry)
	movements.Post("/saidas", movementHandler.RegisterExit)
	movements.Get("/", movementHandler.List)
	movements.Get("/conferencia", movementHandler.Reconcile)
	movements.Post("/:id/cancelar", movementHandler.Cancel)

	// Relatórios (protegido)
	reports := protected.Group("/relatorios")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/resumo", reportHandler.Summary)
	reports.Get("/pdf", reportHandler.PDF)
	reports.Get("/", reportHandler.Build)
}
