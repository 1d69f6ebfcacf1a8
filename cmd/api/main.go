package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Eduardo-Manarte/controle-estoque/internal/application/auth"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/catalog"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/ledger"
	"github.com/Eduardo-Manarte/controle-estoque/internal/application/report"
	infrapdf "github.com/Eduardo-Manarte/controle-estoque/internal/infrastructure/pdf"
	"github.com/Eduardo-Manarte/controle-estoque/internal/infrastructure/storage"
	httpRouter "github.com/Eduardo-Manarte/controle-estoque/internal/interfaces/http"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/config"
	"github.com/Eduardo-Manarte/controle-estoque/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicação")

	ctx := context.Background()
	store, closeStore, err := newStore(ctx, cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Storage.Driver).Msg("conexão ao armazenamento")
	}
	defer closeStore()

	// Leitores fora de transação; as escritas passam pelo TxRunner.
	productReader := storage.NewProductReader(store)
	movementReader := storage.NewMovementReader(store)
	userReader := storage.NewUserReader(store)
	txRunner := storage.NewTxRunner(store)

	catalogUC := catalog.NewUseCase(productReader, txRunner, log)
	ledgerUC := ledger.NewUseCase(txRunner, productReader, movementReader, log)

	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := report.NewUseCase(productReader, movementReader, pdfGenerator, cfg.Report)

	authUC := auth.NewUseCase(userReader, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		LedgerUC:  ledgerUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, fechando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}

// newStore instancia o backend de persistência conforme STORAGE_DRIVER.
func newStore(ctx context.Context, cfg config.StorageConfig) (storage.BlobStore, func(), error) {
	switch cfg.Driver {
	case "redis":
		s, err := storage.NewRedisStore(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { _ = s.Close() }, nil
	case "postgres":
		s, err := storage.NewPostgresStore(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	default: // memory
		return storage.NewMemoryStore(), func() {}, nil
	}
}
