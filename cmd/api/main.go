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
	"github.com/tu-usuario/ensamblados-api/internal/application/assembly"
	"github.com/tu-usuario/ensamblados-api/internal/application/catalog"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ensamblados-api/internal/interfaces/http"
	"github.com/tu-usuario/ensamblados-api/pkg/config"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas). Las operaciones que mutan stock
	// corren sobre repos atados a una transacción vía TxRunner.
	itemRepo := postgres.NewItemRepository(pool)
	bomRepo := postgres.NewBomRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	asmRepo := postgres.NewAssemblyRepository(pool)
	siteRepo := postgres.NewSiteRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	uomRepo := postgres.NewUomRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	itemUC := catalog.NewItemUseCase(itemRepo, bomRepo, uomRepo, txRunner)
	directoryUC := catalog.NewDirectoryUseCase(siteRepo, userRepo, uomRepo)
	stockUC := stock.NewUseCase(txRunner, itemRepo, siteRepo, stockRepo, movRepo, log)
	assemblyUC := assembly.NewUseCase(txRunner, itemRepo, siteRepo, asmRepo, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ensamblados API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:      itemUC,
		DirectoryUC: directoryUC,
		StockUC:     stockUC,
		AssemblyUC:  assemblyUC,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
