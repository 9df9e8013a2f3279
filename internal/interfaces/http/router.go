package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ensamblados-api/internal/application/assembly"
	"github.com/tu-usuario/ensamblados-api/internal/application/catalog"
	"github.com/tu-usuario/ensamblados-api/internal/application/stock"
	"github.com/tu-usuario/ensamblados-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *catalog.ItemUseCase
	DirectoryUC *catalog.DirectoryUseCase
	StockUC     *stock.UseCase
	AssemblyUC  *assembly.UseCase
	JWTSecret   string
	Log         *logger.Logger
}

// Router registra las rutas de la API. Todas las rutas van detrás del
// middleware de auth: cada mutación de stock registra el usuario que la hizo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de items y BOM
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.Log)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/templates", itemHandler.ListTemplates)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Deactivate)
	items.Get("/:id/bom", itemHandler.GetBom)
	items.Put("/:id/bom", itemHandler.ReplaceBom)

	// Stock, ajustes y bitácora
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC, deps.Log)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/availability", stockHandler.Availability)
	stockGroup.Get("/by-site/:siteId", stockHandler.ListBySite)
	stockGroup.Post("/adjust", RequireRole("admin"), stockHandler.Adjust)
	stockGroup.Get("/movements", stockHandler.ListMovements)
	stockGroup.Get("/export", stockHandler.ExportExcel)

	// Motor de ensamblados (bajo /stock para conservar las rutas históricas)
	assemblyHandler := NewAssemblyHandler(deps.AssemblyUC, deps.Log)
	stockGroup.Post("/assembly", assemblyHandler.Create)
	stockGroup.Get("/assemblies", assemblyHandler.List)
	stockGroup.Get("/assemblies/:id", assemblyHandler.GetByID)
	stockGroup.Post("/assemblies/:id/status", assemblyHandler.AdvanceStatus)
	stockGroup.Post("/assemblies/:id/complete", assemblyHandler.Complete)
	stockGroup.Post("/assemblies/:id/cancel", assemblyHandler.Cancel)

	// Directorio: sitios, usuarios y unidades
	directoryHandler := NewDirectoryHandler(deps.DirectoryUC, deps.Log)
	sites := protected.Group("/sites")
	sites.Post("/", directoryHandler.CreateSite)
	sites.Get("/", directoryHandler.ListSites)
	sites.Get("/:id", directoryHandler.GetSite)
	users := protected.Group("/users")
	users.Get("/", directoryHandler.ListUsers)
	users.Get("/:id", directoryHandler.GetUser)
	protected.Get("/uoms", directoryHandler.ListUoms)
}
