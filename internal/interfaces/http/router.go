package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/panol-app/bodega-api/internal/application/auth"
	"github.com/panol-app/bodega-api/internal/application/ledger"
	"github.com/panol-app/bodega-api/internal/application/report"
	"github.com/panol-app/bodega-api/internal/application/usecase"
	"github.com/panol-app/bodega-api/internal/domain/entity"
	"github.com/panol-app/bodega-api/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	RegisterUC *ledger.RegisterMovementUseCase
	VoidUC     *ledger.VoidMovementUseCase
	QueryUC    *usecase.MovementQueryUseCase
	ExportUC   *report.ExportUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	CategoryUC *usecase.CategoryUseCase
	SupplierUC *usecase.SupplierUseCase
	UserUC     *usecase.UserUseCase
	Store      *storage.Store
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: el login es público, el registro lo hace un admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	soloAdmin := RequireRole(entity.RoleAdmin)
	adminOSupervisor := RequireRole(entity.RoleAdmin, entity.RoleSupervisor)

	protected.Post("/auth/registro", soloAdmin, authHandler.Register)

	// Movimientos: las rutas fijas van antes de /:id.
	movements := protected.Group("/movimientos")
	movementHandler := NewMovementHandler(deps.RegisterUC, deps.VoidUC, deps.QueryUC, deps.ExportUC, deps.Store)
	movements.Post("/", movementHandler.Register)
	movements.Get("/", movementHandler.List)
	movements.Get("/estadisticas", movementHandler.Stats)
	movements.Get("/reporte-diario", adminOSupervisor, movementHandler.ReporteDiario)
	movements.Get("/exportar/excel", adminOSupervisor, movementHandler.ExportExcel)
	movements.Get("/exportar/pdf", adminOSupervisor, movementHandler.ExportPDF)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Patch("/:id/anular", adminOSupervisor, movementHandler.Void)

	products := protected.Group("/productos")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", adminOSupervisor, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOSupervisor, productHandler.Update)
	products.Delete("/:id", soloAdmin, productHandler.Delete)
	products.Get("/:id/movimientos", movementHandler.ListByProduct)

	customers := protected.Group("/clientes")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", adminOSupervisor, customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", adminOSupervisor, customerHandler.Update)
	customers.Patch("/:id/limite", adminOSupervisor, customerHandler.UpdateLimit)
	customers.Delete("/:id", soloAdmin, customerHandler.Delete)
	customers.Get("/:id/movimientos", movementHandler.ListByCustomer)

	categories := protected.Group("/categorias")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", adminOSupervisor, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", adminOSupervisor, categoryHandler.Update)
	categories.Delete("/:id", soloAdmin, categoryHandler.Delete)

	suppliers := protected.Group("/proveedores")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", adminOSupervisor, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", adminOSupervisor, supplierHandler.Update)
	suppliers.Delete("/:id", soloAdmin, supplierHandler.Delete)

	users := protected.Group("/usuarios")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", soloAdmin, userHandler.List)
	users.Get("/:id", soloAdmin, userHandler.GetByID)
	users.Delete("/:id", soloAdmin, userHandler.Deactivate)
}
