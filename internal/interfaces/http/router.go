package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/alumasa/almoxarifado-api/internal/application/audit"
	"github.com/alumasa/almoxarifado-api/internal/application/auth"
	"github.com/alumasa/almoxarifado-api/internal/application/movement"
	"github.com/alumasa/almoxarifado-api/internal/application/usecase"
	"github.com/alumasa/almoxarifado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ItemUC      *usecase.ItemUseCase
	MovementUC  *movement.UseCase
	ReconcileUC *movement.ReconcileUseCase
	HistoryUC   *usecase.HistoryUseCase
	ReportUC    *usecase.ReportUseCase
	SupplierUC  *usecase.SupplierUseCase
	UserUC      *usecase.UserUseCase
	BackupUC    *usecase.BackupUseCase
	Auditor     *audit.Recorder
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login público, /me protegido)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items + historial por ítem
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	items.Post("/", itemHandler.Create)
	items.Post("/bulk", itemHandler.BulkCreate)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Get("/:id/history", historyHandler.ListByItem)
	items.Get("/:id/history/csv", historyHandler.ExportCSV)

	// Movimientos (entradas y salidas)
	movements := protected.Group("/movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/entries", movementHandler.RegisterEntry)
	movements.Post("/exits", movementHandler.RegisterExit)

	// Conciliación de inventario físico
	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ReconcileUC)
	inventory.Post("/divergences", inventoryHandler.ComputeDivergence)
	inventory.Post("/adjustments", inventoryHandler.ApplyAdjustments)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/low-stock", reportHandler.LowStock)
	reports.Get("/low-stock/csv", reportHandler.LowStockCSV)
	reports.Post("/purchase-order", reportHandler.PurchaseOrder)
	reports.Get("/movements", reportHandler.Movements)
	reports.Get("/value-by-location", reportHandler.ValueByLocation)
	reports.Get("/value-by-location/csv", reportHandler.ValueByLocationCSV)
	reports.Get("/dashboard", reportHandler.Dashboard)

	// Proveedores
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	// Auditoría
	auditHandler := NewAuditHandler(deps.Auditor)
	protected.Get("/audit", auditHandler.List)

	// Usuarios (solo Administrador)
	users := protected.Group("/users", RequireProfile(entity.ProfileAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/password", userHandler.ChangePassword)
	users.Delete("/:id", userHandler.Delete)

	// Backup (solo Administrador)
	backup := protected.Group("/backup", RequireProfile(entity.ProfileAdmin))
	backupHandler := NewBackupHandler(deps.BackupUC)
	backup.Get("/export", backupHandler.Export)
	backup.Post("/restore", backupHandler.Restore)
}
