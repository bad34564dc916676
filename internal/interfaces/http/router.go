package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kentcsclass/smart-imventory/internal/application/auth"
	"github.com/Kentcsclass/smart-imventory/internal/application/billing"
	"github.com/Kentcsclass/smart-imventory/internal/application/inventory"
	"github.com/Kentcsclass/smart-imventory/internal/application/usecase"
	"github.com/Kentcsclass/smart-imventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC      *usecase.ItemUseCase
	StatsUC     *usecase.StatsUseCase
	StockLedger *inventory.StockLedgerUseCase
	InvoiceUC   *billing.InvoiceUseCase
	AuthUC      *auth.AuthUseCase
	ItemExport  ItemExporter
	InvoicePDF  InvoicePDFGenerator
	InvoiceXML  InvoiceXMLExporter
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ItemExport)
	inventoryHandler := NewInventoryHandler(deps.StockLedger)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/export", itemHandler.Export)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)
	items.Post("/:id/adjust_stock", inventoryHandler.AdjustStock)

	// Receipts (protegido)
	receipts := protected.Group("/receipts")
	receipts.Get("/", inventoryHandler.ListReceipts)
	receipts.Post("/", inventoryHandler.ReceiveStock)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF, deps.InvoiceXML)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	invoices.Get("/:id/xml", invoiceHandler.XML)

	// Stats (protegido)
	statsHandler := NewStatsHandler(deps.StatsUC)
	protected.Get("/stats", statsHandler.Get)

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id/password", userHandler.ChangePassword)
}
