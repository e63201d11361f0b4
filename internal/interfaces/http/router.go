package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/wholesale-api/internal/application/auth"
	"github.com/jhoicas/wholesale-api/internal/application/ordering"
	"github.com/jhoicas/wholesale-api/internal/application/reporting"
	"github.com/jhoicas/wholesale-api/internal/application/usecase"
	"github.com/jhoicas/wholesale-api/internal/domain/entity"
	"github.com/jhoicas/wholesale-api/pkg/logger"
)

// BodyLimit largest accepted request body; product images go up to 5MB.
const BodyLimit = 8 << 20

// AppConfig server-level settings.
type AppConfig struct {
	Name        string
	CORSOrigins string
}

// NewApp builds the Fiber app with the error handler and the global middleware.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    BodyLimit,
		ErrorHandler: NewErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(AccessLog(log))
	return app
}

// RouterDeps dependencies of the routes.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ReportUC   *reporting.ReportUseCase
	BranchUC   *usecase.BranchUseCase
	SupplierUC *usecase.SupplierUseCase
	DeliveryUC *usecase.DeliveryUseCase
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	OrderUC    *ordering.OrderUseCase
	BookUC     *usecase.AddressBookUseCase
	JWTSecret  string
	PublicURL  string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authHandler := NewAuthHandler(deps.AuthUC, deps.PublicURL)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/verify", authHandler.Verify)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password/:token", authHandler.ResetPassword)

	authed := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleAdmin)
	branch := RequireRole(entity.RoleBranch)
	anyone := RequireRole(entity.RoleAdmin, entity.RoleBranch)

	adminHandler := NewAdminHandler(deps.ReportUC)
	api.Get("/dashboard-stats", authed, admin, adminHandler.DashboardStats)
	api.Get("/report-stats", authed, admin, adminHandler.DashboardStats)
	api.Get("/reports/:filter", authed, admin, adminHandler.Report)
	api.Get("/reports/:filter/export", authed, admin, adminHandler.ExportReport)
	api.Put("/update-profile", authed, admin, authHandler.UpdateProfile)
	api.Put("/update-password", authed, admin, authHandler.UpdatePassword)

	branches := NewBranchHandler(deps.BranchUC)
	api.Post("/create-branch", authed, admin, branches.Create)
	api.Get("/get-branches", authed, admin, branches.List)
	api.Get("/get-branch/:id", authed, admin, branches.GetByID)
	api.Post("/update-branch", authed, admin, branches.Update)
	api.Delete("/delete-branch/:id", authed, admin, branches.Delete)

	suppliers := NewSupplierHandler(deps.SupplierUC, deps.DeliveryUC)
	api.Post("/create-supplier", authed, admin, suppliers.Create)
	api.Post("/update-supplier", authed, admin, suppliers.Update)
	api.Get("/get-suppliers", authed, anyone, suppliers.List)
	api.Get("/get-supplier/:id", authed, anyone, suppliers.GetByID)
	api.Post("/set-holiday", authed, admin, suppliers.SetHolidays)
	api.Delete("/delete-supplier/:id", authed, admin, suppliers.Delete)

	api.Get("/get-delivery-days", authed, admin, suppliers.ListDeliveryDays)
	api.Get("/get-delivery-day/:id", authed, admin, suppliers.GetDeliveryDay)
	api.Post("/add-delivery-days", authed, admin, suppliers.AddDeliveryDays)
	api.Post("/edit-delivery-days/:id", authed, admin, suppliers.EditDeliveryDays)
	api.Delete("/delete-delivery-days/:id", authed, admin, suppliers.DeleteDeliveryDays)
	api.Get("/get-delivery-days-with-shop/:supplierId", authed, branch, suppliers.DeliveryDaysForBranch)

	catalog := NewCatalogHandler(deps.CategoryUC, deps.ProductUC)
	api.Post("/add-category", authed, admin, catalog.AddCategory)
	api.Post("/update-category", authed, admin, catalog.UpdateCategory)
	api.Get("/get-categories", authed, anyone, catalog.ListCategories)
	api.Get("/get-category/:id", authed, anyone, catalog.GetCategory)
	api.Delete("/delete-category/:id", authed, admin, catalog.DeleteCategory)

	api.Post("/add-product", authed, admin, catalog.AddProduct)
	api.Post("/update-product", authed, admin, catalog.UpdateProduct)
	api.Get("/get-all-products", authed, admin, catalog.ListProducts)
	api.Get("/get-product/:id", authed, admin, catalog.GetProduct)
	api.Get("/get-products-by-suppliers/:supplierId", authed, admin, catalog.ProductsBySupplier)
	api.Delete("/delete-product/:id", authed, admin, catalog.DeleteProduct)
	api.Get("/get-suppliers-with-details", authed, branch, catalog.SuppliersWithDetails)

	orders := NewOrderHandler(deps.OrderUC, deps.BookUC)
	api.Post("/place_order", authed, anyone, orders.PlaceOrder)
	api.Get("/get-all-orders", authed, admin, orders.List)
	api.Get("/get-order/:id", authed, anyone, orders.Get)
	api.Get("/get-orders-for-supplier/:supplierId", authed, admin, orders.ListForSupplier)
	api.Get("/get-supplier-order/:supplierId/:orderId", authed, admin, orders.GetSupplierOrder)
	api.Get("/get-orders-for-branch/:branchId", authed, admin, orders.ListForBranch)

	api.Post("/add-delivery-address", authed, branch, orders.AddAddress)
	api.Get("/delivery-addresses", authed, branch, orders.ListAddresses)
	api.Post("/add-card", authed, branch, orders.AddCard)
	api.Get("/cards", authed, branch, orders.ListCards)
}
