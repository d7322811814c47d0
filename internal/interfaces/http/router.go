package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/templra/almacen-api/internal/application/auth"
	"github.com/templra/almacen-api/internal/application/usecase"
	"github.com/templra/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	UserUC         *usecase.UserUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	ProductUC      *usecase.ProductUseCase
	GeoUC          *usecase.GeoUseCase
	InventoryCount *usecase.InventoryCountUseCase
	InventoryLine  *usecase.InventoryLineUseCase
	JWTSecret      string
}

// Router registra las rutas de la API. El mapeo ruta → rol es explícito: cada
// ruta protegida declara Authenticate más RequireRole con los tipos admitidos
// (RequireRole sin tipos exige sólo sesión válida).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authn := Authenticate(deps.JWTSecret, deps.AuthUC)
	anyAuth := RequireRole()
	adminOnly := RequireRole(entity.TypeAdmin)
	adminOrUser := RequireRole(entity.TypeAdmin, entity.TypeUser)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/send/:email", authHandler.SendCode)
	authGroup.Get("/validate/:email/:code", authHandler.ValidateCode)
	authGroup.Get("/valid", authn, anyAuth, authHandler.Valid)
	authGroup.Post("/register", authn, adminOnly, authHandler.Register)
	authGroup.Post("/recovery/password", authn, adminOnly, authHandler.RecoveryPassword)
	authGroup.Post("/recovery/password/change", authn, adminOnly, authHandler.RecoveryPasswordChange)

	// Users
	users := api.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/email/:email", userHandler.GetByEmail)
	users.Get("/validate-password/:email/:password", userHandler.ValidatePassword)
	users.Put("/password/:id", userHandler.UpdatePassword)
	users.Get("/by-rol", authn, anyAuth, userHandler.ListByRole)
	users.Get("/profile", authn, anyAuth, userHandler.Profile)
	users.Post("/", authn, adminOnly, userHandler.Create)
	users.Get("/", authn, adminOnly, userHandler.List)
	users.Put("/reactivate/:id", authn, adminOnly, userHandler.Reactivate)
	users.Get("/:id", authn, adminOnly, userHandler.GetByID)
	users.Put("/:id", authn, adminOnly, userHandler.Update)
	users.Delete("/:id", authn, adminOnly, userHandler.Remove)

	// Warehouses
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/code/:code", warehouseHandler.GetByCode)
	warehouses.Get("/user/:userId", authn, anyAuth, warehouseHandler.ByUser)
	warehouses.Get("/", authn, adminOrUser, warehouseHandler.List)
	warehouses.Post("/", authn, adminOnly, warehouseHandler.Create)
	warehouses.Get("/find-one-by", authn, adminOnly, warehouseHandler.FindOneBy)
	warehouses.Put("/reactivate/:id", authn, adminOnly, warehouseHandler.Reactivate)
	warehouses.Get("/:id", authn, adminOnly, warehouseHandler.GetByID)
	warehouses.Put("/:id", authn, adminOnly, warehouseHandler.Update)
	warehouses.Delete("/:id", authn, adminOnly, warehouseHandler.Remove)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/code/:code", productHandler.GetByCode)
	products.Post("/", authn, adminOrUser, productHandler.Create)
	products.Get("/user/:userId", authn, adminOrUser, productHandler.ByUser)
	products.Put("/reactivate/:id", authn, adminOrUser, productHandler.Reactivate)
	products.Get("/", authn, adminOnly, productHandler.List)
	products.Get("/:id", authn, adminOrUser, productHandler.GetByID)
	products.Put("/:id", authn, adminOnly, productHandler.Update)
	products.Delete("/:id", authn, adminOnly, productHandler.Remove)

	// Inventory counts
	counts := api.Group("/inventory-counts", authn, adminOrUser)
	countHandler := NewInventoryCountHandler(deps.InventoryCount)
	counts.Post("/", countHandler.Create)
	counts.Get("/warehouse/:warehouseId", countHandler.ByWarehouse)
	counts.Put("/finish/:inventoryId", countHandler.Finish)

	// Inventory lines
	lines := api.Group("/inventory-lines")
	lineHandler := NewInventoryLineHandler(deps.InventoryLine)
	lines.Post("/", authn, adminOrUser, lineHandler.Create)
	lines.Get("/by-inventory-count/:inventoryCountId", authn, adminOrUser, lineHandler.ByCount)
	lines.Get("/", authn, adminOnly, lineHandler.List)
	lines.Get("/:id", authn, adminOnly, lineHandler.GetByID)
	lines.Put("/:id", authn, adminOnly, lineHandler.Update)
	lines.Delete("/:id", authn, adminOnly, lineHandler.Remove)

	// Catálogos geográficos (cualquier usuario autenticado)
	geoHandler := NewGeoHandler(deps.GeoUC)
	countries := api.Group("/countries", authn, anyAuth)
	countries.Get("/", geoHandler.Countries)
	countries.Get("/:id", geoHandler.Country)

	departments := api.Group("/departments", authn, anyAuth)
	departments.Get("/", geoHandler.Departments)
	departments.Get("/country/:countryId", geoHandler.DepartmentsByCountry)
	departments.Get("/:id", geoHandler.Department)

	cities := api.Group("/cities", authn, anyAuth)
	cities.Get("/", geoHandler.Cities)
	cities.Get("/department/:departmentId", geoHandler.CitiesByDepartment)
	cities.Get("/:id", geoHandler.City)
}
