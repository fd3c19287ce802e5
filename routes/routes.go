package routes

import (
	"github.com/gofiber/fiber/v2"

	"dressshop-backend/controllers"
	"dressshop-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits or rolls back with the response)
	protected.Use(middlewares.RequestTx())

	// Products (catalog; one POST may create several variants)
	protected.Post("/product", controllers.CreateProduct)
	protected.Get("/products", controllers.GetProducts)
	protected.Get("/products/:id", controllers.GetProduct)
	protected.Put("/products/:id", controllers.UpdateProduct)
	protected.Delete("/products/:id", controllers.DeleteProduct)
	protected.Put("/products/:id/restore", controllers.RestoreProduct)

	// Schools
	protected.Post("/school", controllers.CreateSchool)
	protected.Get("/schools", controllers.GetSchools)
	protected.Get("/schools/:id", controllers.GetSchool)
	protected.Put("/schools/:id", controllers.UpdateSchool)
	protected.Delete("/schools/:id", controllers.DeleteSchool)
	protected.Get("/schools/:id/commissions", controllers.GetSchoolCommissions)

	// Commission agreements
	protected.Post("/commission", controllers.CreateCommission)
	protected.Get("/commissions", controllers.GetCommissions)
	protected.Delete("/commissions/:id", controllers.DeleteCommission)

	// Sales (settlement + cancellation)
	protected.Post("/sale", controllers.CreateSale)
	protected.Get("/sales", controllers.GetSales)
	protected.Get("/sales/:id", controllers.GetSale)
	protected.Put("/sales/:id", controllers.UpdateSale)
	protected.Post("/sales/:id/cancel", controllers.CancelSale)

	// Reports (single ledger behind all three views)
	protected.Get("/reports/dashboard", controllers.Dashboard)
	protected.Get("/reports/schools", controllers.SchoolTotals)
	protected.Get("/reports/schools/:id", controllers.SchoolReport)
}
