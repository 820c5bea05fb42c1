package handler

import (
	"umkm-kembar-barokah/internal/middleware"
	"umkm-kembar-barokah/internal/service"
	"umkm-kembar-barokah/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services bundles everything the HTTP layer talks to.
type Services struct {
	Auth      service.AuthService
	Product   service.ProductService
	Customer  service.CustomerService
	Audit     service.AuditService
	Dashboard service.DashboardService
	Forecast  service.ForecastService
}

type RouterConfig struct {
	AppName        string
	AllowedOrigins string
	// RequestLog toggles fiber's request logger; tests switch it off.
	RequestLog bool
}

// NewRouter builds the fiber app with every route mounted.
func NewRouter(cfg RouterConfig, svc Services, hub *ws.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Middleware
	if cfg.RequestLog {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authHandler := NewAuthHandler(svc.Auth)
	productHandler := NewProductHandler(svc.Product)
	customerHandler := NewCustomerHandler(svc.Customer)
	auditHandler := NewAuditHandler(svc.Audit)
	dashHandler := NewDashboardHandler(svc.Dashboard)
	forecastHandler := NewForecastHandler(svc.Forecast)

	requireAuth := middleware.RequireAuth(svc.Auth)

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/change-password", authHandler.ChangePassword)
	auth.Get("/me", requireAuth, authHandler.Me)

	// ============ PROTECTED ROUTES ============
	produk := api.Group("/produk", requireAuth)
	produk.Get("/", productHandler.GetAll)
	produk.Post("/", productHandler.Create)
	produk.Get("/:id", productHandler.GetByID)
	produk.Put("/:id", productHandler.Update)
	produk.Delete("/:id", productHandler.Delete)
	produk.Get("/:id/customers", productHandler.GetCustomers)

	audit := api.Group("/audit", requireAuth)
	audit.Get("/", auditHandler.GetAll)
	audit.Post("/penjualan", auditHandler.CreateSale)
	audit.Post("/pengeluaran", auditHandler.CreateExpense)
	audit.Get("/produk/:produk_id", auditHandler.GetByProduct)
	audit.Get("/:id", auditHandler.GetByID)
	audit.Put("/:id", auditHandler.Update)
	audit.Delete("/:id", auditHandler.Delete)

	customer := api.Group("/customer", requireAuth)
	customer.Get("/", customerHandler.GetAll)
	customer.Post("/", customerHandler.Create)
	customer.Get("/produk/:produk_id", customerHandler.GetByProduct)
	customer.Get("/:id", customerHandler.GetByID)
	customer.Put("/:id", customerHandler.Update)
	customer.Delete("/:id", customerHandler.Delete)

	dashboard := api.Group("/dashboard", requireAuth)
	dashboard.Get("/stats", dashHandler.GetStats)
	dashboard.Get("/summary", dashHandler.GetSummary)
	dashboard.Get("/cashflow", dashHandler.GetCashFlow)
	dashboard.Get("/sales", dashHandler.GetWeeklySales)
	dashboard.Get("/product-share", dashHandler.GetProductShare)
	dashboard.Get("/sales-trend", dashHandler.GetSalesTrend)

	api.Post("/forecast", requireAuth, forecastHandler.Forecast)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
