package router

import (
	"time"

	"clothingshop/internal/config"
	"clothingshop/internal/handler"
	"clothingshop/internal/middleware"
	"clothingshop/internal/repository"
	"clothingshop/internal/service"
	"clothingshop/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	staffSvc := service.NewStaffService(userRepo, cfg)
	saleSvc := service.NewSaleService(orderRepo, dispatcher)
	catalogSvc := service.NewCatalogService(productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(staffSvc)
	staffH := handler.NewStaffHandler(staffSvc)
	dashboardH := handler.NewDashboardHandler(saleSvc)
	ordersH := handler.NewOrdersHandler(saleSvc, orderRepo, cfg.ShopName, cfg.InvoiceStoragePath)
	productsH := handler.NewProductsHandler(catalogSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Storefront — no auth required
	catalog := r.Group("/v1/catalog")
	{
		catalog.GET("/products/featured", productsH.Featured)
		catalog.GET("/products/new", productsH.New)
		catalog.GET("/products/search", productsH.Search)
		catalog.GET("/products/:id", productsH.Detail)
		catalog.GET("/products/:id/related", productsH.Related)
	}

	// Back office — staff or admin
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	admin := r.Group("/v1/admin", jwtMW)
	{
		read := middleware.RequireRole("staff", "admin")
		write := middleware.RequireRole("admin")

		admin.GET("/dashboard", read, dashboardH.Dashboard)
		admin.GET("/reports/statistics", read, dashboardH.Statistics)
		admin.GET("/reports/status-distribution", read, dashboardH.StatusDistribution)
		admin.GET("/reports/sales-trend", read, dashboardH.SalesTrend)

		admin.GET("/orders", read, ordersH.List)
		admin.GET("/orders/export", read, ordersH.ExportXLSX)
		admin.GET("/orders/:id", read, ordersH.Detail)
		admin.PUT("/orders/:id/status", read, ordersH.UpdateStatus)
		admin.GET("/orders/:id/invoice", read, ordersH.Invoice)

		// Catalog writes — admin only
		products := admin.Group("/products", write)
		{
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.POST("/:id/variants", productsH.SaveVariant)
			products.PUT("/:id/variants/:variantId", productsH.SaveVariant)
			products.DELETE("/:id/variants/:variantId", productsH.DeleteVariant)
		}

		staff := admin.Group("/staff", write)
		{
			staff.POST("", staffH.Create)
			staff.GET("", staffH.List)
			staff.PUT("/:id", staffH.Update)
			staff.DELETE("/:id", staffH.Deactivate)
			staff.PATCH("/:id/reactivate", staffH.Reactivate)
			staff.GET("/roles", staffH.Roles)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
