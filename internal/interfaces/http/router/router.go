// Package router wires middleware and handlers into the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stemkits/backend/internal/domain/identity"
	"github.com/stemkits/backend/internal/infrastructure/config"
	"github.com/stemkits/backend/internal/infrastructure/logger"
	"github.com/stemkits/backend/internal/interfaces/http/handler"
	"github.com/stemkits/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
	Order    *handler.OrderHandler
	Customer *handler.CustomerHandler
	Supplier *handler.SupplierHandler
	Ticket   *handler.TicketHandler
	Template *handler.TemplateHandler
	Settings *handler.SettingsHandler
	Report   *handler.ReportHandler
	Health   *handler.HealthHandler
}

// Options carries cross-cutting router configuration
type Options struct {
	Config           *config.Config
	Logger           *zap.Logger
	JWT              middleware.JWTMiddlewareConfig
	TelemetryEnabled bool
}

// New builds the gin engine with the full route table
func New(opts Options, h Handlers) (*gin.Engine, error) {
	if opts.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.Config.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID(opts.Logger))
	engine.Use(logger.Recovery(opts.Logger))
	engine.Use(logger.GinMiddleware(opts.Logger))
	if opts.TelemetryEnabled {
		engine.Use(otelgin.Middleware(opts.Config.App.Name))
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORS(middleware.CORSFromHTTPConfig(opts.Config.HTTP)))
	engine.Use(middleware.BodyLimit(opts.Config.HTTP.MaxBodySize))
	if opts.Config.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			opts.Config.HTTP.RateLimitRequests,
			opts.Config.HTTP.RateLimitWindow,
		)
		engine.Use(middleware.RateLimit(limiter))
	}

	engine.NoRoute(middleware.NotFoundHandler())

	engine.GET("/healthz", h.Health.Live)
	engine.GET("/readyz", h.Health.Ready)

	api := engine.Group("/api/v1")
	authRequired := middleware.JWTAuth(opts.JWT)

	registerAuthRoutes(api, opts, h, authRequired)
	registerStorefrontRoutes(api, h)
	registerCustomerRoutes(api, h, authRequired)
	registerSupplierRoutes(api, h, authRequired)
	registerAdminRoutes(api, h, authRequired)

	return engine, nil
}

func registerAuthRoutes(api *gin.RouterGroup, opts Options, h Handlers, authRequired gin.HandlerFunc) {
	auth := api.Group("/auth")

	// Credential endpoints get a stricter limiter to slow down brute force.
	if opts.Config.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(
			opts.Config.HTTP.AuthRateLimitRequests,
			opts.Config.HTTP.AuthRateLimitWindow,
		)
		auth.Use(middleware.RateLimit(limiter))
	}

	auth.POST("/register", h.Auth.Register)
	auth.POST("/register-supplier", h.Auth.RegisterSupplier)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)

	session := api.Group("/auth", authRequired)
	session.POST("/logout", h.Auth.Logout)
	session.POST("/change-password", h.Auth.ChangePassword)
	session.GET("/me", h.Auth.Me)
}

func registerStorefrontRoutes(api *gin.RouterGroup, h Handlers) {
	store := api.Group("/store")
	store.GET("/settings", h.Settings.GetStorefront)
	store.GET("/categories", h.Category.Browse)
	store.GET("/categories/tree", h.Category.BrowseTree)
	store.GET("/categories/:slug", h.Category.GetBySlug)
	store.GET("/products", h.Product.Browse)
	store.GET("/products/:slug", h.Product.GetBySlug)
}

func registerCustomerRoutes(api *gin.RouterGroup, h Handlers, authRequired gin.HandlerFunc) {
	customer := api.Group("", authRequired, middleware.RequireRole(identity.RoleCustomer))

	me := customer.Group("/me")
	me.GET("/profile", h.Customer.GetProfile)
	me.PUT("/profile", h.Customer.UpdateProfile)
	me.GET("/loyalty", h.Customer.GetLoyalty)

	me.GET("/addresses", h.Customer.ListAddresses)
	me.POST("/addresses", h.Customer.CreateAddress)
	me.PUT("/addresses/:id", h.Customer.UpdateAddress)
	me.POST("/addresses/:id/default-shipping", h.Customer.SetDefaultShippingAddress)
	me.POST("/addresses/:id/default-billing", h.Customer.SetDefaultBillingAddress)
	me.DELETE("/addresses/:id", h.Customer.DeleteAddress)

	me.GET("/payment-cards", h.Customer.ListPaymentCards)
	me.POST("/payment-cards", h.Customer.CreatePaymentCard)
	me.POST("/payment-cards/:id/default", h.Customer.SetDefaultPaymentCard)
	me.DELETE("/payment-cards/:id", h.Customer.DeletePaymentCard)

	cart := customer.Group("/cart")
	cart.GET("", h.Cart.Get)
	cart.POST("/items", h.Cart.AddItem)
	cart.PUT("/items/:product_id", h.Cart.UpdateItem)
	cart.DELETE("/items/:product_id", h.Cart.RemoveItem)
	cart.DELETE("", h.Cart.Clear)

	wishlist := customer.Group("/wishlist")
	wishlist.GET("", h.Wishlist.Get)
	wishlist.POST("/items", h.Wishlist.AddItem)
	wishlist.DELETE("/items/:product_id", h.Wishlist.RemoveItem)
	wishlist.POST("/items/:product_id/move-to-cart", h.Wishlist.MoveToCart)

	customer.POST("/checkout", h.Order.Checkout)

	orders := customer.Group("/orders")
	orders.GET("", h.Order.ListOwn)
	orders.GET("/:id", h.Order.GetOwn)
	orders.GET("/track/:number", h.Order.Track)
	orders.POST("/:id/cancel", h.Order.CancelOwn)
}

func registerSupplierRoutes(api *gin.RouterGroup, h Handlers, authRequired gin.HandlerFunc) {
	portal := api.Group("/supplier", authRequired, middleware.RequireRole(identity.RoleSupplier))

	portal.GET("/profile", h.Supplier.GetProfile)
	portal.PUT("/profile", h.Supplier.UpdateProfile)

	tickets := portal.Group("/tickets")
	tickets.POST("", h.Ticket.Create)
	tickets.GET("", h.Ticket.ListOwn)
	tickets.GET("/:id", h.Ticket.GetOwn)
	tickets.POST("/:id/responses", h.Ticket.Respond)
	tickets.POST("/:id/reopen", h.Ticket.Reopen)
	tickets.POST("/:id/attachments", h.Ticket.InitiateAttachmentUpload)
	tickets.GET("/:id/attachments/:attachment_id/download", h.Ticket.AttachmentDownloadURL)
}

func registerAdminRoutes(api *gin.RouterGroup, h Handlers, authRequired gin.HandlerFunc) {
	admin := api.Group("/admin", authRequired, middleware.RequireRole(identity.RoleAdmin))

	categories := admin.Group("/categories")
	categories.GET("", h.Category.List)
	categories.POST("", h.Category.Create)
	categories.GET("/:id", h.Category.Get)
	categories.PUT("/:id", h.Category.Update)
	categories.DELETE("/:id", h.Category.Delete)

	products := admin.Group("/products")
	products.GET("", h.Product.List)
	products.GET("/low-stock", h.Product.ListLowStock)
	products.POST("", h.Product.Create)
	products.GET("/:id", h.Product.Get)
	products.PUT("/:id", h.Product.Update)
	products.POST("/:id/publish", h.Product.Publish)
	products.POST("/:id/archive", h.Product.Archive)
	products.POST("/:id/stock", h.Product.AdjustStock)
	products.DELETE("/:id", h.Product.Delete)
	products.GET("/:id/images", h.Product.ListImages)
	products.POST("/images", h.Product.InitiateImageUpload)
	products.DELETE("/images/:image_id", h.Product.DeleteImage)

	orders := admin.Group("/orders")
	orders.GET("", h.Order.List)
	orders.GET("/:id", h.Order.Get)
	orders.POST("/:id/process", h.Order.StartProcessing)
	orders.POST("/:id/ship", h.Order.Ship)
	orders.POST("/:id/deliver", h.Order.MarkDelivered)
	orders.POST("/:id/cancel", h.Order.Cancel)
	orders.POST("/:id/refund", h.Order.Refund)

	customers := admin.Group("/customers")
	customers.GET("", h.Customer.List)
	customers.GET("/:id", h.Customer.Get)
	customers.POST("/:id/disable", h.Customer.Disable)
	customers.POST("/:id/enable", h.Customer.Enable)

	suppliers := admin.Group("/suppliers")
	suppliers.GET("", h.Supplier.List)
	suppliers.GET("/:id", h.Supplier.Get)
	suppliers.POST("/:id/approve", h.Supplier.Approve)
	suppliers.POST("/:id/reject", h.Supplier.Reject)
	suppliers.POST("/:id/suspend", h.Supplier.Suspend)
	suppliers.POST("/:id/reinstate", h.Supplier.Reinstate)

	tickets := admin.Group("/tickets")
	tickets.GET("", h.Ticket.List)
	tickets.GET("/:id", h.Ticket.Get)
	tickets.POST("/:id/responses", h.Ticket.RespondAsAdmin)
	tickets.POST("/:id/close", h.Ticket.Close)
	tickets.GET("/:id/attachments/:attachment_id/download", h.Ticket.AdminAttachmentDownloadURL)

	templates := admin.Group("/email-templates")
	templates.GET("", h.Template.List)
	templates.POST("", h.Template.Create)
	templates.GET("/:id", h.Template.Get)
	templates.PUT("/:id", h.Template.Update)
	templates.POST("/:id/activate", h.Template.Activate)
	templates.POST("/:id/deactivate", h.Template.Deactivate)
	templates.POST("/:id/test-render", h.Template.TestRender)
	templates.DELETE("/:id", h.Template.Delete)

	settings := admin.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.PUT("", h.Settings.Update)
	settings.POST("/announcement", h.Settings.SetAnnouncement)
	settings.POST("/pause-orders", h.Settings.PauseOrders)
	settings.POST("/resume-orders", h.Settings.ResumeOrders)

	reports := admin.Group("/reports")
	reports.GET("/sales-summary", h.Report.SalesSummary)
	reports.GET("/orders-by-status", h.Report.OrdersByStatus)
	reports.GET("/revenue-trend", h.Report.RevenueTrend)
	reports.GET("/top-products", h.Report.TopProducts)
	reports.GET("/top-customers", h.Report.TopCustomers)
	reports.GET("/low-stock", h.Report.LowStock)
	reports.POST("/refresh", h.Report.Refresh)
}
