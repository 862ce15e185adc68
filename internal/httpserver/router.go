package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	accountsvc "storefront/internal/service/account"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
	ordersvc "storefront/internal/service/order"
)

// Deps collects the services the router depends on.
type Deps struct {
	Catalog  *catalogsvc.Service
	Cart     *cartsvc.Service
	Orders   *ordersvc.Service
	Accounts *accountsvc.Service
}

// Options tunes router behavior beyond the service wiring.
type Options struct {
	CORSOrigin  string
	StaticDir   string
	Development bool
}

type handlers struct {
	catalog  *catalogsvc.Service
	cart     *cartsvc.Service
	orders   *ordersvc.Service
	accounts *accountsvc.Service
	logger   *log.Logger
	dev      bool
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) *gin.Engine {
	if !opts.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = []string{opts.CORSOrigin}
	corsCfg.AllowCredentials = true
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if opts.StaticDir != "" {
		// Views, client scripts and images are served unmodified.
		router.Static("/static", opts.StaticDir)
	}

	h := &handlers{
		catalog:  deps.Catalog,
		cart:     deps.Cart,
		orders:   deps.Orders,
		accounts: deps.Accounts,
		logger:   logger,
		dev:      opts.Development,
	}

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respondMessage(c, http.StatusOK, "server up")
	})

	products := api.Group("/products")
	products.GET("", h.listProducts)
	products.GET("/meta/categories", h.listCategories)
	products.GET("/:id", h.getProduct)
	products.POST("", h.requireSession, h.requireAdmin, h.createProduct)
	products.PUT("/:id", h.requireSession, h.requireAdmin, h.updateProduct)
	products.DELETE("/:id", h.requireSession, h.requireAdmin, h.deleteProduct)

	cart := api.Group("/cart", h.requireSession)
	cart.GET("/:userId", h.getCart)
	cart.POST("/add", h.addToCart)
	cart.PUT("/update/:cartId", h.updateCartLine)
	cart.DELETE("/remove/:cartId", h.removeCartLine)
	cart.DELETE("/clear/:userId", h.clearCart)

	orders := api.Group("/orders", h.requireSession)
	orders.POST("/create", h.createOrder)
	orders.GET("/user/:userId", h.listUserOrders)
	orders.GET("/:orderId", h.getOrder)
	orders.PUT("/status/:orderId", h.requireAdmin, h.updateOrderStatus)

	users := api.Group("/users")
	users.POST("/register", h.register)
	users.POST("/login", h.login)
	users.POST("/logout", h.logout)
	users.GET("/profile/:id", h.requireSession, h.getProfile)
	users.PUT("/profile/:id", h.requireSession, h.updateProfile)
	users.PUT("/password/:id", h.requireSession, h.changePassword)

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
