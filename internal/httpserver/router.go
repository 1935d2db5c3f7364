package httpserver

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"foodcheq-companion/internal/api"
	"foodcheq-companion/internal/checkout"
	"foodcheq-companion/internal/domain"
	"foodcheq-companion/internal/notify"
)

// CartManager is the cart surface the handlers consume.
type CartManager interface {
	Items(ctx context.Context) []domain.CartItem
	Replace(ctx context.Context, items []domain.RawCartInput) ([]domain.CartItem, error)
	Add(ctx context.Context, product domain.RawCartInput, qty int) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, productID string, qty int) ([]domain.CartItem, error)
	Remove(ctx context.Context, productID string) ([]domain.CartItem, error)
	Clear(ctx context.Context) error
	TotalKobo(ctx context.Context) int64
	Count(ctx context.Context) int
}

// WishlistManager is the wishlist surface the handlers consume.
type WishlistManager interface {
	IDs(ctx context.Context) []string
	Count(ctx context.Context) int
	Add(ctx context.Context, productID string) ([]string, error)
	Remove(ctx context.Context, productID string) ([]string, error)
	Reconcile(ctx context.Context) ([]string, error)
}

// SessionManager is the session surface the handlers consume.
type SessionManager interface {
	AuthType(ctx context.Context) string
	IsAuthenticated(ctx context.Context) bool
	ClientID(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	SetVendorToken(ctx context.Context, token string) error
	SetAuthType(ctx context.Context, authType string) error
	Logout(ctx context.Context) error
}

// CheckoutService is the checkout surface the handlers consume.
type CheckoutService interface {
	Summary(ctx context.Context) checkout.Summary
	Submit(ctx context.Context) (*checkout.Result, error)
	VerifyPayment(ctx context.Context, reference string) (*api.PaymentStatus, error)
}

// BackendClient is the slice of the remote API the facade proxies.
type BackendClient interface {
	LoginUser(ctx context.Context, creds api.Credentials) (string, error)
	LoginVendor(ctx context.Context, creds api.Credentials) (string, error)
	VendorProfile(ctx context.Context) (*api.Vendor, error)
	Products(ctx context.Context) ([]api.Product, error)
	Product(ctx context.Context, id string) (*api.Product, error)
	ResolveImageURL(imageURL string) string
	TrackShipment(ctx context.Context, code string) (*api.Shipment, error)
}

// Deps carries the wired services into the router.
type Deps struct {
	Cart     CartManager
	Wishlist WishlistManager
	Session  SessionManager
	Checkout CheckoutService
	Backend  BackendClient
	Bus      *notify.Bus
}

// buildRouter wires routes for the facade.
func buildRouter(logger *log.Logger, db *sql.DB, deps Deps, origins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowOrigins = origins
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/cart", getCartHandler(deps.Cart))
	router.PUT("/cart", replaceCartHandler(deps.Cart))
	router.DELETE("/cart", clearCartHandler(deps.Cart))
	router.POST("/cart/items", addCartItemHandler(deps.Cart))
	router.PATCH("/cart/items/:productId", setQuantityHandler(deps.Cart))
	router.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Cart))

	router.GET("/badges", badgesHandler(deps.Cart, deps.Wishlist))

	router.GET("/products", listProductsHandler(deps.Backend))
	router.GET("/products/:id", getProductHandler(deps.Backend))

	router.GET("/wishlist", getWishlistHandler(deps.Wishlist))
	router.POST("/wishlist/items", addWishlistHandler(deps.Wishlist))
	router.DELETE("/wishlist/items/:productId", removeWishlistHandler(deps.Wishlist))
	router.POST("/wishlist/sync", syncWishlistHandler(deps.Wishlist))

	router.GET("/session", sessionStatusHandler(deps.Session))
	router.POST("/session/login", loginHandler(deps.Session, deps.Backend))
	router.POST("/session/logout", logoutHandler(deps.Session))
	router.GET("/session/profile", vendorProfileHandler(deps.Backend))

	router.GET("/checkout/summary", summaryHandler(deps.Checkout))
	router.POST("/checkout", submitHandler(deps.Checkout))
	router.GET("/checkout/verify", verifyHandler(deps.Checkout))

	router.GET("/track/:code", trackHandler(deps.Backend))

	if deps.Bus != nil {
		router.GET("/events", eventsHandler(deps.Bus))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
