package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaker-storefront/cart"
	"sneaker-storefront/catalog"
	"sneaker-storefront/checkout"
	"sneaker-storefront/controllers"
	"sneaker-storefront/database"
	"sneaker-storefront/middleware"
	"sneaker-storefront/newsletter"
)

// Dependencies are the shared services the HTTP layer is built from.
type Dependencies struct {
	Store          database.Store
	Catalog        *catalog.Catalog
	Pricing        cart.Pricing
	Checkout       *checkout.Service
	Newsletter     *newsletter.Service
	Log            *zap.Logger
	RequestTimeout time.Duration
}

// RegisterRoutes mounts the storefront API on r. Every route runs inside a
// client session; all but the event stream are bounded by RequestTimeout.
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	catalogController := controllers.NewCatalogController(deps.Catalog)
	cartController := controllers.NewCartController(deps.Store, deps.Catalog, deps.Pricing, deps.Log)
	wishlistController := controllers.NewWishlistController(deps.Store, deps.Catalog, deps.Log)
	authController := controllers.NewAuthController(deps.Store, deps.Log)
	checkoutController := controllers.NewCheckoutController(deps.Store, deps.Checkout)
	newsletterController := controllers.NewNewsletterController(deps.Newsletter)
	eventsController := controllers.NewEventsController(deps.Store, deps.Log)

	r.GET("/health", controllers.Health)

	session := r.Group("/", middleware.Session())
	session.GET("/events", eventsController.Stream)

	api := session.Group("/", middleware.Timeout(deps.RequestTimeout))
	{
		products := api.Group("/products")
		products.GET("", catalogController.ListProducts)
		products.GET("/search", catalogController.SearchProducts)
		products.GET("/featured", catalogController.FeaturedProducts)
		products.GET("/:id", catalogController.GetProduct)

		api.GET("/brands", catalogController.ListBrands)
		api.GET("/categories", catalogController.ListCategories)

		cartGroup := api.Group("/cart")
		cartGroup.GET("", cartController.GetCart)
		cartGroup.DELETE("", cartController.ClearCart)
		cartGroup.GET("/count", cartController.CartCount)
		cartGroup.POST("/items", cartController.AddItem)
		cartGroup.PUT("/items/:product_id", cartController.UpdateItem)
		cartGroup.DELETE("/items/:product_id", cartController.RemoveItem)
		cartGroup.POST("/promo", cartController.ApplyPromo)
		cartGroup.DELETE("/promo", cartController.RemovePromo)

		wishlistGroup := api.Group("/wishlist")
		wishlistGroup.GET("", wishlistController.GetWishlist)
		wishlistGroup.DELETE("", wishlistController.Clear)
		wishlistGroup.POST("/:product_id/toggle", wishlistController.Toggle)
		wishlistGroup.DELETE("/:product_id", wishlistController.Remove)

		authGroup := api.Group("/auth")
		authGroup.POST("/register", authController.Register)
		authGroup.POST("/login", authController.Login)
		authGroup.POST("/logout", authController.Logout)
		authGroup.GET("/me", authController.Me)

		api.POST("/checkout", checkoutController.PlaceOrder)
		api.GET("/checkout/saved", checkoutController.SavedDetails)

		api.POST("/newsletter", newsletterController.Subscribe)
	}
}
