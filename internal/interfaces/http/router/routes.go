package router

import (
	"github.com/gin-gonic/gin"

	"github.com/shopcart/backend/internal/interfaces/http/handler"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	System    *handler.SystemHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Favorite  *handler.FavoriteHandler
	Inventory *handler.InventoryHandler
	Account   *handler.AccountHandler
	Location  *handler.LocationHandler
}

// Guards are the per-route middlewares. Nil entries are skipped.
type Guards struct {
	// Authenticated rejects requests without a valid identity
	Authenticated gin.HandlerFunc
	// Optional attaches the identity when one is presented
	Optional gin.HandlerFunc
	// StoreAdmin admits StoreAdmin and Admin roles; runs after Authenticated
	StoreAdmin gin.HandlerFunc
	// JSONBody limits request bodies of JSON endpoints
	JSONBody gin.HandlerFunc
	// UploadBody limits request bodies of photo uploads
	UploadBody gin.HandlerFunc
}

// ShopRoutes returns the route table of the shop API
func ShopRoutes(h Handlers, g Guards) []RouteRegistrar {
	authenticated := chain(g.Authenticated)
	admin := chain(g.Authenticated, g.StoreAdmin)

	health := NewDomainGroup("health", "/health").
		GET("", h.System.Health)
	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.Info)

	auth := NewDomainGroup("auth", "/auth").Use(chain(g.JSONBody)...)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.Group("session", "").Use(authenticated...).
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser)

	products := NewDomainGroup("products", "/products")
	products.GET("", h.Product.Search)
	products.GET("/home", h.Product.Home)
	products.Group("detail", "").Use(chain(g.Optional)...).
		GET("/:id", h.Product.GetByID)
	products.Group("admin", "").Use(admin...).
		PUT("/:id/photo", withGuards(chain(g.UploadBody), h.Inventory.UploadPhoto)...).
		DELETE("/:id/photo", h.Inventory.DeletePhoto).
		PUT("/:id/stores/:storeId/stock", withGuards(chain(g.JSONBody), h.Inventory.SetStock)...)

	categories := NewDomainGroup("categories", "/categories").
		GET("", h.Product.ListCategories).
		GET("/:id", h.Product.GetCategory)

	favorites := NewDomainGroup("favorites", "/favorites").Use(authenticated...).
		GET("", h.Favorite.List).
		GET("/:productId", h.Favorite.Status).
		PUT("/:productId", h.Favorite.Add).
		DELETE("/:productId", h.Favorite.Remove)

	inventory := NewDomainGroup("inventory", "/inventory").Use(admin...).Use(chain(g.JSONBody)...).
		POST("/availability/refresh", h.Inventory.RefreshAvailability)

	accounts := NewDomainGroup("accounts", "/accounts").Use(authenticated...).
		GET("/me", h.Account.GetMine).
		GET("/me/transactions", h.Account.ListMyTransactions)

	transfers := NewDomainGroup("transfers", "/transfers").Use(authenticated...).Use(chain(g.JSONBody)...).
		POST("", h.Account.Transfer)

	locations := NewDomainGroup("locations", "/locations")
	locations.GET("/children", h.Location.Children)
	locations.GET("/areas/:id/chain", h.Location.Chain)
	locations.Group("caller", "").Use(authenticated...).
		GET("/me", h.Location.Mine).
		GET("/interstate", h.Location.InterState)

	return []RouteRegistrar{
		health, system, auth, products, categories, favorites,
		inventory, accounts, transfers, locations,
	}
}

func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

func withGuards(guards []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	return append(guards, final)
}
