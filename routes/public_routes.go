package routes

import (
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterPublicRoutes sets up the storefront read routes. Responses are cached when a cache is configured.
func RegisterPublicRoutes(api *echo.Group, h Handlers, cache *middleware.ResponseCache) {
	menu := api.Group("/menu", cache.Middleware())
	menu.GET("", h.Public.GetMenu)
	menu.GET("/category/:category", h.Public.GetMenuByCategory)
	menu.GET("/discounted", h.Public.GetDiscountedItems)
	menu.GET("/featured", h.Public.GetFeaturedItems)
	menu.GET("/categories/all", h.Public.GetMenuCategories)
	menu.GET("/:id", h.Public.GetMenuItem)

	gallery := api.Group("/gallery", cache.Middleware())
	gallery.GET("", h.Public.GetGallery)
	gallery.GET("/category/:category", h.Public.GetGalleryByCategory)
	gallery.GET("/categories/all", h.Public.GetGalleryCategories)
	gallery.GET("/:id", h.Public.GetGalleryItem)

	search := api.Group("/search", cache.Middleware())
	search.GET("", h.Search.Search)
	search.GET("/advanced", h.Search.AdvancedSearch)
	search.GET("/suggestions", h.Search.Suggestions)
}
