package routes

import (
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/labstack/echo/v4"
)

var (
	anyRole  = []string{models.RoleAdmin, models.RoleManager, models.RoleEditor}
	managers = []string{models.RoleAdmin, models.RoleManager}
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(api *echo.Group, h Handlers, auth middleware.Authenticator, cache *middleware.ResponseCache) {
	admin := api.Group("/admin")

	// Public routes (no auth required)
	admin.POST("/login", h.Auth.Login)

	// Protected routes (require admin authentication)
	protected := admin.Group("", middleware.RequireAuth(auth))
	protected.POST("/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/change-password", h.Auth.ChangePassword)

	accounts := protected.Group("/admins", middleware.RequireRole(models.RoleAdmin))
	accounts.GET("", h.Admins.ListAdmins)
	accounts.POST("", h.Admins.CreateAdmin)
	accounts.PUT("/:id", h.Admins.UpdateAdmin)
	accounts.DELETE("/:id", h.Admins.DeleteAdmin)

	// Successful writes purge the storefront cache
	menu := protected.Group("/menu", cache.InvalidateOnWrite())
	menu.GET("", h.Menu.GetMenuItems)
	menu.GET("/stats/overview", h.Menu.GetMenuStats)
	menu.GET("/categories/all", h.Menu.GetMenuCategories)
	menu.GET("/:id", h.Menu.GetMenuItem)
	menu.POST("", h.Menu.CreateMenuItem, middleware.RequireRole(anyRole...))
	menu.PUT("/:id", h.Menu.UpdateMenuItem, middleware.RequireRole(anyRole...))
	menu.DELETE("/:id", h.Menu.DeleteMenuItem, middleware.RequireRole(managers...))
	menu.POST("/bulk", h.Menu.BulkMenuItems, middleware.RequireRole(managers...))

	gallery := protected.Group("/gallery", cache.InvalidateOnWrite())
	gallery.GET("", h.Gallery.GetGalleryItems)
	gallery.GET("/stats/overview", h.Gallery.GetGalleryStats)
	gallery.GET("/categories/all", h.Gallery.GetGalleryCategories)
	gallery.GET("/:id", h.Gallery.GetGalleryItem)
	gallery.POST("", h.Gallery.CreateGalleryItem, middleware.RequireRole(anyRole...))
	gallery.PUT("/:id", h.Gallery.UpdateGalleryItem, middleware.RequireRole(anyRole...))
	gallery.POST("/reorder", h.Gallery.ReorderGalleryItems, middleware.RequireRole(anyRole...))
	gallery.DELETE("/:id", h.Gallery.DeleteGalleryItem, middleware.RequireRole(managers...))
	gallery.POST("/bulk", h.Gallery.BulkGalleryItems, middleware.RequireRole(managers...))
}
