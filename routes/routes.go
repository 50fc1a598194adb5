package routes

import (
	"github.com/HSouheill/coffee_backend/controllers"
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/labstack/echo/v4"
)

// Handlers bundles every controller the API mounts
type Handlers struct {
	Auth    *controllers.AuthController
	Admins  *controllers.AdminController
	Menu    *controllers.MenuController
	Gallery *controllers.GalleryController
	Public  *controllers.PublicController
	Search  *controllers.SearchController
	Health  *controllers.HealthController
}

// SetupRoutes configures all API routes under /api
func SetupRoutes(e *echo.Echo, h Handlers, auth middleware.Authenticator, cache *middleware.ResponseCache) {
	api := e.Group("/api")

	api.GET("/health", h.Health.Health)

	RegisterPublicRoutes(api, h, cache)
	RegisterAdminRoutes(api, h, auth, cache)
}
