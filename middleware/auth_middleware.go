// middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ContextKeyAdmin is where RequireAuth stores the resolved account
const ContextKeyAdmin = "admin"

// Authenticator resolves a bearer token to an active account
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Admin, error)
}

// RequireAuth accepts "Authorization: Bearer <token>" and attaches the account to the context
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return echoMiddleware.KeyAuthWithConfig(echoMiddleware.KeyAuthConfig{
		KeyLookup:  "header:" + echo.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(token string, c echo.Context) (bool, error) {
			admin, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				return false, err
			}
			c.Set(ContextKeyAdmin, admin)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			var appErr *apperrors.Error
			if !errors.As(err, &appErr) {
				err = apperrors.Unauthenticated("Access denied. No token provided.")
			}
			return apperrors.Respond(c, err)
		},
	})
}

// RequireRole lets the request through only when the account has one of roles.
// It must run after RequireAuth.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			admin := CurrentAdmin(c)
			if admin == nil {
				return apperrors.Respond(c, apperrors.Unauthenticated("Access denied. No token provided."))
			}
			if !admin.HasRole(roles...) {
				zap.L().Warn("Access denied",
					zap.String("username", admin.Username),
					zap.String("role", admin.Role),
					zap.String("path", c.Path()),
				)
				return apperrors.Respond(c, apperrors.Forbidden("Access denied. Insufficient permissions."))
			}
			return next(c)
		}
	}
}

// CurrentAdmin returns the account set by RequireAuth, or nil
func CurrentAdmin(c echo.Context) *models.Admin {
	admin, _ := c.Get(ContextKeyAdmin).(*models.Admin)
	return admin
}
