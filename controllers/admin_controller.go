package controllers

import (
	"context"
	"net/http"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/middleware"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountService manages back-office accounts
type AccountService interface {
	List(ctx context.Context) ([]models.Admin, error)
	Create(ctx context.Context, in models.CreateAdminRequest) (*models.Admin, error)
	Update(ctx context.Context, id string, in models.UpdateAdminRequest) (*models.Admin, error)
	Delete(ctx context.Context, actor primitive.ObjectID, id string) error
}

// AdminController is the admin-only account management API
type AdminController struct {
	accounts AccountService
}

func NewAdminController(accounts AccountService) *AdminController {
	return &AdminController{accounts: accounts}
}

func (ac *AdminController) ListAdmins(c echo.Context) error {
	admins, err := ac.accounts.List(c.Request().Context())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Admins retrieved successfully", admins)
}

func (ac *AdminController) CreateAdmin(c echo.Context) error {
	var req models.CreateAdminRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	admin, err := ac.accounts.Create(c.Request().Context(), req)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusCreated, "Admin created successfully", admin)
}

func (ac *AdminController) UpdateAdmin(c echo.Context) error {
	var req models.UpdateAdminRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	admin, err := ac.accounts.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Admin updated successfully", admin)
}

func (ac *AdminController) DeleteAdmin(c echo.Context) error {
	actor := middleware.CurrentAdmin(c)
	if actor == nil {
		return apperrors.Respond(c, apperrors.Unauthenticated("Access denied. No token provided."))
	}

	if err := ac.accounts.Delete(c.Request().Context(), actor.ID, c.Param("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Admin deleted successfully", nil)
}
