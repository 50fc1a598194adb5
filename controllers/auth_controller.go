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

// LoginService checks credentials and issues tokens
type LoginService interface {
	Login(ctx context.Context, identifier, password string) (*models.LoginResponse, error)
}

// ProfileService is the self-service part of account management
type ProfileService interface {
	Profile(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, in models.ProfileUpdate) (*models.Admin, error)
	ChangePassword(ctx context.Context, id primitive.ObjectID, in models.ChangePasswordRequest) error
}

// AuthController handles login and the signed-in account's own profile
type AuthController struct {
	auth     LoginService
	profiles ProfileService
}

func NewAuthController(auth LoginService, profiles ProfileService) *AuthController {
	return &AuthController{auth: auth, profiles: profiles}
}

// Login accepts a username or email plus password
func (ac *AuthController) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Respond(c, apperrors.Validation("Username and password are required"))
	}

	resp, err := ac.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Login successful", resp)
}

// Logout only acknowledges; tokens are dropped client-side
func (ac *AuthController) Logout(c echo.Context) error {
	return success(c, http.StatusOK, "Logout successful", nil)
}

func (ac *AuthController) GetProfile(c echo.Context) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return apperrors.Respond(c, apperrors.Unauthenticated("Access denied. No token provided."))
	}

	profile, err := ac.profiles.Profile(c.Request().Context(), admin.ID)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Profile retrieved successfully", profile)
}

func (ac *AuthController) UpdateProfile(c echo.Context) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return apperrors.Respond(c, apperrors.Unauthenticated("Access denied. No token provided."))
	}

	var req models.ProfileUpdate
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	updated, err := ac.profiles.UpdateProfile(c.Request().Context(), admin.ID, req)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Profile updated successfully", updated)
}

func (ac *AuthController) ChangePassword(c echo.Context) error {
	admin := middleware.CurrentAdmin(c)
	if admin == nil {
		return apperrors.Respond(c, apperrors.Unauthenticated("Access denied. No token provided."))
	}

	var req models.ChangePasswordRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	if err := ac.profiles.ChangePassword(c.Request().Context(), admin.ID, req); err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Password changed successfully", nil)
}
