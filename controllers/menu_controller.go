package controllers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"github.com/labstack/echo/v4"
)

// MenuManager is the back-office view of the menu
type MenuManager interface {
	List(ctx context.Context, p query.ListParams) ([]models.MenuItem, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.MenuItem, error)
	Create(ctx context.Context, in *models.MenuItemInput) (*models.MenuItem, error)
	Update(ctx context.Context, id string, u *models.MenuItemUpdate) (*models.MenuItem, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, req models.BulkRequest) (*models.BulkResult, error)
	Stats(ctx context.Context) (*models.MenuStats, error)
	Categories(ctx context.Context) ([]string, error)
}

// MenuController is the admin menu API
type MenuController struct {
	menu MenuManager
}

func NewMenuController(menu MenuManager) *MenuController {
	return &MenuController{menu: menu}
}

// GetMenuItems returns one page filtered by search, category and sort params
func (mc *MenuController) GetMenuItems(c echo.Context) error {
	items, page, err := mc.menu.List(c.Request().Context(), query.ListParamsFromValues(c.QueryParams()))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:     http.StatusOK,
		Message:    "Menu items retrieved successfully",
		Data:       items,
		Pagination: page,
	})
}

func (mc *MenuController) GetMenuItem(c echo.Context) error {
	item, err := mc.menu.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Menu item retrieved successfully", item)
}

func (mc *MenuController) CreateMenuItem(c echo.Context) error {
	var in models.MenuItemInput
	if err := bindBody(c, &in); err != nil {
		return apperrors.Respond(c, err)
	}

	item, err := mc.menu.Create(c.Request().Context(), &in)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusCreated, "Menu item created successfully", item)
}

func (mc *MenuController) UpdateMenuItem(c echo.Context) error {
	var u models.MenuItemUpdate
	if err := bindBody(c, &u); err != nil {
		return apperrors.Respond(c, err)
	}

	item, err := mc.menu.Update(c.Request().Context(), c.Param("id"), &u)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Menu item updated successfully", item)
}

func (mc *MenuController) DeleteMenuItem(c echo.Context) error {
	if err := mc.menu.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Menu item deleted successfully", nil)
}

func (mc *MenuController) BulkMenuItems(c echo.Context) error {
	var req models.BulkRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	result, err := mc.menu.Bulk(c.Request().Context(), req)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, fmt.Sprintf("Bulk %s completed successfully", result.Action), result)
}

func (mc *MenuController) GetMenuStats(c echo.Context) error {
	stats, err := mc.menu.Stats(c.Request().Context())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Menu statistics retrieved successfully", stats)
}

func (mc *MenuController) GetMenuCategories(c echo.Context) error {
	categories, err := mc.menu.Categories(c.Request().Context())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Categories retrieved successfully", categories)
}
