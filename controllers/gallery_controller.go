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

// GalleryManager is the back-office view of the gallery
type GalleryManager interface {
	List(ctx context.Context, p query.ListParams) ([]models.GalleryItem, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.GalleryItem, error)
	Create(ctx context.Context, in *models.GalleryItemInput) (*models.GalleryItem, error)
	Update(ctx context.Context, id string, u *models.GalleryItemUpdate) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	Bulk(ctx context.Context, req models.BulkRequest) (*models.BulkResult, error)
	Reorder(ctx context.Context, req models.ReorderRequest) error
	Stats(ctx context.Context) (*models.GalleryStats, error)
	Categories(ctx context.Context) ([]string, error)
}

// GalleryController is the admin gallery API
type GalleryController struct {
	gallery GalleryManager
}

func NewGalleryController(gallery GalleryManager) *GalleryController {
	return &GalleryController{gallery: gallery}
}

func (gc *GalleryController) GetGalleryItems(c echo.Context) error {
	items, page, err := gc.gallery.List(c.Request().Context(), query.ListParamsFromValues(c.QueryParams()))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, models.Response{
		Status:     http.StatusOK,
		Message:    "Gallery items retrieved successfully",
		Data:       items,
		Pagination: page,
	})
}

func (gc *GalleryController) GetGalleryItem(c echo.Context) error {
	item, err := gc.gallery.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Gallery item retrieved successfully", item)
}

func (gc *GalleryController) CreateGalleryItem(c echo.Context) error {
	var in models.GalleryItemInput
	if err := bindBody(c, &in); err != nil {
		return apperrors.Respond(c, err)
	}

	item, err := gc.gallery.Create(c.Request().Context(), &in)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusCreated, "Gallery item created successfully", item)
}

func (gc *GalleryController) UpdateGalleryItem(c echo.Context) error {
	var u models.GalleryItemUpdate
	if err := bindBody(c, &u); err != nil {
		return apperrors.Respond(c, err)
	}

	item, err := gc.gallery.Update(c.Request().Context(), c.Param("id"), &u)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Gallery item updated successfully", item)
}

func (gc *GalleryController) DeleteGalleryItem(c echo.Context) error {
	if err := gc.gallery.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Gallery item deleted successfully", nil)
}

func (gc *GalleryController) BulkGalleryItems(c echo.Context) error {
	var req models.BulkRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	result, err := gc.gallery.Bulk(c.Request().Context(), req)
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, fmt.Sprintf("Bulk %s completed successfully", result.Action), result)
}

// ReorderGalleryItems sets each item's order to its index in the request
func (gc *GalleryController) ReorderGalleryItems(c echo.Context) error {
	var req models.ReorderRequest
	if err := bindBody(c, &req); err != nil {
		return apperrors.Respond(c, err)
	}

	if err := gc.gallery.Reorder(c.Request().Context(), req); err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Gallery items reordered successfully", nil)
}

func (gc *GalleryController) GetGalleryStats(c echo.Context) error {
	stats, err := gc.gallery.Stats(c.Request().Context())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Gallery statistics retrieved successfully", stats)
}

func (gc *GalleryController) GetGalleryCategories(c echo.Context) error {
	categories, err := gc.gallery.Categories(c.Request().Context())
	if err != nil {
		return apperrors.Respond(c, err)
	}
	return success(c, http.StatusOK, "Categories retrieved successfully", categories)
}
