package controllers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/labstack/echo/v4"
)

// MenuCatalog is the storefront view of the menu; only available items are visible
type MenuCatalog interface {
	PublicList(ctx context.Context, category string, lang models.Language) ([]models.MenuItem, error)
	PublicGet(ctx context.Context, id string) (*models.MenuItem, error)
	PublicCategories(ctx context.Context, lang models.Language) ([]string, error)
	Discounted(ctx context.Context) ([]models.MenuItem, error)
	Featured(ctx context.Context) ([]models.MenuItem, error)
}

// GalleryCatalog is the storefront view of the gallery; only active items are visible
type GalleryCatalog interface {
	PublicList(ctx context.Context, category string, lang models.Language) ([]models.GalleryItem, error)
	PublicGet(ctx context.Context, id string) (*models.GalleryItem, error)
	PublicCategories(ctx context.Context, lang models.Language) ([]string, error)
}

// PublicController serves the unauthenticated storefront reads.
// Responses are bare JSON; errors are {"message": ...}.
type PublicController struct {
	menu    MenuCatalog
	gallery GalleryCatalog
}

func NewPublicController(menu MenuCatalog, gallery GalleryCatalog) *PublicController {
	return &PublicController{menu: menu, gallery: gallery}
}

func (pc *PublicController) GetMenu(c echo.Context) error {
	items, err := pc.menu.PublicList(c.Request().Context(), c.QueryParam("category"), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetMenuByCategory(c echo.Context) error {
	items, err := pc.menu.PublicList(c.Request().Context(), pathParam(c, "category"), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetDiscountedItems(c echo.Context) error {
	items, err := pc.menu.Discounted(c.Request().Context())
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetFeaturedItems(c echo.Context) error {
	items, err := pc.menu.Featured(c.Request().Context())
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetMenuCategories(c echo.Context) error {
	categories, err := pc.menu.PublicCategories(c.Request().Context(), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (pc *PublicController) GetMenuItem(c echo.Context) error {
	item, err := pc.menu.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (pc *PublicController) GetGallery(c echo.Context) error {
	items, err := pc.gallery.PublicList(c.Request().Context(), c.QueryParam("category"), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetGalleryByCategory(c echo.Context) error {
	items, err := pc.gallery.PublicList(c.Request().Context(), pathParam(c, "category"), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (pc *PublicController) GetGalleryCategories(c echo.Context) error {
	categories, err := pc.gallery.PublicCategories(c.Request().Context(), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (pc *PublicController) GetGalleryItem(c echo.Context) error {
	item, err := pc.gallery.PublicGet(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func language(c echo.Context) models.Language {
	return models.ParseLanguage(c.QueryParam("language"))
}

// pathParam returns a decoded path segment. Echo routes on RawPath when the
// request has one, and its params are then still escaped.
func pathParam(c echo.Context, name string) string {
	v := c.Param(name)
	if c.Request().URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
