package controllers

import (
	"context"
	"net/http"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/query"
	"github.com/labstack/echo/v4"
)

// MenuSearcher runs storefront searches over available menu items
type MenuSearcher interface {
	Search(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error)
	Advanced(ctx context.Context, p query.SearchParams) ([]models.MenuItem, error)
	Suggestions(ctx context.Context, q string, lang models.Language) ([]string, error)
}

type SearchController struct {
	search MenuSearcher
}

func NewSearchController(search MenuSearcher) *SearchController {
	return &SearchController{search: search}
}

// Search handles ?q=&category=&language=&minPrice=&maxPrice=
func (sc *SearchController) Search(c echo.Context) error {
	p, err := query.SearchParamsFromValues(c.QueryParams())
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}

	items, err := sc.search.Search(c.Request().Context(), p)
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// AdvancedSearch additionally accepts isDiscounted, isFeatured, allergens and tags
func (sc *SearchController) AdvancedSearch(c echo.Context) error {
	p, err := query.SearchParamsFromValues(c.QueryParams())
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}

	items, err := sc.search.Advanced(c.Request().Context(), p)
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (sc *SearchController) Suggestions(c echo.Context) error {
	names, err := sc.search.Suggestions(c.Request().Context(), c.QueryParam("q"), language(c))
	if err != nil {
		return apperrors.RespondPublic(c, err)
	}
	return c.JSON(http.StatusOK, names)
}
