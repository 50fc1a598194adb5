package query

import (
	"net/url"

	"github.com/HSouheill/coffee_backend/apperrors"
	"github.com/HSouheill/coffee_backend/models"
	"github.com/HSouheill/coffee_backend/utils"
)

// ListParamsFromValues reads page, limit, search, category, sortBy and sortOrder
func ListParamsFromValues(v url.Values) ListParams {
	return ListParams{
		Page:      utils.ParseInt(v.Get("page"), DefaultPage),
		Limit:     utils.ParseInt(v.Get("limit"), DefaultLimit),
		Search:    v.Get("search"),
		Category:  v.Get("category"),
		SortBy:    v.Get("sortBy"),
		SortOrder: v.Get("sortOrder"),
	}
}

// SearchParamsFromValues reads the storefront search parameters.
// A price bound that is not a number is a validation error.
func SearchParamsFromValues(v url.Values) (SearchParams, error) {
	p := SearchParams{
		Text:         v.Get("q"),
		Category:     v.Get("category"),
		Language:     models.ParseLanguage(v.Get("language")),
		IsDiscounted: utils.IsTrue(v.Get("isDiscounted")),
		IsFeatured:   utils.IsTrue(v.Get("isFeatured")),
		Allergens:    utils.SplitCSV(v.Get("allergens")),
		Tags:         utils.SplitCSV(v.Get("tags")),
	}

	var err error
	if p.MinPrice, err = utils.ParseFloat(v.Get("minPrice")); err != nil {
		return p, apperrors.Validation("minPrice must be a number")
	}
	if p.MaxPrice, err = utils.ParseFloat(v.Get("maxPrice")); err != nil {
		return p, apperrors.Validation("maxPrice must be a number")
	}
	return p, nil
}
