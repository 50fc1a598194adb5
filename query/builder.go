// Package query turns request parameters into MongoDB filters, sorts and
// page windows. Everything here is pure so handlers and services can share it.
package query

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/HSouheill/coffee_backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
	MaxLimit     int64 = 100

	SearchLimit         int64 = 50
	AdvancedSearchLimit int64 = 100
	SuggestionLimit     int64 = 10
	MinSuggestionLength       = 2
)

// Collection selects the per-entity field names used by the builders
type Collection int

const (
	Menu Collection = iota
	Gallery
)

func (c Collection) titleField() string {
	if c == Gallery {
		return "title"
	}
	return "name"
}

func (c Collection) statusField() string {
	if c == Gallery {
		return "isActive"
	}
	return "isAvailable"
}

func (c Collection) defaultSort() string {
	if c == Gallery {
		return "order"
	}
	return "createdAt"
}

var sortableFields = map[Collection]map[string]bool{
	Menu: {
		"createdAt": true, "updatedAt": true, "price": true, "discountPercentage": true,
		"name.en": true, "name.ar": true, "category.en": true, "category.ar": true,
		"isAvailable": true, "isFeatured": true, "isDiscounted": true,
	},
	Gallery: {
		"order": true, "createdAt": true, "title.en": true, "title.ar": true,
		"category.en": true, "category.ar": true, "isActive": true,
	},
}

// Query is the outcome of a builder: what to match, in which order, which window
type Query struct {
	Filter bson.M
	Sort   bson.D
	Skip   int64
	Limit  int64
}

// ListParams are the admin list parameters
type ListParams struct {
	Page      int64
	Limit     int64
	Search    string
	Category  string
	SortBy    string
	SortOrder string
}

// AdminList builds the paginated admin listing. Page and limit are clamped,
// sortBy falls back to the collection default when it is not sortable.
func AdminList(coll Collection, p ListParams) Query {
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	// keeps (page-1)*limit inside int64
	if page > math.MaxInt64/limit {
		page = math.MaxInt64 / limit
	}

	filter := bson.M{}
	if s := strings.TrimSpace(p.Search); s != "" {
		re := containsRegex(s)
		title := coll.titleField()
		filter["$or"] = bson.A{
			bson.M{title + ".en": re},
			bson.M{title + ".ar": re},
			bson.M{"description.en": re},
			bson.M{"description.ar": re},
		}
	}
	if c := strings.TrimSpace(p.Category); c != "" {
		filter["category.en"] = c
	}

	sortBy := p.SortBy
	if !sortableFields[coll][sortBy] {
		sortBy = coll.defaultSort()
	}
	order := -1
	if p.SortOrder == "asc" {
		order = 1
	}

	return Query{
		Filter: filter,
		Sort:   bson.D{{Key: sortBy, Value: order}},
		Skip:   (page - 1) * limit,
		Limit:  limit,
	}
}

// PublicList matches visible documents, optionally in one category of the given language
func PublicList(coll Collection, category string, lang models.Language) Query {
	filter := bson.M{coll.statusField(): true}
	if c := strings.TrimSpace(category); c != "" {
		filter["category."+field(lang)] = c
	}
	return Query{
		Filter: filter,
		Sort:   bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}},
	}
}

// Discounted lists visible discounted menu items, largest discount first
func Discounted() Query {
	return Query{
		Filter: bson.M{"isAvailable": true, "isDiscounted": true},
		Sort:   bson.D{{Key: "discountPercentage", Value: -1}},
	}
}

// Featured lists visible featured menu items, newest first
func Featured() Query {
	return Query{
		Filter: bson.M{"isAvailable": true, "isFeatured": true},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
	}
}

// SearchParams are the storefront search parameters
type SearchParams struct {
	Text         string
	Category     string
	Language     models.Language
	MinPrice     *float64
	MaxPrice     *float64
	IsDiscounted bool
	IsFeatured   bool
	Allergens    []string
	Tags         []string
}

// Search builds the basic menu search
func Search(p SearchParams) Query {
	return Query{
		Filter: searchFilter(p),
		Sort:   bson.D{{Key: "isFeatured", Value: -1}, {Key: "createdAt", Value: -1}},
		Limit:  SearchLimit,
	}
}

// AdvancedSearch adds flag, allergen and tag filters on top of Search.
// The text and allergen alternatives are both required, so they are joined with $and.
func AdvancedSearch(p SearchParams) Query {
	filter := searchFilter(p)
	if p.IsDiscounted {
		filter["isDiscounted"] = true
	}
	if p.IsFeatured {
		filter["isFeatured"] = true
	}

	var clauses bson.A
	if or, ok := filter["$or"]; ok {
		delete(filter, "$or")
		clauses = append(clauses, bson.M{"$or": or})
	}
	if allergens := nonEmpty(p.Allergens); len(allergens) > 0 {
		key := "allergens." + field(p.Language)
		alts := make(bson.A, 0, len(allergens))
		for _, a := range allergens {
			alts = append(alts, bson.M{key: containsRegex(a)})
		}
		clauses = append(clauses, bson.M{"$or": alts})
	}
	switch len(clauses) {
	case 0:
	case 1:
		filter["$or"] = clauses[0].(bson.M)["$or"]
	default:
		filter["$and"] = clauses
	}

	if tags := nonEmpty(p.Tags); len(tags) > 0 {
		filter["tags"] = bson.M{"$in": tags}
	}

	return Query{
		Filter: filter,
		Sort: bson.D{
			{Key: "isFeatured", Value: -1},
			{Key: "discountPercentage", Value: -1},
			{Key: "createdAt", Value: -1},
		},
		Limit: AdvancedSearchLimit,
	}
}

// Suggestions builds the autocomplete query. ok is false when q is too short to search.
func Suggestions(q string, lang models.Language) (Query, bool) {
	q = strings.TrimSpace(q)
	if utf8.RuneCountInString(q) < MinSuggestionLength {
		return Query{}, false
	}
	re := containsRegex(q)
	return Query{
		Filter: bson.M{
			"isAvailable": true,
			"$or": bson.A{
				bson.M{"name." + field(lang): re},
				bson.M{"category." + field(lang): re},
				bson.M{"tags": re},
			},
		},
		Limit: SuggestionLimit,
	}, true
}

// PageCount is ceil(total/limit)
func PageCount(total, limit int64) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

func searchFilter(p SearchParams) bson.M {
	filter := bson.M{"isAvailable": true}
	if q := strings.TrimSpace(p.Text); q != "" {
		re := containsRegex(q)
		filter["$or"] = bson.A{
			bson.M{"name.en": re},
			bson.M{"name.ar": re},
			bson.M{"description.en": re},
			bson.M{"description.ar": re},
			bson.M{"tags": re},
		}
	}
	if c := strings.TrimSpace(p.Category); c != "" {
		filter["category."+field(p.Language)] = c
	}
	price := bson.M{}
	if p.MinPrice != nil {
		price["$gte"] = *p.MinPrice
	}
	if p.MaxPrice != nil {
		price["$lte"] = *p.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	return filter
}

// field is the sub-document key for lang; unknown languages read English
func field(lang models.Language) string {
	return string(models.ParseLanguage(string(lang)))
}

// containsRegex matches s literally anywhere in the field, ignoring case
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
