package models

import (
	"strings"
	"time"

	"github.com/HSouheill/coffee_backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionalInfo per serving
type NutritionalInfo struct {
	Calories float64 `json:"calories" bson:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" bson:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" bson:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" bson:"fat" validate:"gte=0"`
}

// MenuItem is a product on the coffee shop menu
type MenuItem struct {
	ID                 primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name               LocalizedText      `json:"name" bson:"name"`
	Description        LocalizedText      `json:"description" bson:"description"`
	Category           LocalizedText      `json:"category" bson:"category"`
	Price              float64            `json:"price" bson:"price"`
	OriginalPrice      *float64           `json:"originalPrice" bson:"originalPrice"`
	Image              string             `json:"image" bson:"image"`
	IsDiscounted       bool               `json:"isDiscounted" bson:"isDiscounted"`
	DiscountPercentage float64            `json:"discountPercentage" bson:"discountPercentage"`
	Ingredients        LocalizedList      `json:"ingredients" bson:"ingredients"`
	Allergens          LocalizedList      `json:"allergens" bson:"allergens"`
	NutritionalInfo    *NutritionalInfo   `json:"nutritionalInfo,omitempty" bson:"nutritionalInfo,omitempty"`
	IsAvailable        bool               `json:"isAvailable" bson:"isAvailable"`
	IsFeatured         bool               `json:"isFeatured" bson:"isFeatured"`
	Tags               []string           `json:"tags" bson:"tags"`
	CreatedAt          time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// MenuItemInput is the create payload
type MenuItemInput struct {
	Name               BilingualInput   `json:"name"`
	Description        BilingualInput   `json:"description"`
	Category           BilingualInput   `json:"category"`
	Price              *float64         `json:"price" validate:"required,gt=0"`
	OriginalPrice      *float64         `json:"originalPrice" validate:"omitempty,gt=0"`
	Image              string           `json:"image" validate:"required"`
	IsDiscounted       *bool            `json:"isDiscounted"`
	DiscountPercentage *float64         `json:"discountPercentage" validate:"omitempty,min=0,max=100"`
	Ingredients        *LocalizedList   `json:"ingredients"`
	Allergens          *LocalizedList   `json:"allergens"`
	NutritionalInfo    *NutritionalInfo `json:"nutritionalInfo"`
	IsAvailable        *bool            `json:"isAvailable"`
	IsFeatured         *bool            `json:"isFeatured"`
	Tags               []string         `json:"tags"`
}

// Normalize trims the text fields before validation
func (in *MenuItemInput) Normalize() {
	in.Name.Normalize()
	in.Description.Normalize()
	in.Category.Normalize()
	in.Image = strings.TrimSpace(in.Image)
	in.Tags = normalizeTags(in.Tags)
}

// ToModel builds a new document, applying the schema defaults
func (in *MenuItemInput) ToModel(now time.Time) *MenuItem {
	item := &MenuItem{
		Name:          in.Name.Text(),
		Description:   in.Description.Text(),
		Category:      in.Category.Text(),
		Price:         *in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         in.Image,
		IsAvailable:   true,
		Tags:          in.Tags,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	if in.IsDiscounted != nil {
		item.IsDiscounted = *in.IsDiscounted
	}
	if in.DiscountPercentage != nil {
		item.DiscountPercentage = *in.DiscountPercentage
	}
	if in.Ingredients != nil {
		item.Ingredients = *in.Ingredients
	}
	if in.Allergens != nil {
		item.Allergens = *in.Allergens
	}
	if in.NutritionalInfo != nil {
		info := *in.NutritionalInfo
		item.NutritionalInfo = &info
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if in.IsFeatured != nil {
		item.IsFeatured = *in.IsFeatured
	}
	return item
}

// MenuItemUpdate is a partial update; nil fields are left untouched.
// The same schema is used for the "updates" payload of the bulk endpoint.
type MenuItemUpdate struct {
	Name               *BilingualInput  `json:"name"`
	Description        *BilingualInput  `json:"description"`
	Category           *BilingualInput  `json:"category"`
	Price              *float64         `json:"price" validate:"omitempty,gt=0"`
	OriginalPrice      *float64         `json:"originalPrice" validate:"omitempty,gt=0"`
	Image              *string          `json:"image" validate:"omitempty,min=1"`
	IsDiscounted       *bool            `json:"isDiscounted"`
	DiscountPercentage *float64         `json:"discountPercentage" validate:"omitempty,min=0,max=100"`
	Ingredients        *LocalizedList   `json:"ingredients"`
	Allergens          *LocalizedList   `json:"allergens"`
	NutritionalInfo    *NutritionalInfo `json:"nutritionalInfo"`
	IsAvailable        *bool            `json:"isAvailable"`
	IsFeatured         *bool            `json:"isFeatured"`
	Tags               []string         `json:"tags"`
}

// Normalize trims the text fields before validation
func (u *MenuItemUpdate) Normalize() {
	u.Name.Normalize()
	u.Description.Normalize()
	u.Category.Normalize()
	if u.Image != nil {
		trimmed := strings.TrimSpace(*u.Image)
		u.Image = &trimmed
	}
	if u.Tags != nil {
		u.Tags = normalizeTags(u.Tags)
	}
}

// SetDocument returns the $set document for the supplied fields.
// updatedAt is stamped only when at least one field is present.
func (u *MenuItemUpdate) SetDocument(now time.Time) bson.M {
	set := bson.M{}
	if u.Name != nil {
		set["name"] = u.Name.Text()
	}
	if u.Description != nil {
		set["description"] = u.Description.Text()
	}
	if u.Category != nil {
		set["category"] = u.Category.Text()
	}
	if u.Price != nil {
		set["price"] = *u.Price
	}
	if u.OriginalPrice != nil {
		set["originalPrice"] = *u.OriginalPrice
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.IsDiscounted != nil {
		set["isDiscounted"] = *u.IsDiscounted
	}
	if u.DiscountPercentage != nil {
		set["discountPercentage"] = *u.DiscountPercentage
	}
	if u.Ingredients != nil {
		set["ingredients"] = *u.Ingredients
	}
	if u.Allergens != nil {
		set["allergens"] = *u.Allergens
	}
	if u.NutritionalInfo != nil {
		set["nutritionalInfo"] = *u.NutritionalInfo
	}
	if u.IsAvailable != nil {
		set["isAvailable"] = *u.IsAvailable
	}
	if u.IsFeatured != nil {
		set["isFeatured"] = *u.IsFeatured
	}
	if u.Tags != nil {
		set["tags"] = u.Tags
	}
	if len(set) > 0 {
		set["updatedAt"] = now
	}
	return set
}

// MenuStats is the admin dashboard summary for the menu
type MenuStats struct {
	TotalItems      int64           `json:"totalItems"`
	AvailableItems  int64           `json:"availableItems"`
	FeaturedItems   int64           `json:"featuredItems"`
	DiscountedItems int64           `json:"discountedItems"`
	CategoryStats   []CategoryCount `json:"categoryStats"`
	PriceStats      PriceStats      `json:"priceStats"`
}

// PriceStats aggregates menu prices
type PriceStats struct {
	AvgPrice float64 `json:"avgPrice" bson:"avgPrice"`
	MinPrice float64 `json:"minPrice" bson:"minPrice"`
	MaxPrice float64 `json:"maxPrice" bson:"maxPrice"`
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range utils.SanitizeStringArray(tags) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
