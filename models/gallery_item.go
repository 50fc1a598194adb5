package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryItem is an image shown in the storefront gallery
type GalleryItem struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Title       LocalizedText      `json:"title" bson:"title"`
	Description LocalizedText      `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	Category    LocalizedText      `json:"category" bson:"category"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	Order       int                `json:"order" bson:"order"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

// GalleryItemInput is the create payload
type GalleryItemInput struct {
	Title       BilingualInput `json:"title"`
	Description *LocalizedText `json:"description"`
	Image       string         `json:"image" validate:"required"`
	Category    BilingualInput `json:"category"`
	IsActive    *bool          `json:"isActive"`
	Order       *int           `json:"order"`
}

// Normalize trims the text fields before validation
func (in *GalleryItemInput) Normalize() {
	in.Title.Normalize()
	in.Category.Normalize()
	in.Image = strings.TrimSpace(in.Image)
}

// ToModel builds a new document, applying the schema defaults
func (in *GalleryItemInput) ToModel(now time.Time) *GalleryItem {
	item := &GalleryItem{
		Title:     in.Title.Text(),
		Image:     in.Image,
		Category:  in.Category.Text(),
		IsActive:  true,
		CreatedAt: now,
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.IsActive != nil {
		item.IsActive = *in.IsActive
	}
	if in.Order != nil {
		item.Order = *in.Order
	}
	return item
}

// GalleryItemUpdate is a partial update; nil fields are left untouched.
// The same schema is used for the "updates" payload of the bulk endpoint.
type GalleryItemUpdate struct {
	Title       *BilingualInput `json:"title"`
	Description *LocalizedText  `json:"description"`
	Image       *string         `json:"image" validate:"omitempty,min=1"`
	Category    *BilingualInput `json:"category"`
	IsActive    *bool           `json:"isActive"`
	Order       *int            `json:"order"`
}

// Normalize trims the text fields before validation
func (u *GalleryItemUpdate) Normalize() {
	u.Title.Normalize()
	u.Category.Normalize()
	if u.Image != nil {
		trimmed := strings.TrimSpace(*u.Image)
		u.Image = &trimmed
	}
}

// SetDocument returns the $set document for the supplied fields
func (u *GalleryItemUpdate) SetDocument() bson.M {
	set := bson.M{}
	if u.Title != nil {
		set["title"] = u.Title.Text()
	}
	if u.Description != nil {
		set["description"] = *u.Description
	}
	if u.Image != nil {
		set["image"] = *u.Image
	}
	if u.Category != nil {
		set["category"] = u.Category.Text()
	}
	if u.IsActive != nil {
		set["isActive"] = *u.IsActive
	}
	if u.Order != nil {
		set["order"] = *u.Order
	}
	return set
}

// GalleryStats is the admin dashboard summary for the gallery
type GalleryStats struct {
	TotalItems    int64           `json:"totalItems"`
	ActiveItems   int64           `json:"activeItems"`
	CategoryStats []CategoryCount `json:"categoryStats"`
}
