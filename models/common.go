package models

import (
	"encoding/json"
	"strings"
)

// Language selects one side of a bilingual field
type Language string

const (
	LanguageEN Language = "en"
	LanguageAR Language = "ar"
)

// ParseLanguage maps a query parameter to a supported language, falling back to English
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageAR:
		return LanguageAR
	default:
		return LanguageEN
	}
}

// LocalizedText is a string stored in both English and Arabic
type LocalizedText struct {
	EN string `json:"en" bson:"en"`
	AR string `json:"ar" bson:"ar"`
}

// In returns the value for the given language
func (t LocalizedText) In(lang Language) string {
	if lang == LanguageAR {
		return t.AR
	}
	return t.EN
}

// BilingualInput is a localized pair where both languages are mandatory
type BilingualInput struct {
	EN string `json:"en" validate:"required"`
	AR string `json:"ar" validate:"required"`
}

// Normalize trims both values
func (b *BilingualInput) Normalize() {
	if b == nil {
		return
	}
	b.EN = strings.TrimSpace(b.EN)
	b.AR = strings.TrimSpace(b.AR)
}

// Text converts the input to its stored form
func (b BilingualInput) Text() LocalizedText {
	return LocalizedText{EN: b.EN, AR: b.AR}
}

// LocalizedList is a list of strings stored per language
type LocalizedList struct {
	EN []string `json:"en" bson:"en"`
	AR []string `json:"ar" bson:"ar"`
}

// Response is the envelope used by the admin API
type Response struct {
	Status     int         `json:"status"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of an admin list
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// CategoryCount is one row of the per-category statistics
type CategoryCount struct {
	Category string `json:"_id" bson:"_id"`
	Count    int64  `json:"count" bson:"count"`
}

// BulkRequest is the body of the bulk endpoints
type BulkRequest struct {
	Action  string          `json:"action"`
	IDs     []string        `json:"ids"`
	Updates json.RawMessage `json:"updates,omitempty"`
}

// BulkResult reports how many documents a bulk action touched
type BulkResult struct {
	Action        string `json:"action"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
	DeletedCount  int64  `json:"deletedCount"`
}

// ReorderRequest carries the desired gallery sequence
type ReorderRequest struct {
	Items []ReorderItem `json:"items"`
}

type ReorderItem struct {
	ID string `json:"id"`
}
