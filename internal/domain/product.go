package domain

import (
	"fmt"
	"strconv"
)

// Fallback values used when an upstream product omits a field
const (
	NotAvailable        = "N/A"
	IngredientsMissing  = "Not available"
	AllergensNoneListed = "None listed"
)

// ProductRecord is the normalized view of a product found by barcode
type ProductRecord struct {
	Barcode         string `json:"barcode"`
	Name            string `json:"productName"`
	Brands          string `json:"brands"`
	Categories      string `json:"categories"`
	IngredientsText string `json:"ingredientsText"`
	Allergens       string `json:"allergens"`
	NutritionGrade  string `json:"nutritionGrade"` // single uppercase letter or "N/A"
	ImageURL        string `json:"imageUrl,omitempty"`
}

// SearchResultItem is one product exactly as the upstream search returned it
type SearchResultItem map[string]any

// Field returns the named field rendered as a string, or "" when absent or null.
func (i SearchResultItem) Field(key string) string {
	v, ok := i[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Name returns the product name of a search hit
func (i SearchResultItem) Name() string {
	return i.Field("product_name")
}

// Brands returns the brand list of a search hit
func (i SearchResultItem) Brands() string {
	return i.Field("brands")
}

// Barcode returns the product code of a search hit
func (i SearchResultItem) Barcode() string {
	return i.Field("code")
}

// ImageURL returns the small front image of a search hit
func (i SearchResultItem) ImageURL() string {
	return i.Field("image_front_small_url")
}
