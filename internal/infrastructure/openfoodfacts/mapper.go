package openfoodfacts

import (
	"strings"

	"github.com/foodcheck/web/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MapToProductRecord converts an upstream product into our domain ProductRecord
func MapToProductRecord(barcode string, p *Product) *domain.ProductRecord {
	return &domain.ProductRecord{
		Barcode:         barcode,
		Name:            valueOr(p.ProductName, domain.NotAvailable),
		Brands:          valueOr(p.Brands, domain.NotAvailable),
		Categories:      categories(p),
		IngredientsText: ingredients(p),
		Allergens:       FormatAllergens(p.AllergensTags),
		NutritionGrade:  NutritionGrade(p.NutritionGradesTags),
		ImageURL:        p.ImageFrontSmallURL,
	}
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

// categories prefers the legacy free-text field over the tag list
func categories(p *Product) string {
	if p.CategoriesOld != "" {
		return p.CategoriesOld
	}
	return strings.Join(p.CategoriesTags, ", ")
}

// ingredients prefers the English text over the generic one
func ingredients(p *Product) string {
	if p.IngredientsTextEN != "" {
		return p.IngredientsTextEN
	}
	if p.IngredientsText != "" {
		return p.IngredientsText
	}
	return domain.IngredientsMissing
}

// FormatAllergens turns tags like "en:soy-beans" into "Soy Beans", joined by ", "
func FormatAllergens(tags []string) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, AllergenName(tag))
	}

	joined := strings.Join(names, ", ")
	if joined == "" {
		return domain.AllergensNoneListed
	}
	return joined
}

// AllergenName strips the language prefix of a tag and title-cases the rest
func AllergenName(tag string) string {
	if idx := strings.LastIndex(tag, ":"); idx >= 0 {
		tag = tag[idx+1:]
	}
	tag = strings.ReplaceAll(tag, "-", " ")
	// Casers keep state; one per call
	return cases.Title(language.Und).String(tag)
}

// NutritionGrade returns the first grade tag upper-cased, or "N/A"
func NutritionGrade(tags []string) string {
	if len(tags) == 0 {
		return domain.NotAvailable
	}
	return strings.ToUpper(tags[0])
}
