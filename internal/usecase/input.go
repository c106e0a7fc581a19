package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/foodcheck/web/internal/domain"
)

// Compiled patterns for input normalization
var (
	multiSpacePattern      = regexp.MustCompile(`\s+`)
	ingredientSeparatorRgx = regexp.MustCompile(`[,;\n]`)
)

// NormalizeBarcode trims surrounding whitespace. No checksum or length
// validation is applied; the product database decides what it knows.
func NormalizeBarcode(barcode string) string {
	return strings.TrimSpace(barcode)
}

// NormalizeQuery trims a free-text query and collapses inner whitespace
func NormalizeQuery(query string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(query, " "))
}

// ParseIngredients splits a comma, semicolon or newline separated list into
// ingredient names. Order and duplicates are kept; blank entries are dropped.
func ParseIngredients(list string) []string {
	parts := ingredientSeparatorRgx.Split(list, -1)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := NormalizeQuery(p); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// RequireBarcode normalizes a barcode and rejects a blank one
func RequireBarcode(barcode string) (string, error) {
	barcode = NormalizeBarcode(barcode)
	if barcode == "" {
		return "", fmt.Errorf("%w: barcode is required", domain.ErrInvalidRequest)
	}
	return barcode, nil
}

// RequireQuery normalizes a search query and rejects a blank one
func RequireQuery(query string) (string, error) {
	query = NormalizeQuery(query)
	if query == "" {
		return "", fmt.Errorf("%w: query parameter q is required", domain.ErrInvalidRequest)
	}
	return query, nil
}
