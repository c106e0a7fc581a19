package openfoodfacts

import (
	"encoding/json"
	"strconv"
	"strings"
)

// productStatus is the lookup status flag. The API sends it as a number,
// some mirrors as a string; only 1 means the product exists.
type productStatus int

const statusFound productStatus = 1

// UnmarshalJSON accepts numbers, numeric strings and null
func (s *productStatus) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	*s = 0
	switch t := v.(type) {
	case float64:
		if t == 1 {
			*s = statusFound
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n == 1 {
			*s = statusFound
		}
	}
	return nil
}

// productResponse is the envelope of GET /api/v0/product/{barcode}.json
type productResponse struct {
	Status  productStatus `json:"status"`
	Product *Product      `json:"product"`
}

// Product holds the upstream product fields we render.
// Name and Brands are pointers so that an absent field differs from an empty one.
type Product struct {
	ProductName         *string  `json:"product_name"`
	Brands              *string  `json:"brands"`
	CategoriesOld       string   `json:"categories_old"`
	CategoriesTags      []string `json:"categories_tags"`
	IngredientsTextEN   string   `json:"ingredients_text_en"`
	IngredientsText     string   `json:"ingredients_text"`
	AllergensTags       []string `json:"allergens_tags"`
	NutritionGradesTags []string `json:"nutrition_grades_tags"`
	ImageFrontSmallURL  string   `json:"image_front_small_url"`
}

// searchResponse is the envelope of GET /cgi/search.pl?json=1
type searchResponse struct {
	Products []map[string]any `json:"products"`
}
