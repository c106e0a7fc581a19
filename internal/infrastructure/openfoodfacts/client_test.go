package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodcheck/web/config"
	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/infrastructure/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string, m *metrics.Metrics) *Client {
	return NewClient(config.UpstreamConfig{BaseURL: baseURL, Timeout: 2 * time.Second}, m, nil)
}

func upstreamCount(m *metrics.Metrics, outcome string) float64 {
	return testutil.ToFloat64(m.UpstreamRequests().WithLabelValues(UpstreamName, outcome))
}

const foundBody = `{
	"code": "3017620422003",
	"status": 1,
	"status_verbose": "product found",
	"product": {
		"product_name": "Nutella",
		"brands": "Ferrero",
		"categories_tags": ["en:spreads", "en:sweet-spreads"],
		"ingredients_text": "Sucre, huile de palme",
		"allergens_tags": ["en:milk", "en:nuts", "en:soybeans"],
		"nutrition_grades_tags": ["e"],
		"image_front_small_url": "https://images.example.com/front.200.jpg"
	}
}`

func TestLookupProduct_Found(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/3017620422003.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(foundBody))
	}))
	defer server.Close()

	m := metrics.New()
	client := newTestClient(server.URL, m)

	result, err := client.LookupProduct(context.Background(), "3017620422003")

	require.NoError(t, err)
	assert.Equal(t, "3017620422003", result.Barcode)
	assert.Equal(t, "Nutella", result.Name)
	assert.Equal(t, "Ferrero", result.Brands)
	assert.Equal(t, "en:spreads, en:sweet-spreads", result.Categories)
	assert.Equal(t, "Sucre, huile de palme", result.IngredientsText)
	assert.Equal(t, "Milk, Nuts, Soybeans", result.Allergens)
	assert.Equal(t, "E", result.NutritionGrade)
	assert.Equal(t, "https://images.example.com/front.200.jpg", result.ImageURL)
	assert.Equal(t, 1.0, upstreamCount(m, metrics.OutcomeOK))
}

func TestLookupProduct_StatusVariants(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		body      string
		wantFound bool
	}{
		{"status zero", http.StatusOK, `{"status":0,"status_verbose":"product not found"}`, false},
		{"status missing", http.StatusOK, `{"product":{"product_name":"Ghost"}}`, false},
		{"status zero with 404", http.StatusNotFound, `{"status":0}`, false},
		{"status two", http.StatusOK, `{"status":2,"product":{"product_name":"Odd"}}`, false},
		{"status string one", http.StatusOK, `{"status":"1","product":{"product_name":"Str"}}`, true},
		{"status null", http.StatusOK, `{"status":null,"product":{}}`, false},
		{"found without product", http.StatusOK, `{"status":1}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := newTestClient(server.URL, nil)

			result, err := client.LookupProduct(context.Background(), "123")

			if tt.wantFound {
				require.NoError(t, err)
				assert.NotNil(t, result)
				return
			}
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrProductNotFound)
		})
	}
}

func TestLookupProduct_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	m := metrics.New()
	client := newTestClient(server.URL, m)

	result, err := client.LookupProduct(context.Background(), "123")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
	assert.Contains(t, err.Error(), "failed to decode response")
	assert.Equal(t, 1.0, upstreamCount(m, metrics.OutcomeBadResponse))
}

func TestLookupProduct_EscapesBarcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v0/product/12%2F34.json", r.URL.EscapedPath())
		w.Write([]byte(`{"status":0}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	_, err := client.LookupProduct(context.Background(), "12/34")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLookupProduct_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	m := metrics.New()
	client := newTestClient(baseURL, m)

	result, err := client.LookupProduct(context.Background(), "123")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Equal(t, 1.0, upstreamCount(m, metrics.OutcomeError))
}

func TestSearchProducts_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cgi/search.pl", r.URL.Path)
		assert.Equal(t, "dark chocolate & nuts", r.URL.Query().Get("search_terms"))
		assert.Equal(t, "1", r.URL.Query().Get("json"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2,"products":[
			{"code":"1","product_name":"Dark 70%","brands":"Lindt","nutriments":{"fat":40.5}},
			{"code":"2","product_name":"Nut bar"}
		]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	result, err := client.SearchProducts(context.Background(), "dark chocolate & nuts")

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Dark 70%", result[0]["product_name"])
	assert.Equal(t, "Lindt", result[0].Brands())
	assert.Equal(t, map[string]any{"fat": 40.5}, result[0]["nutriments"])
	assert.Equal(t, "Nut bar", result[1].Name())
}

func TestSearchProducts_MissingProductsKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	result, err := client.SearchProducts(context.Background(), "nothing")

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestSearchProducts_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"products":[{"code":"1"}]}`))
	}))
	defer server.Close()

	m := metrics.New()
	client := newTestClient(server.URL, m)

	result, err := client.SearchProducts(context.Background(), "milk")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstreamStatus)
	assert.Equal(t, 1.0, upstreamCount(m, metrics.OutcomeBadStatus))
}

func TestSearchProducts_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)

	result, err := client.SearchProducts(context.Background(), "milk")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

func TestSearchProducts_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	result, err := client.SearchProducts(ctx, "timeout-test")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}
