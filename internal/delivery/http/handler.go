package http

import (
	"context"
	"net/http"
	"time"

	"github.com/foodcheck/web/internal/domain"
	"github.com/foodcheck/web/internal/usecase"
	"github.com/foodcheck/web/internal/version"
	"github.com/gin-gonic/gin"
)

// ProductFinder is the product operation set the handlers need
type ProductFinder interface {
	Lookup(ctx context.Context, barcode string) domain.LookupOutcome
	Search(ctx context.Context, query string) domain.SearchOutcome
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	products ProductFinder
	now      func() time.Time
}

// NewHandler creates a new HTTP handler. A nil clock defaults to time.Now.
func NewHandler(products ProductFinder, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		products: products,
		now:      now,
	}
}

// HealthCheck returns the health status of the service
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "foodcheck",
		"version": version.Version,
	})
}

// ShowIndex renders the empty lookup/search form
func (h *Handler) ShowIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.indexView())
}

// SubmitIndex handles the lookup/search form. Lookup and search run
// independently; an outcome of one never prevents the other.
func (h *Handler) SubmitIndex(c *gin.Context) {
	ctx := c.Request.Context()
	view := h.indexView()
	view.Barcode = usecase.NormalizeBarcode(c.PostForm("barcode"))
	view.Query = usecase.NormalizeQuery(c.PostForm("query"))

	if view.Barcode != "" {
		outcome := h.products.Lookup(ctx, view.Barcode)
		view.Lookup = &outcome
	}

	if view.Query != "" {
		outcome := h.products.Search(ctx, view.Query)
		view.Search = &outcome
	}

	c.HTML(http.StatusOK, "index.html", view)
}

// ShowAbout renders the about page
func (h *Handler) ShowAbout(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", PageView{Title: "About"})
}

// ShowContact renders the contact page
func (h *Handler) ShowContact(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", PageView{Title: "Contact", CurrentYear: h.now().Year()})
}

// ShowHelp renders the help page
func (h *Handler) ShowHelp(c *gin.Context) {
	c.HTML(http.StatusOK, "help.html", PageView{Title: "Help", CurrentYear: h.now().Year()})
}

// GetProduct handles barcode lookups on the JSON API
func (h *Handler) GetProduct(c *gin.Context) {
	barcode, err := usecase.RequireBarcode(c.Param("barcode"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.products.Lookup(c.Request.Context(), barcode)
	switch outcome.Status {
	case domain.LookupFound:
		c.JSON(http.StatusOK, outcome.Product)
	case domain.LookupUnavailable:
		c.JSON(http.StatusBadGateway, gin.H{"error": "product database temporarily unavailable"})
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "barcode": barcode})
	}
}

// SearchProducts handles free-text searches on the JSON API
func (h *Handler) SearchProducts(c *gin.Context) {
	query, err := usecase.RequireQuery(c.Query("q"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome := h.products.Search(c.Request.Context(), query)
	if outcome.Failed() {
		c.JSON(http.StatusBadGateway, gin.H{"error": "product search temporarily unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"count":    len(outcome.Products),
		"products": outcome.Products,
	})
}

func (h *Handler) indexView() IndexView {
	return IndexView{
		Title:       "Product lookup",
		CurrentYear: h.now().Year(),
	}
}
