package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sustainabuy/backend/internal/domain"
	"github.com/sustainabuy/backend/internal/usecase"
)

const serviceVersion = "1.0.0"

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog  *usecase.CatalogService
	accounts *usecase.AccountService
	logger   zerolog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(catalog *usecase.CatalogService, accounts *usecase.AccountService, logger zerolog.Logger) *Handler {
	return &Handler{
		catalog:  catalog,
		accounts: accounts,
		logger:   logger,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "sustainabuy-backend",
		"version": serviceVersion,
	})
}

// SearchProducts handles GET /products?q=&category=
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.catalog.SearchProducts(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// Recommendations handles GET /products/recommended?category=
func (h *Handler) Recommendations(c *gin.Context) {
	products, err := h.catalog.Recommendations(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /products/:id?variant=
func (h *Handler) GetProduct(c *gin.Context) {
	detail, err := h.catalog.GetProductDetail(c.Request.Context(), c.Param("id"), c.Query("variant"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CompareProducts handles GET /products/compare?ids=a,b
func (h *Handler) CompareProducts(c *gin.Context) {
	comparison, err := h.catalog.CompareProducts(c.Request.Context(), strings.Split(c.Query("ids"), ","))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}

type scanRequest struct {
	Name string `json:"name" binding:"required"`
}

// ScanProduct handles POST /products/scan
func (h *Handler) ScanProduct(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	result, err := h.catalog.ScanProduct(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, result)
}

type variantRequest struct {
	Name      string                 `json:"name" binding:"required"`
	BasePrice float64                `json:"basePrice"`
	Specs     map[string]interface{} `json:"specs"`
}

// AddVariant handles POST /products/:id/variants
func (h *Handler) AddVariant(c *gin.Context) {
	var req variantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant name is required"})
		return
	}

	variant := &domain.ProductVariant{Name: req.Name, BasePrice: req.BasePrice, Specs: req.Specs}
	if err := h.catalog.AddVariant(c.Request.Context(), c.Param("id"), variant); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, variant)
}

// PersistOffers handles POST /products/:id/variants/:variantId/offers
func (h *Handler) PersistOffers(c *gin.Context) {
	offers, err := h.catalog.PersistOffers(c.Request.Context(), c.Param("id"), c.Param("variantId"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offers": offers})
}

// ScoreProduct handles POST /score
func (h *Handler) ScoreProduct(c *gin.Context) {
	var data domain.ProductData
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product data"})
		return
	}
	c.JSON(http.StatusOK, h.catalog.ScoreProduct(c.Request.Context(), data))
}

// ParseIntent handles GET /search/intent?q=
func (h *Handler) ParseIntent(c *gin.Context) {
	query := c.Query("q")
	c.JSON(http.StatusOK, gin.H{
		"normalized": usecase.NormalizeQuery(query),
		"intent":     usecase.ParseSearchIntent(query),
	})
}

type offersRequest struct {
	Brand   string                `json:"brand"`
	Name    string                `json:"name"`
	Variant domain.ProductVariant `json:"variant"`
}

// QuoteOffers handles POST /offers
func (h *Handler) QuoteOffers(c *gin.Context) {
	var req offersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid offer request"})
		return
	}
	subject := domain.OfferSubject{Brand: req.Brand, Name: req.Name}
	c.JSON(http.StatusOK, gin.H{"offers": h.catalog.QuoteOffers(subject, req.Variant)})
}

// EnsureProfile handles POST /users
func (h *Handler) EnsureProfile(c *gin.Context) {
	var identity domain.Identity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid is required"})
		return
	}

	profile, err := h.accounts.EnsureProfile(c.Request.Context(), identity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetProfile handles GET /users/:uid
func (h *Handler) GetProfile(c *gin.Context) {
	profile, err := h.accounts.GetProfile(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PATCH /users/:uid
func (h *Handler) UpdateProfile(c *gin.Context) {
	var update domain.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile update"})
		return
	}

	profile, err := h.accounts.UpdateProfile(c.Request.Context(), c.Param("uid"), update)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// AddToWishlist handles PUT /users/:uid/wishlist/:productId
func (h *Handler) AddToWishlist(c *gin.Context) {
	h.toggleWishlist(c, true)
}

// RemoveFromWishlist handles DELETE /users/:uid/wishlist/:productId
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	h.toggleWishlist(c, false)
}

func (h *Handler) toggleWishlist(c *gin.Context, add bool) {
	err := h.accounts.ToggleWishlist(c.Request.Context(), c.Param("uid"), c.Param("productId"), add)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Wishlist handles GET /users/:uid/wishlist
func (h *Handler) Wishlist(c *gin.Context) {
	products, err := h.accounts.WishlistProducts(c.Request.Context(), c.Param("uid"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// respondError maps domain errors to HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
	case errors.Is(err, domain.ErrStorageFailure):
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("storage failure")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Product database temporarily unavailable"})
	default:
		h.logger.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
