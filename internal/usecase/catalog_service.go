package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustainabuy/backend/internal/domain"
)

const (
	defaultProductLimit        = 50
	defaultRecommendationCount = 4
	defaultVariantID           = "default"
	defaultVariantName         = "Standard Edition"
	allCategories              = "All"
	uncategorized              = "Uncategorized"
	scanCompleteMessage        = "Analysis complete!"
	maxCompareProducts         = 8
)

// CatalogServiceConfig holds configuration for the catalog service
type CatalogServiceConfig struct {
	CacheTTL            time.Duration
	ProductLimit        int
	RecommendationCount int
}

// CatalogService serves product search, detail, offers and the product scanner
type CatalogService struct {
	products            domain.ProductRepository
	cache               domain.CacheRepository
	logger              zerolog.Logger
	cacheTTL            time.Duration
	productLimit        int
	recommendationCount int

	// mockPrice prices products the scanner creates
	mockPrice func() float64
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(
	products domain.ProductRepository,
	cache domain.CacheRepository,
	logger zerolog.Logger,
	config CatalogServiceConfig,
) *CatalogService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	limit := config.ProductLimit
	if limit <= 0 {
		limit = defaultProductLimit
	}

	recommendations := config.RecommendationCount
	if recommendations <= 0 {
		recommendations = defaultRecommendationCount
	}

	return &CatalogService{
		products:            products,
		cache:               cache,
		logger:              logger.With().Str("component", "catalog").Logger(),
		cacheTTL:            cacheTTL,
		productLimit:        limit,
		recommendationCount: recommendations,
		mockPrice: func() float64 {
			return float64(rand.IntN(100) + 20)
		},
	}
}

// SearchProducts lists a category and keeps the products that match the search intent.
// An empty query keeps everything in the category.
func (s *CatalogService) SearchProducts(ctx context.Context, query, category string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, category, s.productLimit)
	if err != nil {
		return nil, err
	}

	intent := ParseSearchIntent(query)

	matched := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesSearch(&p, query, category, intent) {
			matched = append(matched, p)
		}
	}

	s.logger.Debug().
		Str("query", query).
		Str("category", category).
		Str("intent_brand", intent.Brand).
		Str("intent_category", intent.Category).
		Int("candidates", len(products)).
		Int("matched", len(matched)).
		Msg("product search")

	return matched, nil
}

// matchesSearch applies category, then brand, category and keyword matching against the intent
func matchesSearch(p *domain.Product, query, category string, intent domain.SearchIntent) bool {
	if !isAllCategories(category) && p.Category != category {
		return false
	}

	if query == "" {
		return true
	}

	name := NormalizeQuery(p.Name)
	brand := NormalizeQuery(p.Brand)

	if intent.Brand != "" {
		intentBrand := NormalizeQuery(intent.Brand)
		if strings.Contains(brand, intentBrand) || strings.Contains(intentBrand, brand) {
			return true
		}
	}

	if intent.Category != "" && p.Category == intent.Category {
		return true
	}

	for _, keyword := range intent.Keywords {
		if strings.Contains(name, keyword) || strings.Contains(brand, keyword) {
			return true
		}
	}

	return false
}

func isAllCategories(category string) bool {
	return category == "" || category == allCategories
}

// Recommendations returns verified products first, then by descending score
func (s *CatalogService) Recommendations(ctx context.Context, category string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, category, s.productLimit)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(products, func(i, j int) bool {
		a, b := products[i], products[j]
		if a.IsVerified != b.IsVerified {
			return a.IsVerified
		}
		return a.Score > b.Score
	})

	if len(products) > s.recommendationCount {
		products = products[:s.recommendationCount]
	}
	return products, nil
}

// GetProductDetail loads a product and quotes the selected variant, cheapest offer first.
// With no variantID the first variant is used, or a default edition priced at the product price.
func (s *CatalogService) GetProductDetail(ctx context.Context, id, variantID string) (*domain.ProductDetail, error) {
	if id == "" {
		return nil, domain.ErrInvalidRequest
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	variant, err := selectVariant(product, variantID)
	if err != nil {
		return nil, err
	}

	offers := storedOffersFor(product.Offers, variant.ID)
	if len(offers) == 0 {
		offers = GenerateMetaOffers(product.OfferSubject(), variant)
	}
	SortOffersByPrice(offers)

	return &domain.ProductDetail{
		Product:         product,
		SelectedVariant: variant,
		Offers:          offers,
	}, nil
}

func selectVariant(product *domain.Product, variantID string) (domain.ProductVariant, error) {
	if variantID != "" {
		for _, v := range product.Variants {
			if v.ID == variantID {
				return v, nil
			}
		}
		if variantID != defaultVariantID {
			return domain.ProductVariant{}, fmt.Errorf("%w: unknown variant %q", domain.ErrInvalidRequest, variantID)
		}
	}

	if len(product.Variants) > 0 {
		return product.Variants[0], nil
	}

	return domain.ProductVariant{
		ID:        defaultVariantID,
		GroupID:   product.ID,
		Name:      defaultVariantName,
		BasePrice: product.Price,
		Specs:     map[string]interface{}{},
	}, nil
}

func storedOffersFor(offers []domain.SellerOffer, variantID string) []domain.SellerOffer {
	var out []domain.SellerOffer
	for _, o := range offers {
		if o.VariantID == variantID {
			out = append(out, o)
		}
	}
	return out
}

// CompareProducts loads the requested products for a side-by-side view, in request order.
// Blank and repeated ids are dropped; ids with no product are reported as missing.
func (s *CatalogService) CompareProducts(ctx context.Context, ids []string) (*domain.ProductComparison, error) {
	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one product id is required", domain.ErrInvalidRequest)
	}
	if len(ids) > maxCompareProducts {
		return nil, fmt.Errorf("%w: at most %d products can be compared", domain.ErrInvalidRequest, maxCompareProducts)
	}

	products, missing, err := loadProducts(ctx, ids, s.getProduct)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Strs("ids", ids).
		Int("found", len(products)).
		Int("missing", len(missing)).
		Msg("product comparison")

	return &domain.ProductComparison{Products: products, Missing: missing}, nil
}

func cleanIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SortOffersByPrice orders offers by ascending price, keeping seller order on ties
func SortOffersByPrice(offers []domain.SellerOffer) {
	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Price < offers[j].Price
	})
}

// QuoteOffers generates offers for an ad-hoc subject and variant, cheapest first
func (s *CatalogService) QuoteOffers(subject domain.OfferSubject, variant domain.ProductVariant) []domain.SellerOffer {
	offers := GenerateMetaOffers(subject, variant)
	SortOffersByPrice(offers)
	return offers
}

// AddVariant attaches a new variant to a stored product
func (s *CatalogService) AddVariant(ctx context.Context, productID string, variant *domain.ProductVariant) error {
	if productID == "" || variant == nil || variant.Name == "" {
		return domain.ErrInvalidRequest
	}
	if _, err := s.getProduct(ctx, productID); err != nil {
		return err
	}

	variant.GroupID = productID
	if err := s.products.AddVariant(ctx, productID, variant); err != nil {
		return err
	}

	s.invalidate(ctx, productID)
	return nil
}

// PersistOffers generates offers for a stored variant and saves them with the product
func (s *CatalogService) PersistOffers(ctx context.Context, productID, variantID string) ([]domain.SellerOffer, error) {
	product, err := s.getProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	variant, err := selectVariant(product, variantID)
	if err != nil {
		return nil, err
	}
	if variant.ID == defaultVariantID {
		return nil, fmt.Errorf("%w: product has no stored variants", domain.ErrInvalidRequest)
	}

	offers := GenerateMetaOffers(product.OfferSubject(), variant)
	if err := s.products.AddOffers(ctx, productID, variant.ID, offers); err != nil {
		return nil, err
	}

	s.invalidate(ctx, productID)
	s.logger.Info().
		Str("product_id", productID).
		Str("variant_id", variant.ID).
		Int("offers", len(offers)).
		Msg("offers stored")
	return offers, nil
}

// ScoreProduct scores ad-hoc product data
func (s *CatalogService) ScoreProduct(ctx context.Context, data domain.ProductData) *domain.SustainabilityScore {
	score := CalculateSustainabilityScore(data)
	s.logger.Debug().
		Str("brand", data.Brand).
		Int("total", score.Total).
		Msg("product scored")
	return score
}

// ScanProduct finds a product by exact name or creates a scored one from mock external data
func (s *CatalogService) ScanProduct(ctx context.Context, name string) (*domain.ScanResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidRequest
	}

	existing, err := s.products.FindByName(ctx, name)
	if err == nil {
		return &domain.ScanResult{Product: existing}, nil
	}
	if !errors.Is(err, domain.ErrProductNotFound) {
		return nil, err
	}

	// No real metadata source yet; this stands in for an external lookup
	data := domain.ProductData{
		Name:           name,
		Brand:          "Generic Sustainable Brand",
		Description:    fmt.Sprintf("A sustainable version of %s found by our AI scanner.", name),
		Materials:      []string{"Recycled Polyester", "Organic Cotton"},
		Certifications: []string{"Fair Trade"},
		Origin:         "Portugal",
	}

	score := CalculateSustainabilityScore(data)
	image := "https://source.unsplash.com/random/800x800?sustainable," + url.QueryEscape(name)

	product := &domain.Product{
		ProductData: data,
		Category:    uncategorized,
		Price:       s.mockPrice(),
		Image:       image,
		Thumbnail:   image,
		Score:       score.Total,
		BaseScore:   score.Total,
		Breakdown:   score.Breakdown,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", product.ID).
		Str("name", name).
		Int("score", score.Total).
		Msg("scanned product created")

	steps := append(score.Steps, domain.ScanStep{Message: scanCompleteMessage, Status: domain.StepComplete})
	return &domain.ScanResult{Product: product, Created: true, Steps: steps}, nil
}

// getProduct reads a product document, trying the cache first
func (s *CatalogService) getProduct(ctx context.Context, id string) (*domain.Product, error) {
	key := productCacheKey(id)

	if raw, err := s.cache.Get(ctx, key); err == nil {
		var cached domain.Product
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		s.logger.Warn().Str("key", key).Msg("dropping undecodable cache entry")
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(product); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			// Log but don't fail if caching fails
			s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}

	return product, nil
}

func (s *CatalogService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.logger.Warn().Err(err).Str("product_id", id).Msg("cache invalidation failed")
	}
}

// productCacheKey format: "product:{id}"
func productCacheKey(id string) string {
	return "product:" + id
}
