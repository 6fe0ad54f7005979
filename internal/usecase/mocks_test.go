package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sustainabuy/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu        sync.Mutex
	data      map[string][]byte
	getError  error
	setError  error
	getCalls  int
	setCalls  int
	deletions []string
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletions = append(m.deletions, key)
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Close() error {
	return nil
}

// MockProductRepository keeps products in insertion order
type MockProductRepository struct {
	mu        sync.Mutex
	products  []*domain.Product
	listError error
	getCalls  int
	nextID    int
}

func NewMockProductRepository(products ...domain.Product) *MockProductRepository {
	m := &MockProductRepository{}
	for i := range products {
		p := products[i]
		m.products = append(m.products, &p)
	}
	return m
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if product.ID == "" {
		m.nextID++
		product.ID = fmt.Sprintf("generated-%d", m.nextID)
	}
	stored := *product
	m.products = append(m.products, &stored)
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.getCalls++
	for _, p := range m.products {
		if p.ID == id {
			cp := *p
			cp.Variants = slices.Clone(p.Variants)
			cp.Offers = slices.Clone(p.Offers)
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductRepository) List(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listError != nil {
		return nil, m.listError
	}
	out := []domain.Product{}
	for _, p := range m.products {
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *MockProductRepository) AddVariant(ctx context.Context, productID string, variant *domain.ProductVariant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == productID {
			if variant.ID == "" {
				variant.ID = fmt.Sprintf("%s-v%d", productID, len(p.Variants)+1)
			}
			p.Variants = append(p.Variants, *variant)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (m *MockProductRepository) AddOffers(ctx context.Context, productID, variantID string, offers []domain.SellerOffer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == productID {
			p.Offers = slices.DeleteFunc(p.Offers, func(o domain.SellerOffer) bool {
				return o.VariantID == variantID
			})
			p.Offers = append(p.Offers, offers...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

// MockUserRepository keeps profiles in a map
type MockUserRepository struct {
	profiles map[string]*domain.UserProfile
	creates  int
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{profiles: make(map[string]*domain.UserProfile)}
}

func (m *MockUserRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	p, ok := m.profiles[uid]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *p
	cp.Wishlist = slices.Clone(p.Wishlist)
	return &cp, nil
}

func (m *MockUserRepository) Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if _, ok := m.profiles[profile.UID]; !ok {
		m.creates++
		stored := *profile
		m.profiles[profile.UID] = &stored
	}
	return m.Get(ctx, profile.UID)
}

func (m *MockUserRepository) Update(ctx context.Context, uid string, update domain.ProfileUpdate) error {
	p, ok := m.profiles[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	update.Apply(p)
	return nil
}

func (m *MockUserRepository) SetWishlist(ctx context.Context, uid, productID string, add bool) error {
	p, ok := m.profiles[uid]
	if !ok {
		return domain.ErrUserNotFound
	}
	if add {
		if !slices.Contains(p.Wishlist, productID) {
			p.Wishlist = append(p.Wishlist, productID)
		}
		return nil
	}
	p.Wishlist = slices.DeleteFunc(p.Wishlist, func(id string) bool { return id == productID })
	return nil
}
