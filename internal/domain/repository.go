package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ProductRepository is the "products" collection with its nested variants and offers
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	List(ctx context.Context, category string, limit int) ([]Product, error)
	AddVariant(ctx context.Context, productID string, variant *ProductVariant) error
	AddOffers(ctx context.Context, productID, variantID string, offers []SellerOffer) error
}

// UserRepository is the "users" collection
type UserRepository interface {
	Get(ctx context.Context, uid string) (*UserProfile, error)
	// Create stores profile unless one already exists and returns the stored profile
	Create(ctx context.Context, profile *UserProfile) (*UserProfile, error)
	Update(ctx context.Context, uid string, update ProfileUpdate) error
	SetWishlist(ctx context.Context, uid, productID string, add bool) error
}
