package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/sustainabuy/backend/internal/domain"
)

// AccountService manages user profiles and wishlists
type AccountService struct {
	users    domain.UserRepository
	products domain.ProductRepository
	logger   zerolog.Logger
}

// NewAccountService creates a new account service
func NewAccountService(users domain.UserRepository, products domain.ProductRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		products: products,
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

// EnsureProfile returns the stored profile for identity, creating it on first sign-in
func (s *AccountService) EnsureProfile(ctx context.Context, identity domain.Identity) (*domain.UserProfile, error) {
	if identity.UID == "" {
		return nil, domain.ErrInvalidRequest
	}

	profile, err := s.users.Get(ctx, identity.UID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.UserProfile{
		UID:                 identity.UID,
		Email:               identity.Email,
		DisplayName:         identity.DisplayName,
		PhotoURL:            identity.PhotoURL,
		SustainabilityScore: 0,
		Wishlist:            []string{},
		CreatedAt:           time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("uid", identity.UID).Msg("profile created")
	return created, nil
}

// GetProfile returns a stored profile
func (s *AccountService) GetProfile(ctx context.Context, uid string) (*domain.UserProfile, error) {
	if uid == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.users.Get(ctx, uid)
}

// UpdateProfile applies a partial update and returns the resulting profile
func (s *AccountService) UpdateProfile(ctx context.Context, uid string, update domain.ProfileUpdate) (*domain.UserProfile, error) {
	if uid == "" || update.IsEmpty() {
		return nil, domain.ErrInvalidRequest
	}
	if err := s.users.Update(ctx, uid, update); err != nil {
		return nil, err
	}
	return s.users.Get(ctx, uid)
}

// ToggleWishlist adds or removes a product from the user's wishlist
func (s *AccountService) ToggleWishlist(ctx context.Context, uid, productID string, add bool) error {
	if uid == "" || productID == "" {
		return domain.ErrInvalidRequest
	}
	if add {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return err
		}
	}
	return s.users.SetWishlist(ctx, uid, productID, add)
}

// WishlistProducts loads the wishlist's products in wishlist order, skipping ones that no longer exist
func (s *AccountService) WishlistProducts(ctx context.Context, uid string) ([]domain.Product, error) {
	profile, err := s.GetProfile(ctx, uid)
	if err != nil {
		return nil, err
	}

	products, missing, err := loadProducts(ctx, profile.Wishlist, s.products.GetByID)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		s.logger.Debug().Str("uid", uid).Strs("product_ids", missing).Msg("wishlist products missing")
	}
	return products, nil
}
