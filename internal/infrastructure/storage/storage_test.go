package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sustainabuy/backend/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), DriverSQLite, ":memory:", 0)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever", 0)
	assert.Error(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	assert.NoError(t, Migrate(context.Background(), db))
}

func TestLockClause(t *testing.T) {
	assert.Equal(t, " FOR UPDATE", lockClause(DriverPostgres))
	assert.Empty(t, lockClause(DriverSQLite))
}

func TestProductRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	product := &domain.Product{
		ProductData: domain.ProductData{
			Name:      "Wool Runners",
			Brand:     "Allbirds",
			Materials: []string{"ZQ Merino Wool"},
		},
		Category: "Footwear",
		Price:    110,
		Score:    88,
		Variants: []domain.ProductVariant{
			{Name: "Size 9", BasePrice: 110, Specs: map[string]interface{}{"size": "9"}},
			{ID: "size-10", Name: "Size 10", BasePrice: 115},
		},
		Offers: []domain.SellerOffer{
			{ID: "o1", VariantID: "size-10", SellerName: "Amazon", Price: 109.25},
		},
	}

	require.NoError(t, repo.Create(ctx, product))
	require.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.NotEmpty(t, product.Variants[0].ID)
	assert.Equal(t, product.ID, product.Variants[1].GroupID)

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)

	assert.Equal(t, "Wool Runners", got.Name)
	assert.Equal(t, []string{"ZQ Merino Wool"}, got.Materials)
	assert.Equal(t, 88, got.Score)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, "Size 9", got.Variants[0].Name)
	assert.Equal(t, "9", got.Variants[0].Specs["size"])
	assert.Equal(t, "size-10", got.Variants[1].ID)
	require.Len(t, got.Offers, 1)
	assert.Equal(t, 109.25, got.Offers[0].Price)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo := NewProductRepository(openTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_FindByName(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	require.NoError(t, repo.Create(ctx, &domain.Product{
		ProductData: domain.ProductData{Name: "Better Sweater", Brand: "Patagonia"},
		Category:    "Clothing",
	}))

	got, err := repo.FindByName(ctx, "Better Sweater")
	require.NoError(t, err)
	assert.Equal(t, "Patagonia", got.Brand)
	assert.NotEmpty(t, got.ID)

	_, err = repo.FindByName(ctx, "better sweater")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	seed := []domain.Product{
		{ProductData: domain.ProductData{Name: "A"}, Category: "Footwear", Score: 70, Image: "a.jpg", CreatedAt: base},
		{ProductData: domain.ProductData{Name: "B"}, Category: "Clothing", CreatedAt: base.Add(time.Second)},
		{ProductData: domain.ProductData{Name: "C"}, Category: "Footwear", CreatedAt: base.Add(2 * time.Second)},
	}
	for i := range seed {
		require.NoError(t, repo.Create(ctx, &seed[i]))
	}

	all, err := repo.List(ctx, "", 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "A", all[0].Name)
	assert.Equal(t, "C", all[2].Name)

	allExplicit, err := repo.List(ctx, "All", 10)
	require.NoError(t, err)
	assert.Len(t, allExplicit, 3)

	footwear, err := repo.List(ctx, "Footwear", 10)
	require.NoError(t, err)
	require.Len(t, footwear, 2)
	assert.Equal(t, "A", footwear[0].Name)

	// Older documents only carry score/image
	assert.Equal(t, 70, footwear[0].BaseScore)
	assert.Equal(t, "a.jpg", footwear[0].Thumbnail)

	limited, err := repo.List(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	none, err := repo.List(ctx, "Drinkware", 10)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestProductRepository_VariantsAndOffers(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(openTestDB(t))

	product := &domain.Product{ProductData: domain.ProductData{Name: "Quencher"}, Category: "Drinkware"}
	require.NoError(t, repo.Create(ctx, product))

	first := &domain.ProductVariant{Name: "30 oz", BasePrice: 45}
	second := &domain.ProductVariant{Name: "40 oz", BasePrice: 50}
	require.NoError(t, repo.AddVariant(ctx, product.ID, first))
	require.NoError(t, repo.AddVariant(ctx, product.ID, second))
	assert.Equal(t, product.ID, first.GroupID)

	offers := []domain.SellerOffer{
		{ID: "offer-a", SellerName: "Amazon", Price: 42.75},
		{ID: "offer-b", SellerName: "eBay", Price: 38.25},
	}
	require.NoError(t, repo.AddOffers(ctx, product.ID, second.ID, offers))

	got, err := repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Variants, 2)
	assert.Equal(t, "30 oz", got.Variants[0].Name)
	assert.Equal(t, "40 oz", got.Variants[1].Name)
	require.Len(t, got.Offers, 2)
	assert.Equal(t, second.ID, got.Offers[0].VariantID)

	// Replacing keeps only the new set
	require.NoError(t, repo.AddOffers(ctx, product.ID, second.ID, offers[:1]))
	got, err = repo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, got.Offers, 1)
	assert.Equal(t, "offer-a", got.Offers[0].ID)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(openTestDB(t), DriverSQLite)

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	created, err := repo.Create(ctx, &domain.UserProfile{UID: "u1", DisplayName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", created.DisplayName)
	assert.NotNil(t, created.Wishlist)

	t.Run("create does not overwrite", func(t *testing.T) {
		again, err := repo.Create(ctx, &domain.UserProfile{UID: "u1", DisplayName: "Other"})
		require.NoError(t, err)
		assert.Equal(t, "Ada", again.DisplayName)
	})

	t.Run("partial update", func(t *testing.T) {
		bio := "Repair first."
		require.NoError(t, repo.Update(ctx, "u1", domain.ProfileUpdate{Bio: &bio}))

		got, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.DisplayName)
		assert.Equal(t, "Repair first.", got.Bio)
	})

	t.Run("wishlist set semantics", func(t *testing.T) {
		require.NoError(t, repo.SetWishlist(ctx, "u1", "p1", true))
		require.NoError(t, repo.SetWishlist(ctx, "u1", "p1", true))
		require.NoError(t, repo.SetWishlist(ctx, "u1", "p2", true))

		got, err := repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2"}, got.Wishlist)

		require.NoError(t, repo.SetWishlist(ctx, "u1", "p1", false))
		require.NoError(t, repo.SetWishlist(ctx, "u1", "p1", false))

		got, err = repo.Get(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, got.Wishlist)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := repo.SetWishlist(ctx, "nobody", "p1", true)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
