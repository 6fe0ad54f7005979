package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sustainabuy/backend/internal/domain"
)

// timestampLayout is fixed-width so created_at sorts as text
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ProductRepository stores products with nested variants and offers
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create stores a new product together with any variants and offers it carries.
// An empty ID is replaced with a generated one.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}

	doc, err := encodeProduct(product)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, name, category, created_at, doc) VALUES ($1, $2, $3, $4, $5)`,
		product.ID, product.Name, product.Category, product.CreatedAt.UTC().Format(timestampLayout), doc,
	)
	if err != nil {
		return storageErr("insert product", err)
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		v.GroupID = product.ID
		if err := insertVariant(ctx, tx, product.ID, v, i); err != nil {
			return err
		}
	}

	for i, o := range product.Offers {
		if err := insertOffer(ctx, tx, product.ID, o, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// GetByID loads a product with its variants and every stored offer, in variant order
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM products WHERE id = $1`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, storageErr("get product", err)
	}

	product, err := decodeProduct(id, doc)
	if err != nil {
		return nil, err
	}

	variants, err := r.variants(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Variants = variants

	for _, v := range variants {
		offers, err := r.offers(ctx, id, v.ID)
		if err != nil {
			return nil, err
		}
		product.Offers = append(product.Offers, offers...)
	}

	return product, nil
}

// FindByName returns the first product with exactly this name, without variants
func (r *ProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	var id, doc string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, doc FROM products WHERE name = $1 ORDER BY created_at LIMIT 1`, name,
	).Scan(&id, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, storageErr("find product", err)
	}
	return decodeProduct(id, doc)
}

// List returns up to limit products, optionally restricted to a category ("" or "All" for every one)
func (r *ProductRepository) List(ctx context.Context, category string, limit int) ([]domain.Product, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category == "" || category == "All" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, doc FROM products ORDER BY created_at LIMIT $1`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, doc FROM products WHERE category = $1 ORDER BY created_at LIMIT $2`, category, limit)
	}
	if err != nil {
		return nil, storageErr("list products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, storageErr("scan product", err)
		}
		p, err := decodeProduct(id, doc)
		if err != nil {
			return nil, err
		}
		fillLegacyFields(p)
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

// AddVariant appends a variant to an existing product
func (r *ProductRepository) AddVariant(ctx context.Context, productID string, variant *domain.ProductVariant) error {
	if variant.ID == "" {
		variant.ID = uuid.NewString()
	}
	variant.GroupID = productID

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM variants WHERE product_id = $1`, productID).Scan(&position)
	if err != nil {
		return storageErr("count variants", err)
	}

	if err := insertVariant(ctx, tx, productID, variant, position); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

// AddOffers replaces the stored offers of one variant
func (r *ProductRepository) AddOffers(ctx context.Context, productID, variantID string, offers []domain.SellerOffer) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`DELETE FROM offers WHERE product_id = $1 AND variant_id = $2`, productID, variantID)
	if err != nil {
		return storageErr("clear offers", err)
	}

	for i, o := range offers {
		o.VariantID = variantID
		if err := insertOffer(ctx, tx, productID, o, i); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

func (r *ProductRepository) variants(ctx context.Context, productID string) ([]domain.ProductVariant, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM variants WHERE product_id = $1 ORDER BY position`, productID)
	if err != nil {
		return nil, storageErr("list variants", err)
	}
	defer rows.Close()

	var variants []domain.ProductVariant
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, storageErr("scan variant", err)
		}
		var v domain.ProductVariant
		if err := json.Unmarshal([]byte(doc), &v); err != nil {
			return nil, storageErr("decode variant", err)
		}
		variants = append(variants, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list variants", err)
	}
	return variants, nil
}

func (r *ProductRepository) offers(ctx context.Context, productID, variantID string) ([]domain.SellerOffer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM offers WHERE product_id = $1 AND variant_id = $2 ORDER BY position`,
		productID, variantID)
	if err != nil {
		return nil, storageErr("list offers", err)
	}
	defer rows.Close()

	var offers []domain.SellerOffer
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, storageErr("scan offer", err)
		}
		var o domain.SellerOffer
		if err := json.Unmarshal([]byte(doc), &o); err != nil {
			return nil, storageErr("decode offer", err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list offers", err)
	}
	return offers, nil
}

func insertVariant(ctx context.Context, tx *sql.Tx, productID string, v *domain.ProductVariant, position int) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return storageErr("encode variant", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO variants (product_id, id, position, doc) VALUES ($1, $2, $3, $4)`,
		productID, v.ID, position, string(doc))
	if err != nil {
		return storageErr("insert variant", err)
	}
	return nil
}

func insertOffer(ctx context.Context, tx *sql.Tx, productID string, o domain.SellerOffer, position int) error {
	doc, err := json.Marshal(o)
	if err != nil {
		return storageErr("encode offer", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO offers (product_id, variant_id, id, position, doc) VALUES ($1, $2, $3, $4, $5)`,
		productID, o.VariantID, o.ID, position, string(doc))
	if err != nil {
		return storageErr("insert offer", err)
	}
	return nil
}

// encodeProduct serializes the product document; variants and offers live in their own tables
func encodeProduct(p *domain.Product) (string, error) {
	doc := *p
	doc.Variants = nil
	doc.Offers = nil
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", storageErr("encode product", err)
	}
	return string(raw), nil
}

func decodeProduct(id, doc string) (*domain.Product, error) {
	var p domain.Product
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, storageErr("decode product", err)
	}
	p.ID = id
	return &p, nil
}

// fillLegacyFields maps older documents that only carry score/image onto baseScore/thumbnail
func fillLegacyFields(p *domain.Product) {
	if p.BaseScore == 0 {
		p.BaseScore = p.Score
	}
	if p.Thumbnail == "" {
		p.Thumbnail = p.Image
	}
}
