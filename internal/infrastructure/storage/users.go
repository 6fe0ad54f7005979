package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"slices"

	"github.com/sustainabuy/backend/internal/domain"
)

// UserRepository stores account profiles
type UserRepository struct {
	db     *sql.DB
	driver string
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, driver string) *UserRepository {
	return &UserRepository{db: db, driver: driver}
}

// Get retrieves a profile by user id
func (r *UserRepository) Get(ctx context.Context, uid string) (*domain.UserProfile, error) {
	return getProfile(ctx, r.db, uid, "")
}

// Create inserts profile unless the user already exists, then returns the stored profile
func (r *UserRepository) Create(ctx context.Context, profile *domain.UserProfile) (*domain.UserProfile, error) {
	if profile.Wishlist == nil {
		profile.Wishlist = []string{}
	}
	doc, err := json.Marshal(profile)
	if err != nil {
		return nil, storageErr("encode profile", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (uid, doc) VALUES ($1, $2) ON CONFLICT (uid) DO NOTHING`,
		profile.UID, string(doc))
	if err != nil {
		return nil, storageErr("insert profile", err)
	}

	return r.Get(ctx, profile.UID)
}

// Update applies the set fields of update to the stored profile
func (r *UserRepository) Update(ctx context.Context, uid string, update domain.ProfileUpdate) error {
	return r.modify(ctx, uid, func(p *domain.UserProfile) {
		update.Apply(p)
	})
}

// SetWishlist adds productID to the wishlist (once) or removes every occurrence of it
func (r *UserRepository) SetWishlist(ctx context.Context, uid, productID string, add bool) error {
	return r.modify(ctx, uid, func(p *domain.UserProfile) {
		if add {
			if !slices.Contains(p.Wishlist, productID) {
				p.Wishlist = append(p.Wishlist, productID)
			}
			return
		}
		p.Wishlist = slices.DeleteFunc(p.Wishlist, func(id string) bool {
			return id == productID
		})
	})
}

// modify runs a read-modify-write of one profile inside a transaction
func (r *UserRepository) modify(ctx context.Context, uid string, fn func(*domain.UserProfile)) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin", err)
	}
	defer tx.Rollback()

	profile, err := getProfile(ctx, tx, uid, lockClause(r.driver))
	if err != nil {
		return err
	}

	fn(profile)

	doc, err := json.Marshal(profile)
	if err != nil {
		return storageErr("encode profile", err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE users SET doc = $1 WHERE uid = $2`, string(doc), uid); err != nil {
		return storageErr("update profile", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit", err)
	}
	return nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func getProfile(ctx context.Context, q rowQuerier, uid, lock string) (*domain.UserProfile, error) {
	var doc string
	err := q.QueryRowContext(ctx, `SELECT doc FROM users WHERE uid = $1`+lock, uid).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, storageErr("get profile", err)
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(doc), &profile); err != nil {
		return nil, storageErr("decode profile", err)
	}
	if profile.Wishlist == nil {
		profile.Wishlist = []string{}
	}
	return &profile, nil
}
