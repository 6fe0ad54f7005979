package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/sustainabuy/backend/internal/domain"
)

// productLoadConcurrency bounds parallel product loads for one request
const productLoadConcurrency = 4

// productLoader reads one product document by id
type productLoader func(ctx context.Context, id string) (*domain.Product, error)

// loadProducts fetches ids concurrently. Found products come back in id order, ids
// without a product come back as missing, and any other error aborts the whole load.
func loadProducts(ctx context.Context, ids []string, load productLoader) ([]domain.Product, []string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(productLoadConcurrency)

	results := make([]*domain.Product, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			p, err := load(ctx, id)
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	products := make([]domain.Product, 0, len(ids))
	missing := []string{}
	for i, p := range results {
		if p == nil {
			missing = append(missing, ids[i])
			continue
		}
		products = append(products, *p)
	}
	return products, missing, nil
}
