package offers

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// RegisterProducts registers products concurrently. outcomes[i] always
// corresponds to products[i] regardless of completion order; failed entries
// keep the zero outcome and contribute to the joined error.
func (c *Client) RegisterProducts(ctx context.Context, products []Product) ([]RegisterOutcome, error) {
	outcomes := make([]RegisterOutcome, len(products))
	errs := make([]error, len(products))

	var wg sync.WaitGroup
	for i, p := range products {
		wg.Add(1)
		go func(i int, p Product) {
			defer wg.Done()
			outcome, err := c.RegisterProduct(ctx, p)
			if err != nil {
				errs[i] = fmt.Errorf("register product %s: %w", p.ID, err)
				return
			}
			outcomes[i] = outcome
		}(i, p)
	}
	wg.Wait()

	return outcomes, errors.Join(errs...)
}

// OffersBatch retrieves offers for many product ids concurrently. results[i]
// always corresponds to productIDs[i] regardless of completion order.
func (c *Client) OffersBatch(ctx context.Context, productIDs []uuid.UUID) ([][]Offer, error) {
	results := make([][]Offer, len(productIDs))
	errs := make([]error, len(productIDs))

	var wg sync.WaitGroup
	for i, id := range productIDs {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			offers, err := c.GetOffers(ctx, id)
			if err != nil {
				errs[i] = fmt.Errorf("get offers for %s: %w", id, err)
				return
			}
			results[i] = offers
		}(i, id)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
