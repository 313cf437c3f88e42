package offers

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/offerly-hq/offers-sdk-go/pkg/transport"
)

// GetOffers retrieves the offers for a product. An unregistered product id
// (HTTP 404) is a soft outcome: it returns an empty, non-nil slice. Upstream
// ordering is preserved.
func (c *Client) GetOffers(ctx context.Context, productID uuid.UUID) ([]Offer, error) {
	if err := c.ensureValid(ctx); err != nil {
		return nil, err
	}

	url := c.baseURL + fmt.Sprintf(offersPath, productID)
	headers := c.accessHeaders()

	env := c.transport.Get(ctx, url, nil, headers)
	c.logRequest("get_offers", url, headers, nil, env)

	switch env.StatusCode {
	case 200:
		offers, err := parseOffers(env)
		if err != nil {
			return nil, err
		}
		return offers, nil
	case 401:
		return nil, errAuthStatus(env)
	case 404:
		c.log.InfoObj("product not registered", "product_id", productID.String())
		return []Offer{}, nil
	case 422:
		return nil, errContractStatus(env)
	default:
		return nil, errUnknownStatus(env)
	}
}

// parseOffers converts a 200 response body into offers. Any record missing
// id, price or items_in_stock fails the whole parse.
func parseOffers(env transport.Envelope) ([]Offer, error) {
	records, ok := env.List()
	if !ok {
		return nil, fmt.Errorf("%w: unexpected response shape: expected list, got %T", ErrAPI, env.Data)
	}

	offers := make([]Offer, 0, len(records))
	for i, rec := range records {
		fields, ok := rec.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected response shape: offer %d is %T", ErrAPI, i, rec)
		}

		rawID, ok := fields["id"].(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected response shape: offer %d missing id", ErrAPI, i)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("%w: unexpected response shape: offer %d id %q: %v", ErrAPI, i, rawID, err)
		}

		price, err := intField(fields, "price")
		if err != nil {
			return nil, fmt.Errorf("%w: unexpected response shape: offer %d: %v", ErrAPI, i, err)
		}
		stock, err := intField(fields, "items_in_stock")
		if err != nil {
			return nil, fmt.Errorf("%w: unexpected response shape: offer %d: %v", ErrAPI, i, err)
		}

		offers = append(offers, Offer{ID: id, Price: price, ItemsInStock: stock})
	}
	return offers, nil
}

// intField reads an integral JSON number. Decoded JSON numbers arrive as
// float64; anything with a fractional part is rejected.
func intField(fields map[string]any, key string) (int64, error) {
	v, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing %s", key)
	}
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s is not an integer: %v", key, v)
	}
	return int64(f), nil
}
