package offers

import (
	"context"
	"fmt"
)

// RegisterOutcome reports how a registration concluded when no error was
// raised.
type RegisterOutcome int

const (
	// OutcomeRegistered: the product was newly registered.
	OutcomeRegistered RegisterOutcome = iota
	// OutcomeAlreadyRegistered: the upstream answered 409. This is a soft
	// outcome, not an error.
	OutcomeAlreadyRegistered
)

func (o RegisterOutcome) String() string {
	switch o {
	case OutcomeRegistered:
		return "registered"
	case OutcomeAlreadyRegistered:
		return "already_registered"
	default:
		return fmt.Sprintf("RegisterOutcome(%d)", int(o))
	}
}

// RegisterProduct registers a product with the Offers service. A 409 from
// the upstream (product already exists) completes normally with
// OutcomeAlreadyRegistered.
func (c *Client) RegisterProduct(ctx context.Context, product Product) (RegisterOutcome, error) {
	if err := c.ensureValid(ctx); err != nil {
		return 0, err
	}

	url := c.baseURL + registerPath
	headers := c.accessHeaders()
	body := product.wire()

	env := c.transport.Post(ctx, url, body, headers)
	c.logRequest("register", url, headers, body, env)

	switch env.StatusCode {
	case 201:
		returned, _ := env.StringField("id")
		if returned != product.ID.String() {
			return 0, fmt.Errorf("%w: registration id mismatch: sent %s, received %q",
				ErrAPI, product.ID, returned)
		}
		c.log.InfoObj("product registered", "product", product.String())
		return OutcomeRegistered, nil
	case 401:
		return 0, errAuthStatus(env)
	case 409:
		c.log.InfoObj("product already registered", "product", product.String())
		return OutcomeAlreadyRegistered, nil
	case 422:
		return 0, errContractStatus(env)
	default:
		return 0, errUnknownStatus(env)
	}
}
