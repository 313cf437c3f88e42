package offers

import (
	"fmt"

	"github.com/google/uuid"
)

// Product is a product to be registered with the Offers service. Immutable
// value constructed by the caller.
type Product struct {
	ID          uuid.UUID
	Name        string
	Description string
}

// wire converts the product to its registration request payload. The id
// travels in string form.
func (p Product) wire() map[string]string {
	return map[string]string{
		"id":          p.ID.String(),
		"name":        p.Name,
		"description": p.Description,
	}
}

func (p Product) String() string {
	return fmt.Sprintf("Product(id=%s, name=%q)", p.ID, p.Name)
}

// Offer is a single offer for a product. Constructed only from API
// responses; price and stock values are trusted upstream input.
type Offer struct {
	ID           uuid.UUID
	Price        int64
	ItemsInStock int64
}

func (o Offer) String() string {
	return fmt.Sprintf("Offer(id=%s, price=%d, items_in_stock=%d)", o.ID, o.Price, o.ItemsInStock)
}
