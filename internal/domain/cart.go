package domain

const (
	// DefaultCurrency is the only currency this deployment carts in.
	// Prices are held in kobo (minor units) end to end.
	DefaultCurrency = "NGN"

	// DefaultItemName labels items that arrived without a display name.
	DefaultItemName = "Item"
)

// CartItem is the canonical, normalized unit of the cart. ProductID is
// unique within one cart; adding an existing id merges quantities instead
// of appending a duplicate line.
type CartItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	PriceKobo int64  `json:"priceKobo"`
	Currency  string `json:"currency"`
	Quantity  int    `json:"quantity"`
}

// RawCartInput is the union of every item shape the store has ever
// persisted: the modern CartItem fields plus the legacy identity fields
// (id, slug), the legacy qty counter and the legacy major-unit price.
// Fields are untyped because old writers were not consistent about types;
// coercion happens in one place, during normalization.
type RawCartInput struct {
	ProductID any `json:"productId,omitempty"`
	ID        any `json:"id,omitempty"`
	Slug      any `json:"slug,omitempty"`
	Name      any `json:"name,omitempty"`
	PriceKobo any `json:"priceKobo,omitempty"`
	Price     any `json:"price,omitempty"`
	Currency  any `json:"currency,omitempty"`
	Quantity  any `json:"quantity,omitempty"`
	Qty       any `json:"qty,omitempty"`
}
