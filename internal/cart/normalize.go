package cart

import (
	"math"
	"strconv"

	"foodcheq-companion/internal/domain"
)

// normalizeItem maps any historical item shape onto the canonical
// CartItem. Identity resolves productId, then id, then slug, then name;
// an item with no usable identity is dropped (ok == false). The mapping is
// idempotent: a CartItem round-tripped through it comes back unchanged.
func normalizeItem(r domain.RawCartInput) (domain.CartItem, bool) {
	id := firstIdentity(r.ProductID, r.ID, r.Slug, r.Name)
	if id == "" {
		return domain.CartItem{}, false
	}

	name := stringOf(r.Name)
	if name == "" {
		name = domain.DefaultItemName
	}

	return domain.CartItem{
		ProductID: id,
		Name:      name,
		PriceKobo: coercePriceKobo(r),
		Currency:  domain.DefaultCurrency,
		Quantity:  coerceQuantity(r),
	}, true
}

func normalizeList(raw []domain.RawCartInput) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(raw))
	for _, r := range raw {
		if item, ok := normalizeItem(r); ok {
			items = append(items, item)
		}
	}
	return items
}

// coercePriceKobo prefers a usable non-zero priceKobo, falls back to a
// legacy major-unit price times 100, and bottoms out at zero. A zero
// result is deliberate: checkout treats it as "price unknown, block".
func coercePriceKobo(r domain.RawCartInput) int64 {
	if n, ok := numberOf(r.PriceKobo); ok && n != 0 {
		return clampKobo(n)
	}
	if r.Price != nil {
		if n, ok := numberOf(r.Price); ok {
			return clampKobo(n * 100)
		}
	}
	return 0
}

func clampKobo(n float64) int64 {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	k := int64(math.Round(n))
	if k < 0 {
		return 0
	}
	return k
}

// coerceQuantity reads quantity, then the legacy qty field. Anything
// non-numeric or below one clamps to one; a cart line never holds zero.
func coerceQuantity(r domain.RawCartInput) int {
	v := r.Quantity
	if v == nil {
		v = r.Qty
	}
	n, ok := numberOf(v)
	if !ok || n == 0 {
		return 1
	}
	q := int(math.Round(n))
	if q < 1 {
		return 1
	}
	return q
}

// firstIdentity returns the string form of the first usable candidate.
// Empty strings, zeros, false and nil are all unusable, matching the
// loose truthiness the legacy writers relied on.
func firstIdentity(candidates ...any) string {
	for _, v := range candidates {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t != "" {
				return t
			}
		case float64:
			if t != 0 {
				return formatNumber(t)
			}
		case bool:
			if t {
				return "true"
			}
		}
	}
	return ""
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return formatNumber(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func numberOf(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
