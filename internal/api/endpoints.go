package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Product is the backend's catalog item as product pages consume it.
type Product struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	PriceKobo int64  `json:"priceKobo"`
	Currency  string `json:"currency"`
	ImageURL  string `json:"imageUrl"`
	ShortDesc string `json:"shortDesc"`
}

// OrderLine is the only thing checkout transmits per item: identity and
// quantity. Prices are never sent from the cart; the backend computes
// totals from its own catalog.
type OrderLine struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// PaymentStatus is the backend's answer to a payment verification.
type PaymentStatus struct {
	Success bool   `json:"success"`
	OrderID string `json:"orderId"`
	Status  string `json:"paymentStatus"`
}

// Vendor is the business profile behind a vendor session.
type Vendor struct {
	BusinessName string `json:"businessName"`
	Email        string `json:"email"`
	Status       string `json:"status"`
}

// Shipment is a normalized view over the tracking endpoint's loose
// response shapes.
type Shipment struct {
	Status    string
	Location  string
	ETA       string
	UpdatedAt string
}

// LoginUser signs a customer in and returns the bearer token.
func (c *Client) LoginUser(ctx context.Context, creds Credentials) (string, error) {
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.Do(ctx, http.MethodPost, "/auth/login", AuthNone, creds, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", errors.New("login succeeded but no token returned")
	}
	return res.AccessToken, nil
}

// LoginVendor signs a vendor in and returns the bearer token.
func (c *Client) LoginVendor(ctx context.Context, creds Credentials) (string, error) {
	var res struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.Do(ctx, http.MethodPost, "/vendor/auth/login", AuthNone, creds, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", errors.New("login succeeded but no token returned")
	}
	return res.AccessToken, nil
}

// VendorProfile fetches the signed-in vendor's business profile.
func (c *Client) VendorProfile(ctx context.Context) (*Vendor, error) {
	var res struct {
		Vendor Vendor `json:"vendor"`
	}
	if err := c.Do(ctx, http.MethodGet, "/vendor/auth/me", AuthVendor, nil, &res); err != nil {
		return nil, err
	}
	return &res.Vendor, nil
}

// Products lists the public catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var res struct {
		Products []Product `json:"products"`
	}
	if err := c.Do(ctx, http.MethodGet, "/products", AuthNone, nil, &res); err != nil {
		return nil, err
	}
	return res.Products, nil
}

// Product fetches a single catalog item.
func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var res struct {
		Product Product `json:"product"`
	}
	if err := c.Do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), AuthNone, nil, &res); err != nil {
		return nil, err
	}
	return &res.Product, nil
}

// WishlistIDs returns the product ids on the server-held wishlist for the
// authenticated user.
func (c *Client) WishlistIDs(ctx context.Context) ([]string, error) {
	var res struct {
		Items []struct {
			Product Product `json:"product"`
		} `json:"items"`
	}
	if err := c.Do(ctx, http.MethodGet, "/wishlist", AuthUser, nil, &res); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Items))
	for _, item := range res.Items {
		if item.Product.ID != "" {
			ids = append(ids, item.Product.ID)
		}
	}
	return ids, nil
}

func (c *Client) AddWishlist(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	return c.Do(ctx, http.MethodPost, "/wishlist", AuthUser, body, nil)
}

func (c *Client) RemoveWishlist(ctx context.Context, productID string) error {
	return c.Do(ctx, http.MethodDelete, "/wishlist/"+url.PathEscape(productID), AuthUser, nil, nil)
}

// CreateOrder submits the checkout lines and returns the new order id.
func (c *Client) CreateOrder(ctx context.Context, lines []OrderLine) (string, error) {
	body := map[string]any{"items": lines}
	var res struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	if err := c.Do(ctx, http.MethodPost, "/orders", AuthAuto, body, &res); err != nil {
		return "", err
	}
	if res.Order.ID == "" {
		return "", errors.New("order created but order id not returned")
	}
	return res.Order.ID, nil
}

// InitPaystack starts a Paystack transaction for the order and returns
// the authorization URL the shopper is handed off to.
func (c *Client) InitPaystack(ctx context.Context, orderID string) (string, error) {
	body := map[string]string{"orderId": orderID}
	var res struct {
		AuthorizationURL string `json:"authorizationUrl"`
	}
	if err := c.Do(ctx, http.MethodPost, "/payments/paystack/init", AuthAuto, body, &res); err != nil {
		return "", err
	}
	if res.AuthorizationURL == "" {
		return "", errors.New("payment init failed (no authorizationUrl)")
	}
	return res.AuthorizationURL, nil
}

// VerifyPaystack confirms a payment reference after the gateway redirect.
// Backends have shipped three route shapes for this; each is tried in
// turn and the last failure is surfaced if none answers.
func (c *Client) VerifyPaystack(ctx context.Context, reference string) (*PaymentStatus, error) {
	attempts := []func(out *PaymentStatus) error{
		func(out *PaymentStatus) error {
			return c.Do(ctx, http.MethodGet, "/payments/paystack/verify?reference="+url.QueryEscape(reference), AuthAuto, nil, out)
		},
		func(out *PaymentStatus) error {
			return c.Do(ctx, http.MethodPost, "/payments/paystack/verify", AuthAuto, map[string]string{"reference": reference}, out)
		},
		func(out *PaymentStatus) error {
			return c.Do(ctx, http.MethodGet, "/payments/paystack/verify/"+url.PathEscape(reference), AuthAuto, nil, out)
		},
	}

	var lastErr error
	for _, attempt := range attempts {
		var status PaymentStatus
		if err := attempt(&status); err != nil {
			lastErr = err
			continue
		}
		return &status, nil
	}
	return nil, lastErr
}

// TrackShipment looks a tracking code up, trying the three route shapes
// deployed backends have supported: path param, query param, then POST.
func (c *Client) TrackShipment(ctx context.Context, code string) (*Shipment, error) {
	attempts := []func(out *map[string]any) error{
		func(out *map[string]any) error {
			return c.Do(ctx, http.MethodGet, "/logistics/track/"+url.PathEscape(code), AuthAuto, nil, out)
		},
		func(out *map[string]any) error {
			return c.Do(ctx, http.MethodGet, "/logistics/track?code="+url.QueryEscape(code), AuthAuto, nil, out)
		},
		func(out *map[string]any) error {
			return c.Do(ctx, http.MethodPost, "/logistics/track", AuthAuto, map[string]string{"trackingCode": code}, out)
		},
	}

	var lastErr error
	for _, attempt := range attempts {
		var raw map[string]any
		if err := attempt(&raw); err != nil {
			lastErr = err
			continue
		}
		return normalizeShipment(raw), nil
	}
	if lastErr == nil {
		lastErr = errors.New("unable to fetch tracking data")
	}
	return nil, lastErr
}

// normalizeShipment flattens the tracking response variants (top-level,
// under shipment, or under data) into one shape.
func normalizeShipment(raw map[string]any) *Shipment {
	body := raw
	if nested, ok := raw["shipment"].(map[string]any); ok {
		body = nested
	} else if nested, ok := raw["data"].(map[string]any); ok {
		body = nested
	}

	pick := func(keys ...string) string {
		for _, k := range keys {
			if s, ok := body[k].(string); ok && s != "" {
				return s
			}
		}
		return ""
	}

	return &Shipment{
		Status:    pick("status", "currentStatus"),
		Location:  pick("location", "currentLocation"),
		ETA:       pick("eta", "estimatedDelivery"),
		UpdatedAt: pick("updatedAt", "lastUpdated"),
	}
}
