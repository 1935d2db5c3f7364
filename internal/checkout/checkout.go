// Package checkout gates and submits orders. The cart is the substrate it
// inspects: a zero price or missing identity in any line blocks
// submission, because the backend computes real totals from its catalog
// and a zero-priced line means the local data was legacy or invalid.
package checkout

import (
	"context"
	"log"

	"foodcheq-companion/internal/api"
	"foodcheq-companion/internal/cart"
	"foodcheq-companion/internal/domain"
)

// orderClient is the slice of the API client checkout needs.
type orderClient interface {
	CreateOrder(ctx context.Context, lines []api.OrderLine) (string, error)
	InitPaystack(ctx context.Context, orderID string) (string, error)
	VerifyPaystack(ctx context.Context, reference string) (*api.PaymentStatus, error)
}

type Service struct {
	cart   *cart.Manager
	client orderClient
	logger *log.Logger
}

func New(cartMgr *cart.Manager, client orderClient, logger *log.Logger) *Service {
	return &Service{cart: cartMgr, client: client, logger: logger}
}

// SummaryLine is one cart line priced out for display.
type SummaryLine struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitKobo  int64  `json:"unitKobo"`
	LineKobo  int64  `json:"lineKobo"`
}

type Summary struct {
	Lines     []SummaryLine `json:"lines"`
	TotalKobo int64         `json:"totalKobo"`
	Currency  string        `json:"currency"`
}

// Result is what the shopper needs after a successful submission: the
// order to reference and the gateway URL to be handed off to.
type Result struct {
	OrderID          string `json:"orderId"`
	AuthorizationURL string `json:"authorizationUrl"`
}

// Summary prices the live cart per line plus the grand total.
func (s *Service) Summary(ctx context.Context) Summary {
	items := s.cart.Items(ctx)
	summary := Summary{
		Lines:    make([]SummaryLine, 0, len(items)),
		Currency: domain.DefaultCurrency,
	}
	for _, item := range items {
		line := SummaryLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitKobo:  item.PriceKobo,
			LineKobo:  item.PriceKobo * int64(item.Quantity),
		}
		summary.Lines = append(summary.Lines, line)
		summary.TotalKobo += line.LineKobo
	}
	return summary
}

// Validate applies the pre-submission gate to items.
func Validate(items []domain.CartItem) error {
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}
	for _, item := range items {
		if item.ProductID == "" {
			return domain.ErrInvalidItem
		}
		if item.PriceKobo <= 0 {
			return domain.ErrUnpricedItem
		}
	}
	return nil
}

// Submit validates the cart, creates the order, initializes payment and
// clears the cart before the gateway hand-off. Only identity and quantity
// are transmitted; prices stay local.
func (s *Service) Submit(ctx context.Context) (*Result, error) {
	items := s.cart.Items(ctx)
	if err := Validate(items); err != nil {
		return nil, err
	}

	lines := make([]api.OrderLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, api.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	orderID, err := s.client.CreateOrder(ctx, lines)
	if err != nil {
		return nil, err
	}

	authURL, err := s.client.InitPaystack(ctx, orderID)
	if err != nil {
		return nil, err
	}

	// The order exists remotely from here on; a failed local clear must
	// not lose the hand-off.
	if err := s.cart.Clear(ctx); err != nil {
		s.logger.Printf("checkout: clear cart after order %s: %v", orderID, err)
	}

	return &Result{OrderID: orderID, AuthorizationURL: authURL}, nil
}

// VerifyPayment confirms a gateway reference after the shopper returns.
func (s *Service) VerifyPayment(ctx context.Context, reference string) (*api.PaymentStatus, error) {
	return s.client.VerifyPaystack(ctx, reference)
}
