// Package cart keeps short-lived in-memory shopping carts. Prices are taken
// from the catalog at the time an item is added.
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/catalog"
)

// MaxQuantity caps a single line.
const MaxQuantity = 99

var (
	// ErrCartNotFound is returned for unknown cart ids.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when removing a product not in the cart.
	ErrItemNotFound = errors.New("item not in cart")
	// ErrProductNotFound is returned when the catalog has no such product.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidQuantity is returned for quantities outside [1, MaxQuantity].
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// ProductSource resolves product ids against the catalog.
type ProductSource interface {
	Product(ctx context.Context, id int) (catalog.Product, error)
}

// Line is one product in a cart.
type Line struct {
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Cart is a snapshot of a cart with computed totals.
type Cart struct {
	ID        string    `json:"id"`
	Items     []Line    `json:"items"`
	ItemCount int       `json:"item_count"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type cartState struct {
	id        string
	lines     []Line // insertion order
	createdAt time.Time
	updatedAt time.Time
}

// Service owns all carts.
type Service struct {
	products ProductSource
	logger   *zap.Logger

	mu    sync.Mutex
	carts map[string]*cartState
	now   func() time.Time
}

// NewService creates an empty cart service.
func NewService(products ProductSource, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		logger:   logger,
		carts:    make(map[string]*cartState),
		now:      time.Now,
	}
}

// Create starts an empty cart.
func (s *Service) Create() Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	c := &cartState{id: uuid.NewString(), createdAt: now, updatedAt: now}
	s.carts[c.id] = c
	return c.snapshot()
}

// Get returns the cart with id.
func (s *Service) Get(id string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[id]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	return c.snapshot(), nil
}

// Add puts qty of productID into the cart, merging with an existing line.
// The product is looked up before the cart lock is taken, so catalog errors
// come back unchanged.
func (s *Service) Add(ctx context.Context, cartID string, productID, qty int) (Cart, error) {
	if qty < 1 || qty > MaxQuantity {
		return Cart{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, qty)
	}
	if _, err := s.Get(cartID); err != nil {
		return Cart{}, err
	}

	p, err := s.products.Product(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if p.ID == 0 {
		// Upstream answers unknown ids with an empty document.
		return Cart{}, ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}

	merged := false
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if c.lines[i].Quantity+qty > MaxQuantity {
				return Cart{}, fmt.Errorf("%w: line would exceed %d", ErrInvalidQuantity, MaxQuantity)
			}
			c.lines[i].Quantity += qty
			c.lines[i].UnitPrice = p.Price
			merged = true
			break
		}
	}
	if !merged {
		c.lines = append(c.lines, Line{ProductID: p.ID, Title: p.Title, UnitPrice: p.Price, Quantity: qty})
	}
	c.updatedAt = s.now().UTC()

	s.logger.Debug("cart item added",
		zap.String("cart_id", cartID), zap.Int("product_id", productID), zap.Int("quantity", qty))
	return c.snapshot(), nil
}

// Remove deletes productID from the cart.
func (s *Service) Remove(cartID string, productID int) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartID]
	if !ok {
		return Cart{}, ErrCartNotFound
	}
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			c.updatedAt = s.now().UTC()
			return c.snapshot(), nil
		}
	}
	return Cart{}, ErrItemNotFound
}

// Len returns the number of live carts.
func (s *Service) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

func (c *cartState) snapshot() Cart {
	out := Cart{
		ID:        c.id,
		Items:     make([]Line, len(c.lines)),
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
	var total float64
	for i, l := range c.lines {
		l.LineTotal = roundCents(l.UnitPrice * float64(l.Quantity))
		out.Items[i] = l
		out.ItemCount += l.Quantity
		total += l.LineTotal
	}
	out.Total = roundCents(total)
	return out
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
