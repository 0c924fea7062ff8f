package testutil

import (
	"github.com/HerbHall/storefront/internal/catalog"
)

// NewProduct returns a Product with sensible defaults, suitable for test
// fixtures. Override individual fields with options.
func NewProduct(opts ...func(*catalog.Product)) catalog.Product {
	p := catalog.Product{
		ID:          1,
		Title:       "Fjallraven Backpack",
		Price:       109.95,
		Description: "Your perfect pack for everyday use and walks in the forest.",
		Category:    "men's clothing",
		Image:       "https://fakestoreapi.com/img/81fPKd-2AYL._AC_SL1500_.jpg",
		Rating:      catalog.Rating{Rate: 3.9, Count: 120},
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithProductID sets the product id.
func WithProductID(id int) func(*catalog.Product) {
	return func(p *catalog.Product) { p.ID = id }
}

// WithPrice sets the product price.
func WithPrice(price float64) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Price = price }
}

// WithCategory sets the product category.
func WithCategory(c string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Category = c }
}

// WithTitle sets the product title.
func WithTitle(title string) func(*catalog.Product) {
	return func(p *catalog.Product) { p.Title = title }
}
