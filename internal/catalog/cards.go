package catalog

import (
	"fmt"
	"math"
	"strings"
)

const excerptRunes = 100

// Card is the summary shown in product grids.
type Card struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Excerpt     string `json:"excerpt"`
	Stars       string `json:"stars"`
	RatingCount int    `json:"rating_count"`
}

// NewCard summarizes p.
func NewCard(p Product) Card {
	return Card{
		ID:          p.ID,
		Title:       p.Title,
		Category:    p.Category,
		Image:       p.Image,
		Price:       fmt.Sprintf("$%.2f", p.Price),
		Excerpt:     excerpt(p.Description),
		Stars:       stars(p.Rating.Rate),
		RatingCount: p.Rating.Count,
	}
}

// Cards summarizes every product in order.
func Cards(products []Product) []Card {
	out := make([]Card, len(products))
	for i, p := range products {
		out[i] = NewCard(p)
	}
	return out
}

// FilterByCategory keeps the products whose category matches exactly. An
// empty category returns the input unchanged.
func FilterByCategory(products []Product, category string) []Product {
	if category == "" {
		return products
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func excerpt(s string) string {
	r := []rune(s)
	if len(r) <= excerptRunes {
		return s
	}
	return string(r[:excerptRunes]) + "..."
}

func stars(rate float64) string {
	full := int(math.Floor(rate))
	full = max(0, min(full, 5))
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
}
