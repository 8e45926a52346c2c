// Package catalog serves the static product list bundled with the binary.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
)

//go:embed products.json
var productsJSON []byte

// Product is a sellable item.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
}

// Catalog holds the loaded product list.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// Load parses the embedded product list. IDs are assigned positionally,
// starting from "1". A broken embed leaves an empty catalog rather than
// failing startup.
func Load() *Catalog {
	var raw []Product
	if err := json.Unmarshal(productsJSON, &raw); err != nil {
		log.Printf("[Catalog] failed to parse products.json: %v", err)
		raw = nil
	}

	cat := &Catalog{byID: make(map[string]Product, len(raw))}
	for i, p := range raw {
		p.ID = fmt.Sprintf("%d", i+1)
		cat.products = append(cat.products, p)
		cat.byID[p.ID] = p
	}

	return cat
}

// List returns all products.
func (c *Catalog) List() []Product {
	return c.products
}

// Get returns the product with the given ID.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
