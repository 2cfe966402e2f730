// Package catalog holds the listing inventory the assistant recommends from.
// The catalog is read-only after construction; retrieval preserves its order.
package catalog

import (
	"github.com/Peterleoo/Livora/internal/entity"
)

type Catalog struct {
	listings []entity.Listing
	byId     map[string]int
}

func New(listings []entity.Listing) *Catalog {
	c := &Catalog{
		listings: append([]entity.Listing(nil), listings...),
		byId:     make(map[string]int, len(listings)),
	}
	for i := range c.listings {
		c.byId[c.listings[i].Id] = i
	}
	return c
}

// All returns every listing in catalog order.
func (c *Catalog) All() []entity.Listing {
	return append([]entity.Listing(nil), c.listings...)
}

// ForCity returns the listings available in the given city, in catalog order.
func (c *Catalog) ForCity(city string) []entity.Listing {
	var out []entity.Listing
	for i := range c.listings {
		if c.listings[i].City == city {
			out = append(out, c.listings[i])
		}
	}
	return out
}

// ById looks a listing up by its identifier.
func (c *Catalog) ById(id string) (entity.Listing, bool) {
	i, ok := c.byId[id]
	if !ok {
		return entity.Listing{}, false
	}
	return c.listings[i], true
}

// Cities returns the distinct cities present in the catalog, in first-seen
// order.
func (c *Catalog) Cities() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range c.listings {
		city := c.listings[i].City
		if !seen[city] {
			seen[city] = true
			out = append(out, city)
		}
	}
	return out
}
