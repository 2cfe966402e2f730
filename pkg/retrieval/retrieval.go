// Package retrieval filters the listing pool for a user query. Matching is
// rule-based: a fixed ordered rule set runs first, then a free-text fallback
// over the listing's searchable content. Results keep pool order.
package retrieval

import (
	"fmt"
	"strings"

	"github.com/Peterleoo/Livora/internal/entity"
)

// Rule matches a listing against a lowercased query. Rules short-circuit in
// order; the first hit keeps the listing.
type Rule struct {
	Name  string
	Match func(query string, l *entity.Listing) bool
}

// Rules is the ordered rule set. It is data, not code: adding a keyword rule
// means appending here.
var Rules = []Rule{
	{
		Name: "district-nanshan",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "南山") && strings.Contains(l.Location, "南山")
		},
	},
	{
		Name: "district-futian",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "福田") && strings.Contains(l.Location, "福田")
		},
	},
	{
		Name: "beds-two",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "两室") && l.Specs.Beds == 2
		},
	},
	{
		Name: "beds-three",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "三室") && l.Specs.Beds == 3
		},
	},
	{
		Name: "budget-cheap",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "便宜") && l.Price < 9000
		},
	},
	{
		Name: "tag-seaview",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "海景") && l.HasTag("海景")
		},
	},
	{
		Name: "pet-friendly",
		Match: func(q string, l *entity.Listing) bool {
			return strings.Contains(q, "宠物") && (l.HasTag("可养宠") || l.HasFacility("PetFriendly"))
		},
	},
}

// Retrieve returns the listings from pool that match the query, preserving
// pool order. An empty result is a valid outcome.
func Retrieve(query string, pool []entity.Listing) []entity.Listing {
	q := strings.ToLower(query)
	var out []entity.Listing
	for i := range pool {
		if matches(q, &pool[i]) {
			out = append(out, pool[i])
		}
	}
	return out
}

func matches(q string, l *entity.Listing) bool {
	for _, r := range Rules {
		if r.Match(q, l) {
			return true
		}
	}
	return fallbackMatch(q, l)
}

// fallbackMatch does a substring scan over the listing's searchable content,
// then retries with the query's first two runes when the query is longer
// than two runes.
func fallbackMatch(q string, l *entity.Listing) bool {
	content := strings.ToLower(fmt.Sprintf("%s %s %s %s %d",
		l.Title, l.Location, strings.Join(l.Tags, " "), strings.Join(l.Facilities, " "), l.Price))
	if strings.Contains(content, q) {
		return true
	}
	runes := []rune(q)
	if len(runes) > 2 {
		return strings.Contains(content, string(runes[:2]))
	}
	return false
}
