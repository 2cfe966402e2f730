// Package intent classifies a user turn as a contract-signing request or a
// plain query, and resolves which remembered listing a signing request
// targets.
package intent

import (
	"strings"

	"github.com/Peterleoo/Livora/internal/entity"
)

type Kind int

const (
	KindQuery Kind = iota
	KindSign
)

// Intent is the resolved classification of one user turn. Target is set only
// for KindSign.
type Intent struct {
	Kind   Kind
	Target *entity.Listing
}

// signKeywords flag a turn as a signing request. A single hit anywhere in the
// text is enough.
var signKeywords = []string{"签", "租", "定", "sign", "book", "contract"}

// ordinalGroups map ordinal phrasings to an index into the remembered
// candidate set. Groups are checked in order and the first hit wins.
var ordinalGroups = []struct {
	index    int
	phrasing []string
}{
	{0, []string{"第一", "1", "first", "这套"}},
	{1, []string{"第二", "2", "second"}},
	{2, []string{"第三", "3", "third"}},
}

// Resolve classifies the turn. A signing request only resolves when the turn
// names an ordinal that lands inside the remembered candidates, or when
// exactly one candidate is remembered. Anything unresolvable is a query.
func Resolve(text string, remembered []entity.Listing) Intent {
	lower := strings.ToLower(text)

	if !containsAny(lower, signKeywords) || len(remembered) == 0 {
		return Intent{Kind: KindQuery}
	}

	// A lone candidate wins regardless of ordinal wording.
	target := -1
	if len(remembered) == 1 {
		target = 0
	} else {
		for _, g := range ordinalGroups {
			if containsAny(lower, g.phrasing) {
				target = g.index
				break
			}
		}
	}

	if target < 0 || target >= len(remembered) {
		return Intent{Kind: KindQuery}
	}
	l := remembered[target]
	return Intent{Kind: KindSign, Target: &l}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
