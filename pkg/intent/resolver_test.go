package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Peterleoo/Livora/internal/entity"
)

func listings(ids ...string) []entity.Listing {
	out := make([]entity.Listing, 0, len(ids))
	for _, id := range ids {
		out = append(out, entity.Listing{Id: id, Title: "房源" + id})
	}
	return out
}

func TestResolve_SignIntent(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		memory     []entity.Listing
		wantKind   Kind
		wantTarget string
	}{
		{
			name:       "single memory resolves unconditionally",
			text:       "帮我签约吧",
			memory:     listings("a"),
			wantKind:   KindSign,
			wantTarget: "a",
		},
		{
			name:       "single memory ignores ordinal wording",
			text:       "我要租第三套",
			memory:     listings("a"),
			wantKind:   KindSign,
			wantTarget: "a",
		},
		{
			name:       "demonstrative selects the first",
			text:       "帮我签这套",
			memory:     listings("a", "b", "c"),
			wantKind:   KindSign,
			wantTarget: "a",
		},
		{
			name:       "second ordinal selects memory[1]",
			text:       "就定第二套吧",
			memory:     listings("a", "b", "c"),
			wantKind:   KindSign,
			wantTarget: "b",
		},
		{
			name:       "numeric ordinal",
			text:       "sign number 3",
			memory:     listings("a", "b", "c"),
			wantKind:   KindSign,
			wantTarget: "c",
		},
		{
			name:       "english keyword and ordinal",
			text:       "book the second one",
			memory:     listings("a", "b", "c"),
			wantKind:   KindSign,
			wantTarget: "b",
		},
		{
			name:     "no keyword is a query",
			text:     "南山有什么推荐",
			memory:   listings("a", "b"),
			wantKind: KindQuery,
		},
		{
			name:     "keyword without memory is a query",
			text:     "帮我签约",
			memory:   nil,
			wantKind: KindQuery,
		},
		{
			name:     "unresolvable ordinal fails open to query",
			text:     "帮我签第五套",
			memory:   listings("a", "b", "c"),
			wantKind: KindQuery,
		},
		{
			name:     "ordinal out of memory range fails open",
			text:     "签第三套",
			memory:   listings("a", "b"),
			wantKind: KindQuery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.text, tt.memory)

			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind == KindSign {
				require.NotNil(t, got.Target)
				assert.Equal(t, tt.wantTarget, got.Target.Id)
			} else {
				assert.Nil(t, got.Target)
			}
		})
	}
}

func TestResolve_TargetIsACopy(t *testing.T) {
	memory := listings("a")

	got := Resolve("租这套", memory)
	require.NotNil(t, got.Target)

	got.Target.Title = "mutated"
	assert.Equal(t, "房源a", memory[0].Title)
}
