package retrieval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/pkg/catalog"
)

func shenzhenPool() []entity.Listing {
	var pool []entity.Listing
	for _, l := range catalog.Seed() {
		if l.City == "深圳市" {
			pool = append(pool, l)
		}
	}
	return pool
}

func TestRetrieve_KeywordRules(t *testing.T) {
	pool := shenzhenPool()

	tests := []struct {
		name    string
		query   string
		wantIds []string
	}{
		{
			name:    "district nanshan matches all nanshan listings",
			query:   "南山有什么房子",
			wantIds: []string{"1", "4", "6"},
		},
		{
			name:    "district futian",
			query:   "福田的房源",
			wantIds: []string{"5"},
		},
		{
			name:    "two bedrooms",
			query:   "想要两室的",
			wantIds: []string{"1", "5"},
		},
		{
			name:    "cheap means under 9000",
			query:   "有便宜点的吗",
			wantIds: []string{"4"},
		},
		{
			name:    "sea view tag",
			query:   "海景房",
			wantIds: []string{"6"},
		},
		{
			name:    "pet friendly facility",
			query:   "可以养宠物吗",
			wantIds: []string{"4"},
		},
		{
			name:    "combined district and budget",
			query:   "南山 便宜",
			wantIds: []string{"1", "4", "6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Retrieve(tt.query, pool)

			ids := make([]string, 0, len(got))
			for _, l := range got {
				ids = append(ids, l.Id)
			}
			assert.Equal(t, tt.wantIds, ids)
		})
	}
}

func TestRetrieve_FallbackSubstring(t *testing.T) {
	pool := shenzhenPool()

	// Exact substring of a title.
	got := Retrieve("华润城", pool)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].Id)

	// Long query falls back to its first two runes.
	got = Retrieve("后海附近通勤方便的", pool)
	require.Len(t, got, 1)
	assert.Equal(t, "4", got[0].Id)
}

func TestRetrieve_EmptyResultIsValid(t *testing.T) {
	got := Retrieve("火星基地", shenzhenPool())
	assert.Empty(t, got)
}

func TestRetrieve_DeterministicAndOrderPreserving(t *testing.T) {
	pool := shenzhenPool()

	first := Retrieve("南山", pool)
	second := Retrieve("南山", pool)
	require.Equal(t, first, second)

	// Result order follows pool order, not match strength.
	var poolIdx []int
	for _, l := range first {
		for i := range pool {
			if pool[i].Id == l.Id {
				poolIdx = append(poolIdx, i)
			}
		}
	}
	assert.IsIncreasing(t, poolIdx)
}

func TestRetrieve_DoesNotMutatePool(t *testing.T) {
	pool := shenzhenPool()
	before := append([]entity.Listing(nil), pool...)

	Retrieve("便宜", pool)

	assert.Equal(t, before, pool)
}
