package session

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/pkg/kv"
)

// flakyStorage fails every Set while down is true.
type flakyStorage struct {
	kv.Store
	down bool
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.down {
		return fmt.Errorf("storage unavailable")
	}
	return f.Store.Set(ctx, key, value)
}

func turn(userText, assistantText string) []entity.Message {
	return []entity.Message{
		entity.NewTextMessage(entity.MessageSenderUser, userText),
		entity.NewTextMessage(entity.MessageSenderAssistant, assistantText),
	}
}

func TestSave_CreateDerivesTitleAndPreview(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	id, err := store.Save(ctx, turn("南山有什么好房子", "为您找到了三套房源"), "")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, id, rec.Id)
	assert.Equal(t, "南山有什么好房子", rec.Title)
	assert.Equal(t, "为您找到了三套房源", rec.Preview)
	assert.Equal(t, constant.SessionDateToday, rec.Date)
	assert.Equal(t, []string{constant.SessionDefaultTag}, rec.Tags)
	assert.Len(t, rec.Messages, 2)
}

func TestSave_TruncatesLongTitleAndPreview(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	longUser := strings.Repeat("找", 20)
	longAssistant := strings.Repeat("答", 40)

	id, err := store.Save(ctx, turn(longUser, longAssistant), "")
	require.NoError(t, err)

	rec, found, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, strings.Repeat("找", constant.SessionTitleMaxRunes)+"...", rec.Title)
	assert.Equal(t, strings.Repeat("答", constant.SessionPreviewMaxRunes)+"...", rec.Preview)
}

func TestSave_PlaceholdersWithoutText(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	// Assistant-only sequence: no user message, no assistant text.
	msgs := []entity.Message{
		entity.NewListingCardsMessage([]entity.Listing{{Id: "1", Title: "房源一"}}),
	}
	id, err := store.Save(ctx, msgs, "")
	require.NoError(t, err)

	rec, found, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, constant.SessionTitlePlaceholder, rec.Title)
	assert.Equal(t, constant.SessionPreviewPlaceholder, rec.Preview)
}

func TestSave_EmptyMessagesIsNoOp(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	id, err := store.Save(ctx, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "", id)

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSave_MergeKeepsIdAndTitle(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	first := turn("找福田的两居室", "好的")
	id, err := store.Save(ctx, first, "")
	require.NoError(t, err)

	updated := append(first, turn("预算一万以内", "为您筛选如下")...)
	mergedId, err := store.Save(ctx, updated, id)
	require.NoError(t, err)
	assert.Equal(t, id, mergedId)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "找福田的两居室", rec.Title)
	assert.Equal(t, "为您筛选如下", rec.Preview)
	assert.Equal(t, constant.SessionDateJustNow, rec.Date)
	assert.Equal(t, updated, rec.Messages)
}

func TestSave_MergeReplacesPlaceholderTitle(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	// First save has no user message, so the title is the placeholder.
	cards := []entity.Message{
		entity.NewListingCardsMessage([]entity.Listing{{Id: "1"}}),
	}
	id, err := store.Save(ctx, cards, "")
	require.NoError(t, err)

	updated := append(cards, turn("这套多少钱", "7800一个月")...)
	_, err = store.Save(ctx, updated, id)
	require.NoError(t, err)

	rec, found, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "这套多少钱", rec.Title)
}

func TestSave_MergeMovesRecordToFront(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	firstId, err := store.Save(ctx, turn("第一个会话", "好"), "")
	require.NoError(t, err)
	secondId, err := store.Save(ctx, turn("第二个会话", "好"), "")
	require.NoError(t, err)

	_, err = store.Save(ctx, turn("第一个会话", "更新了"), firstId)
	require.NoError(t, err)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, firstId, records[0].Id)
	assert.Equal(t, secondId, records[1].Id)
}

func TestSave_UnknownIdCreatesFreshRecord(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	id, err := store.Save(ctx, turn("你好", "你好"), "no-such-session")
	require.NoError(t, err)
	assert.NotEqual(t, "no-such-session", id)

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSave_RetentionCapEvictsOldest(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	ids := make([]string, 0, constant.SessionRetentionCap+1)
	for i := 0; i < constant.SessionRetentionCap+1; i++ {
		id, err := store.Save(ctx, turn(fmt.Sprintf("会话 %d", i), "好"), "")
		require.NoError(t, err)
		ids = append(ids, id)
	}

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, constant.SessionRetentionCap)

	// Most recent first, very first evicted.
	assert.Equal(t, ids[len(ids)-1], records[0].Id)
	for _, rec := range records {
		assert.NotEqual(t, ids[0], rec.Id)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	id, err := store.Save(ctx, turn("你好", "你好"), "")
	require.NoError(t, err)

	require.NoError(t, store.DeleteOne(ctx, id))
	require.NoError(t, store.DeleteOne(ctx, id))
	require.NoError(t, store.DeleteOne(ctx, "absent"))

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDeleteMany(t *testing.T) {
	store := NewStore(kv.NewMemoryStore())
	ctx := context.Background()

	a, _ := store.Save(ctx, turn("a", "x"), "")
	b, _ := store.Save(ctx, turn("b", "x"), "")
	c, _ := store.Save(ctx, turn("c", "x"), "")

	require.NoError(t, store.DeleteMany(ctx, []string{a, c, "absent"}))

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, b, records[0].Id)
}

func TestSave_StorageDownKeepsCollectionAuthoritative(t *testing.T) {
	backing := kv.NewMemoryStore()
	storage := &flakyStorage{Store: backing, down: true}
	store := NewStore(storage)
	ctx := context.Background()

	// First save fails to persist but still mints the record.
	first := turn("南山有什么好房子", "为您找到了一套")
	id, err := store.Save(ctx, first, "")
	require.Error(t, err)
	require.NotEmpty(t, id)

	// The next save of the same conversation merges into that record
	// instead of forking a duplicate.
	updated := append(first, turn("便宜点的呢", "这套价格合适")...)
	mergedId, err := store.Save(ctx, updated, id)
	require.Error(t, err)
	assert.Equal(t, id, mergedId)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].Id)
	assert.Len(t, records[0].Messages, 4)

	// Storage recovers: the next save durably writes the one record.
	storage.down = false
	_, err = store.Save(ctx, updated, id)
	require.NoError(t, err)

	reloaded := NewStore(backing)
	persisted, err := reloaded.All(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, id, persisted[0].Id)
}

func TestStore_PersistsAcrossInstances(t *testing.T) {
	storage := kv.NewMemoryStore()
	ctx := context.Background()

	first := NewStore(storage)
	id, err := first.Save(ctx, turn("持久化测试", "没问题"), "")
	require.NoError(t, err)

	// A second store over the same storage sees the saved collection.
	second := NewStore(storage)
	rec, found, err := second.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "持久化测试", rec.Title)
}
