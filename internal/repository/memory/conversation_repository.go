package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Peterleoo/Livora/internal/entity"
)

// ConversationRepository keeps live conversations in process memory. Entries
// expire after a period of inactivity; the durable record is the session
// collection, not this cache.
type ConversationRepository struct {
	cache *cache.Cache
}

func NewConversationRepository() *ConversationRepository {
	// Conversations idle for 2 hours are dropped; sweep every 10 minutes.
	c := cache.New(2*time.Hour, 10*time.Minute)
	return &ConversationRepository{
		cache: c,
	}
}

func (r *ConversationRepository) Save(conv *entity.Conversation) {
	r.cache.Set(conv.Id, conv, cache.DefaultExpiration)
}

func (r *ConversationRepository) Get(conversationId string) (*entity.Conversation, bool) {
	if x, found := r.cache.Get(conversationId); found {
		return x.(*entity.Conversation), true
	}
	return nil, false
}

func (r *ConversationRepository) Delete(conversationId string) {
	r.cache.Delete(conversationId)
}

// All returns every live conversation. Used by the signed-state consumer to
// rewrite contract cards in open conversations.
func (r *ConversationRepository) All() []*entity.Conversation {
	items := r.cache.Items()
	out := make([]*entity.Conversation, 0, len(items))
	for _, item := range items {
		out = append(out, item.Object.(*entity.Conversation))
	}
	return out
}
