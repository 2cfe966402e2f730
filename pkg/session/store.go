// Package session persists conversations as named, previewed records. The
// whole collection lives under one storage key, ordered most-recently-touched
// first and capped; a save either merges into an existing record or creates a
// new one.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/pkg/kv"
)

type Store struct {
	mu      sync.Mutex
	storage kv.Store

	records []entity.SessionRecord // front = most recently touched
	loaded  bool
}

func NewStore(storage kv.Store) *Store {
	return &Store{storage: storage}
}

// load reads the persisted collection once. A missing key means an empty
// collection, not an error. Callers hold s.mu.
func (s *Store) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	data, err := s.storage.Get(ctx, constant.SessionCollectionStorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

// persist writes the full collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.records)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, constant.SessionCollectionStorageKey, data)
}

// Save merges messages into the record with the given session id, or creates
// a new record when the id is empty or unknown. It returns the effective
// session id. Saving an empty message list is a no-op returning "".
//
// The in-memory collection is authoritative: when persisting fails, the
// merged or created record stands and its id is returned alongside the
// error, so the caller keeps addressing the same record on later saves
// instead of forking duplicates while storage is down.
func (s *Store) Save(ctx context.Context, messages []entity.Message, sessionId string) (string, error) {
	if len(messages) == 0 {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return "", err
	}

	title := deriveTitle(messages)
	preview := derivePreview(messages)

	if idx := s.indexOf(sessionId); idx != -1 {
		rec := s.records[idx]
		if rec.Title == constant.SessionTitlePlaceholder {
			rec.Title = title
		}
		rec.Preview = preview
		rec.Messages = append([]entity.Message(nil), messages...)
		rec.Date = constant.SessionDateJustNow

		// Touch to front.
		s.records = append(s.records[:idx], s.records[idx+1:]...)
		s.records = append([]entity.SessionRecord{rec}, s.records...)

		return rec.Id, s.persist(ctx)
	}

	rec := entity.SessionRecord{
		Id:       uuid.NewString(),
		Title:    title,
		Preview:  preview,
		Date:     constant.SessionDateToday,
		Tags:     []string{constant.SessionDefaultTag},
		Messages: append([]entity.Message(nil), messages...),
	}
	s.records = append([]entity.SessionRecord{rec}, s.records...)
	if len(s.records) > constant.SessionRetentionCap {
		s.records = s.records[:constant.SessionRetentionCap]
	}

	return rec.Id, s.persist(ctx)
}

// All returns the collection, most recently touched first.
func (s *Store) All(ctx context.Context) ([]entity.SessionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return append([]entity.SessionRecord(nil), s.records...), nil
}

// Get looks one record up by id.
func (s *Store) Get(ctx context.Context, id string) (entity.SessionRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return entity.SessionRecord{}, false, err
	}
	if idx := s.indexOf(id); idx != -1 {
		return s.records[idx], true, nil
	}
	return entity.SessionRecord{}, false, nil
}

// DeleteOne removes the record with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *Store) DeleteOne(ctx context.Context, id string) error {
	return s.DeleteMany(ctx, []string{id})
}

// DeleteMany removes every record whose id is in ids, then persists the
// remainder. Idempotent.
func (s *Store) DeleteMany(ctx context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	kept := s.records[:0]
	changed := false
	for _, rec := range s.records {
		if drop[rec.Id] {
			changed = true
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept

	if !changed {
		return nil
	}
	return s.persist(ctx)
}

// Update replaces a record in place without touching it to the front. Used
// by the signed-state rewrite, which is bookkeeping rather than activity.
func (s *Store) Update(ctx context.Context, rec entity.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.load(ctx); err != nil {
		return err
	}
	idx := s.indexOf(rec.Id)
	if idx == -1 {
		return nil
	}
	s.records[idx] = rec
	return s.persist(ctx)
}

// indexOf finds a record by id. Callers hold s.mu.
func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.records {
		if s.records[i].Id == id {
			return i
		}
	}
	return -1
}

func deriveTitle(messages []entity.Message) string {
	for i := range messages {
		if messages[i].Sender == entity.MessageSenderUser && messages[i].Text != "" {
			return truncateRunes(messages[i].Text, constant.SessionTitleMaxRunes)
		}
	}
	return constant.SessionTitlePlaceholder
}

func derivePreview(messages []entity.Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Sender == entity.MessageSenderAssistant {
			if messages[i].Text == "" {
				break
			}
			return truncateRunes(messages[i].Text, constant.SessionPreviewMaxRunes)
		}
	}
	return constant.SessionPreviewPlaceholder
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
