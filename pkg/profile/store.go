// Package profile persists the active city and user preferences read by the
// system prompt builder. State is stored whole under one key; the assistant
// core receives it as an explicit value per turn, never as ambient state.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/pkg/kv"
)

// Preferences captures what the user told the onboarding flow.
type Preferences struct {
	WorkLocation  string   `json:"work_location"`
	BudgetMin     int      `json:"budget_min"`
	BudgetMax     int      `json:"budget_max"`
	LifestyleTags []string `json:"lifestyle_tags"`
	CommuteMethod string   `json:"commute_method"` // SUBWAY, TAXI, WALK
}

// Profile is the persisted per-user assistant state.
type Profile struct {
	City        string      `json:"city"`
	Preferences Preferences `json:"preferences"`
}

type Store struct {
	mu          sync.Mutex
	storage     kv.Store
	defaultCity string
}

func NewStore(storage kv.Store, defaultCity string) *Store {
	return &Store{storage: storage, defaultCity: defaultCity}
}

// Get returns the stored profile, falling back to the default city when
// nothing has been saved yet.
func (s *Store) Get(ctx context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.storage.Get(ctx, constant.UserProfileStorageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return Profile{City: s.defaultCity}, nil
	}
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	if p.City == "" {
		p.City = s.defaultCity
	}
	return p, nil
}

// Set persists the profile whole.
func (s *Store) Set(ctx context.Context, p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.storage.Set(ctx, constant.UserProfileStorageKey, data)
}
