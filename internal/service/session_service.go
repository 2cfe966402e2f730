package service

import (
	"context"
	"fmt"

	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/pkg/session"
)

type ISessionService interface {
	List(ctx context.Context) ([]dto.SessionSummaryResponse, error)
	Show(ctx context.Context, id string) (*entity.SessionRecord, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) error
}

type sessionService struct {
	sessions *session.Store
}

func NewSessionService(sessions *session.Store) ISessionService {
	return &sessionService{sessions: sessions}
}

func (s *sessionService) List(ctx context.Context) ([]dto.SessionSummaryResponse, error) {
	records, err := s.sessions.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	out := make([]dto.SessionSummaryResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.SessionSummaryResponse{
			Id:           rec.Id,
			Title:        rec.Title,
			Preview:      rec.Preview,
			Date:         rec.Date,
			Tags:         rec.Tags,
			MessageCount: len(rec.Messages),
		})
	}
	return out, nil
}

func (s *sessionService) Show(ctx context.Context, id string) (*entity.SessionRecord, error) {
	rec, found, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !found {
		return nil, ErrSessionNotFound
	}
	return &rec, nil
}

func (s *sessionService) Delete(ctx context.Context, id string) error {
	return s.sessions.DeleteOne(ctx, id)
}

func (s *sessionService) DeleteMany(ctx context.Context, ids []string) error {
	return s.sessions.DeleteMany(ctx, ids)
}
