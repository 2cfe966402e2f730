package service

import (
	"context"
	"fmt"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/dto"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/internal/pkg/logger"
	"github.com/Peterleoo/Livora/internal/repository/memory"
	"github.com/Peterleoo/Livora/pkg/catalog"
	"github.com/Peterleoo/Livora/pkg/completion"
	"github.com/Peterleoo/Livora/pkg/intent"
	"github.com/Peterleoo/Livora/pkg/profile"
	"github.com/Peterleoo/Livora/pkg/retrieval"
	"github.com/Peterleoo/Livora/pkg/session"
)

var (
	ErrConversationNotFound = fmt.Errorf("conversation not found")
	ErrTurnInFlight         = fmt.Errorf("a turn is already in flight for this conversation")
	ErrSessionNotFound      = fmt.Errorf("session not found")
)

type IAssistantService interface {
	StartConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error)
	SubmitTurn(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ResetConversation(ctx context.Context, conversationId string) error
}

type assistantService struct {
	conversations *memory.ConversationRepository
	sessions      *session.Store
	profiles      *profile.Store
	listings      *catalog.Catalog
	gateway       completion.Completer
	logger        logger.ILogger
}

func NewAssistantService(
	conversations *memory.ConversationRepository,
	sessions *session.Store,
	profiles *profile.Store,
	listings *catalog.Catalog,
	gateway completion.Completer,
	log logger.ILogger,
) IAssistantService {
	return &assistantService{
		conversations: conversations,
		sessions:      sessions,
		profiles:      profiles,
		listings:      listings,
		gateway:       gateway,
		logger:        log,
	}
}

// StartConversation creates a fresh conversation, reopens a saved session, or
// starts one primed with a specific listing.
func (s *assistantService) StartConversation(ctx context.Context, req *dto.CreateConversationRequest) (*dto.CreateConversationResponse, error) {
	if req.SessionId != "" {
		rec, found, err := s.sessions.Get(ctx, req.SessionId)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if !found {
			return nil, ErrSessionNotFound
		}
		conv := entity.RestoreConversation(rec.Id, rec.Messages)
		s.conversations.Save(conv)
		return &dto.CreateConversationResponse{
			ConversationId: conv.Id,
			SessionId:      rec.Id,
			Messages:       conv.Messages(),
		}, nil
	}

	conv := entity.NewConversation()
	if req.ListingId != "" {
		if l, ok := s.listings.ById(req.ListingId); ok {
			conv.RememberCandidates([]entity.Listing{l})
		}
	}
	s.conversations.Save(conv)
	return &dto.CreateConversationResponse{
		ConversationId: conv.Id,
		Messages:       conv.Messages(),
	}, nil
}

// SubmitTurn processes one user utterance end-to-end: intent resolution
// first, then retrieval and the completion call, then the session merge.
// Replies carry the new assistant messages only.
func (s *assistantService) SubmitTurn(ctx context.Context, req *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	conv, found := s.conversations.Get(req.ConversationId)
	if !found {
		return nil, ErrConversationNotFound
	}

	epoch, ok := conv.BeginTurn()
	if !ok {
		return nil, ErrTurnInFlight
	}
	defer conv.EndTurn()

	conv.Append(epoch, entity.NewTextMessage(entity.MessageSenderUser, req.Text))

	// Signing intent short-circuits retrieval and the completion call.
	if resolved := intent.Resolve(req.Text, conv.Memory()); resolved.Kind == intent.KindSign {
		signMsg := entity.NewSignCardMessage(
			fmt.Sprintf(constant.SignCardTextTemplate, resolved.Target.Title),
			*resolved.Target,
		)
		conv.Append(epoch, signMsg)
		s.saveSession(ctx, conv)
		return &dto.SendChatResponse{
			ConversationId: conv.Id,
			SessionId:      conv.CurrentSessionId(),
			Replies:        []entity.Message{signMsg},
		}, nil
	}

	prof, err := s.profiles.Get(ctx)
	if err != nil {
		s.logger.Warn("assistant", "Failed to load profile, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
	}

	retrieved := retrieval.Retrieve(req.Text, s.listings.ForCity(prof.City))
	conv.RememberCandidates(retrieved)

	history := conv.Messages()
	if len(history) > 0 {
		// The current user text goes in the user turn, not the history.
		history = history[:len(history)-1]
	}

	replyText := s.gateway.Complete(ctx, buildSystemPrompt(prof), history, req.Text, retrieved)

	replies := []entity.Message{entity.NewTextMessage(entity.MessageSenderAssistant, replyText)}
	if len(retrieved) > 0 {
		replies = append(replies, entity.NewListingCardsMessage(retrieved))
	}

	// A reset while the completion call was in flight invalidates the epoch;
	// the late reply is discarded rather than applied to the new contents.
	if !conv.Append(epoch, replies...) {
		s.logger.Info("assistant", "Discarding late completion after reset", map[string]interface{}{
			"conversation_id": conv.Id,
		})
		return &dto.SendChatResponse{ConversationId: conv.Id}, nil
	}

	s.saveSession(ctx, conv)
	return &dto.SendChatResponse{
		ConversationId: conv.Id,
		SessionId:      conv.CurrentSessionId(),
		Replies:        replies,
	}, nil
}

// ResetConversation clears the conversation and detaches it from its session.
func (s *assistantService) ResetConversation(_ context.Context, conversationId string) error {
	conv, found := s.conversations.Get(conversationId)
	if !found {
		return ErrConversationNotFound
	}
	conv.Reset()
	return nil
}

// buildSystemPrompt constrains the model to the active city, with the user's
// onboarded preferences appended when present.
func buildSystemPrompt(prof profile.Profile) string {
	prompt := fmt.Sprintf(constant.AssistantSystemPromptTemplate, prof.City)
	prefs := prof.Preferences
	if prefs.WorkLocation != "" && prefs.BudgetMax > 0 {
		prompt += fmt.Sprintf(constant.AssistantPreferenceNoteTemplate,
			prefs.WorkLocation, prefs.BudgetMin, prefs.BudgetMax)
	}
	return prompt
}

// saveSession merges the full message sequence into the session collection.
// Persistence failures are logged, not surfaced: the in-memory record is
// still live, so the conversation keeps its id and the next turn merges
// into the same record rather than forking a duplicate.
func (s *assistantService) saveSession(ctx context.Context, conv *entity.Conversation) {
	id, err := s.sessions.Save(ctx, conv.Messages(), conv.CurrentSessionId())
	if id != "" {
		conv.SetSessionId(id)
	}
	if err != nil {
		s.logger.Error("assistant", "Failed to persist session", map[string]interface{}{
			"conversation_id": conv.Id,
			"error":           err.Error(),
		})
	}
}
