package dto

import (
	"github.com/Peterleoo/Livora/internal/entity"
)

type CreateConversationRequest struct {
	// SessionId reopens a saved session; empty starts a fresh conversation.
	SessionId string `json:"session_id,omitempty"`
	// ListingId starts the conversation "about" one listing, priming the
	// recommendation memory.
	ListingId string `json:"listing_id,omitempty"`
}

type CreateConversationResponse struct {
	ConversationId string           `json:"conversation_id"`
	SessionId      string           `json:"session_id,omitempty"`
	Messages       []entity.Message `json:"messages"`
}

type SendChatRequest struct {
	ConversationId string `json:"conversation_id" validate:"required"`
	Text           string `json:"text" validate:"required"`
}

type SendChatResponse struct {
	ConversationId string           `json:"conversation_id"`
	SessionId      string           `json:"session_id"`
	Replies        []entity.Message `json:"replies"`
}

type SessionSummaryResponse struct {
	Id           string   `json:"id"`
	Title        string   `json:"title"`
	Preview      string   `json:"preview"`
	Date         string   `json:"date"`
	Tags         []string `json:"tags"`
	MessageCount int      `json:"message_count"`
}

type DeleteSessionsRequest struct {
	Ids []string `json:"ids" validate:"required,min=1"`
}

type SignListingResponse struct {
	ListingId    string `json:"listing_id"`
	Confirmation string `json:"confirmation"`
}

type UpdateProfileRequest struct {
	City          string   `json:"city" validate:"required"`
	WorkLocation  string   `json:"work_location,omitempty"`
	BudgetMin     int      `json:"budget_min,omitempty" validate:"min=0"`
	BudgetMax     int      `json:"budget_max,omitempty" validate:"min=0"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	CommuteMethod string   `json:"commute_method,omitempty" validate:"omitempty,oneof=SUBWAY TAXI WALK"`
}

type ProfileResponse struct {
	City          string   `json:"city"`
	WorkLocation  string   `json:"work_location,omitempty"`
	BudgetMin     int      `json:"budget_min,omitempty"`
	BudgetMax     int      `json:"budget_max,omitempty"`
	LifestyleTags []string `json:"lifestyle_tags,omitempty"`
	CommuteMethod string   `json:"commute_method,omitempty"`
}
