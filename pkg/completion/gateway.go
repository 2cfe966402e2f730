package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/entity"
	"github.com/Peterleoo/Livora/internal/pkg/logger"
)

// historyWindow bounds how many trailing conversation messages are sent with
// each request.
const historyWindow = 10

// Completer is what orchestrators consume: one call in, displayable text out.
type Completer interface {
	Complete(ctx context.Context, systemPrompt string, history []entity.Message, userText string, retrievedContext []entity.Listing) string
}

// Gateway assembles the completion request for one turn and shields callers
// from transport failures: Complete always returns displayable text.
type Gateway struct {
	provider Provider
	policy   RetryPolicy
	logger   logger.ILogger
}

func NewGateway(provider Provider, policy RetryPolicy, log logger.ILogger) *Gateway {
	return &Gateway{
		provider: provider,
		policy:   policy,
		logger:   log,
	}
}

// listingExcerpt is the structured side-note shape given to the model so it
// can resolve references like "那第二套" conversationally. Features (the tags
// joined into one string) ride along only on the retrieved-context excerpt.
type listingExcerpt struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Price    int    `json:"price"`
	Location string `json:"location"`
	Features string `json:"features,omitempty"`
}

func excerptJSON(listings []entity.Listing) string {
	excerpts := make([]listingExcerpt, 0, len(listings))
	for _, l := range listings {
		excerpts = append(excerpts, listingExcerpt{
			Id:       l.Id,
			Title:    l.Title,
			Price:    l.Price,
			Location: l.Location,
		})
	}
	return marshalExcerpts(excerpts)
}

// contextExcerptJSON annotates the current user turn with the retrieved
// candidates, tags included, so the model can pitch the selling points.
func contextExcerptJSON(listings []entity.Listing) string {
	excerpts := make([]listingExcerpt, 0, len(listings))
	for _, l := range listings {
		excerpts = append(excerpts, listingExcerpt{
			Id:       l.Id,
			Title:    l.Title,
			Price:    l.Price,
			Location: l.Location,
			Features: strings.Join(l.Tags, ", "),
		})
	}
	return marshalExcerpts(excerpts)
}

func marshalExcerpts(excerpts []listingExcerpt) string {
	data, err := json.Marshal(excerpts)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Complete sends one turn to the completion service and returns the reply
// text. Transport failures are classified and mapped to user-facing fallback
// strings; the raw error never crosses this boundary.
func (g *Gateway) Complete(ctx context.Context, systemPrompt string, history []entity.Message, userText string, retrieved []entity.Listing) string {
	messages := g.buildMessages(systemPrompt, history, userText, retrieved)

	reply, err := callWithRetry(ctx, g.policy, func(ctx context.Context) (string, error) {
		return g.provider.Chat(ctx, messages)
	})
	if err != nil {
		class := Classify(err)
		g.logger.Error("completion", "Completion call failed", map[string]interface{}{
			"class": int(class),
			"error": err.Error(),
		})
		switch class {
		case ClassRateLimited:
			return constant.CompletionQuotaExceededReply
		case ClassNetwork:
			return constant.CompletionNetworkErrorReply
		default:
			return constant.CompletionUnavailableReply
		}
	}

	if strings.TrimSpace(reply) == "" {
		g.logger.Warn("completion", "Completion returned empty content", nil)
		return constant.CompletionEmptyReply
	}
	return reply
}

func (g *Gateway) buildMessages(systemPrompt string, history []entity.Message, userText string, retrieved []entity.Listing) []Message {
	messages := []Message{{Role: "system", Content: systemPrompt}}

	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, m := range history[start:] {
		content := historyContent(&m)
		if content == "" {
			continue
		}
		messages = append(messages, Message{Role: m.Sender, Content: content})
	}

	userTurn := userText
	if len(retrieved) > 0 {
		userTurn += fmt.Sprintf(constant.RetrievedContextNoteTemplate, contextExcerptJSON(retrieved))
	} else {
		userTurn += constant.NoRetrievedContextNote
	}
	messages = append(messages, Message{Role: "user", Content: userTurn})

	return messages
}

// historyContent flattens one history message to plain text. LISTING_CARDS
// turns become a structured note naming what was shown.
func historyContent(m *entity.Message) string {
	if m.Kind == entity.MessageKindListingCards {
		return fmt.Sprintf(constant.ShownListingsNoteTemplate, excerptJSON(m.Listings))
	}
	return m.Text
}
