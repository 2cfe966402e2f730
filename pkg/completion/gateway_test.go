package completion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Peterleoo/Livora/internal/constant"
	"github.com/Peterleoo/Livora/internal/entity"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// testPolicy keeps retry counts but drops the delays so tests run fast.
func testPolicy() RetryPolicy {
	p := DefaultRetryPolicy()
	p.Delay = func(Class, int) time.Duration { return 0 }
	return p
}

func completionBody(text string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"content":%q}}]}`, text)
}

func newTestGateway(baseURL string) *Gateway {
	provider := NewOpenAIProvider("test-key", baseURL, "test-model", 5*time.Second)
	return NewGateway(provider, testPolicy(), nopLogger{})
}

func TestComplete_RetriesOverloadThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, completionBody("为您推荐南山的房源"))
	}))
	defer srv.Close()

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "南山有什么", nil)

	assert.Equal(t, "为您推荐南山的房源", got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestComplete_OverloadExhaustedReturnsFallback(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "hi", nil)

	assert.Equal(t, constant.CompletionUnavailableReply, got)
	assert.EqualValues(t, 3, calls.Load())
}

func TestComplete_RateLimitIsTerminalWithQuotaMessage(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "hi", nil)

	assert.Equal(t, constant.CompletionQuotaExceededReply, got)
	assert.EqualValues(t, 1, calls.Load(), "rate limit must not be retried")
}

func TestComplete_OtherFailureIsTerminalWithGenericMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "hi", nil)

	assert.Equal(t, constant.CompletionUnavailableReply, got)
}

func TestComplete_NetworkFailureRetriesOnceThenFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens: every dial fails

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "hi", nil)

	assert.Equal(t, constant.CompletionNetworkErrorReply, got)
}

func TestComplete_EmptyContentGetsFallbackReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	got := newTestGateway(srv.URL).Complete(context.Background(), "system", nil, "hi", nil)

	assert.Equal(t, constant.CompletionEmptyReply, got)
}

func TestComplete_RequestShape(t *testing.T) {
	var captured chatRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, completionBody("ok"))
	}))
	defer srv.Close()

	history := []entity.Message{
		entity.NewTextMessage(entity.MessageSenderUser, "南山有什么房"),
		entity.NewListingCardsMessage([]entity.Listing{
			{Id: "4", Title: "南山中心", Price: 7800, Location: "南山区 · 后海"},
		}),
	}
	retrieved := []entity.Listing{{
		Id: "4", Title: "南山中心", Price: 7800, Location: "南山区 · 后海",
		Tags: []string{"独卫", "可养宠"},
	}}

	newTestGateway(srv.URL).Complete(context.Background(), "系统提示", history, "便宜点的呢", retrieved)

	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "test-model", captured.Model)
	require.Len(t, captured.Messages, 4)

	assert.Equal(t, Message{Role: "system", Content: "系统提示"}, captured.Messages[0])
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "南山有什么房", captured.Messages[1].Content)

	// The cards turn is flattened into a structured note.
	assert.Equal(t, "assistant", captured.Messages[2].Role)
	assert.Contains(t, captured.Messages[2].Content, "已向用户展示以下房源卡片")
	assert.Contains(t, captured.Messages[2].Content, `"id":"4"`)
	assert.Contains(t, captured.Messages[2].Content, `"price":7800`)
	assert.NotContains(t, captured.Messages[2].Content, `"features"`)

	// The user turn carries the retrieved context excerpt, tags included.
	last := captured.Messages[3]
	assert.Equal(t, "user", last.Role)
	assert.True(t, strings.HasPrefix(last.Content, "便宜点的呢"))
	assert.Contains(t, last.Content, "检索到的相关房源数据")
	assert.Contains(t, last.Content, `"title":"南山中心"`)
	assert.Contains(t, last.Content, `"features":"独卫, 可养宠"`)
}

func TestComplete_NoContextNoteWhenRetrievalEmpty(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, completionBody("ok"))
	}))
	defer srv.Close()

	newTestGateway(srv.URL).Complete(context.Background(), "系统提示", nil, "讲个笑话", nil)

	require.Len(t, captured.Messages, 2)
	assert.Contains(t, captured.Messages[1].Content, "未检索到特定房源")
}

func TestComplete_HistoryWindowKeepsLastTen(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, completionBody("ok"))
	}))
	defer srv.Close()

	var history []entity.Message
	for i := 0; i < 15; i++ {
		history = append(history, entity.NewTextMessage(entity.MessageSenderUser, fmt.Sprintf("turn %d", i)))
	}

	newTestGateway(srv.URL).Complete(context.Background(), "sys", history, "now", nil)

	// system + 10 history turns + current user turn
	require.Len(t, captured.Messages, 12)
	assert.Equal(t, "turn 5", captured.Messages[1].Content)
	assert.Equal(t, "turn 14", captured.Messages[10].Content)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"nil is success", nil, ClassSuccess},
		{"503 is overloaded", &StatusError{StatusCode: 503}, ClassOverloaded},
		{"502 is overloaded", &StatusError{StatusCode: 502}, ClassOverloaded},
		{"429 is rate limited", &StatusError{StatusCode: 429}, ClassRateLimited},
		{"400 is plain failure", &StatusError{StatusCode: 400}, ClassFailure},
		{"non-status error is network", fmt.Errorf("dial tcp: refused"), ClassNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
