package v1

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/parley/internal/parlor/service/chat/domain/entity"
	"github.com/kiosk404/parley/pkg/utils/json"
)

func getJSON(t *testing.T, g http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func TestConversations_List(t *testing.T) {
	svc := &fakeChatService{
		summaries: []*entity.Summary{
			{ID: "c2", Topic: "newer", LastMessage: "tail", MessageCount: 4, CreatedAt: time.Now()},
			{ID: "c1", Topic: "older", MessageCount: 2, CreatedAt: time.Now().Add(-time.Hour)},
		},
	}
	g := newTestRouter(svc)

	w := getJSON(t, g, "/v1/conversations")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ConversationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Conversations, 2)
	assert.Equal(t, "c2", resp.Conversations[0].ID)
	assert.Equal(t, "tail", resp.Conversations[0].LastMessage)
	assert.Equal(t, 2, resp.Conversations[1].MessageCount)
}

func TestConversations_ListEmpty(t *testing.T) {
	g := newTestRouter(&fakeChatService{})

	w := getJSON(t, g, "/v1/conversations")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ConversationListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Conversations)
	assert.Empty(t, resp.Conversations)
}

func TestConversations_Get(t *testing.T) {
	conv := &entity.Conversation{
		ID:        "c1",
		Topic:     "retrieval",
		CreatedAt: time.Now(),
	}
	conv.Append(
		entity.NewAgentMessage("GPT-4", "first", 1),
		entity.NewUserMessage("steer", 1),
	)
	svc := &fakeChatService{conversations: map[string]*entity.Conversation{"c1": conv}}
	g := newTestRouter(svc)

	w := getJSON(t, g, "/v1/conversations/c1")
	require.Equal(t, http.StatusOK, w.Code)

	var resp ConversationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c1", resp.ID)
	assert.Equal(t, "retrieval", resp.Topic)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "GPT-4", resp.Messages[0].Author)
	assert.Equal(t, "first", resp.Messages[0].Text)
	assert.Equal(t, entity.AuthorUser, resp.Messages[1].Author)
}

func TestConversations_GetMissingIs404(t *testing.T) {
	g := newTestRouter(&fakeChatService{conversations: map[string]*entity.Conversation{}})

	w := getJSON(t, g, "/v1/conversations/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrConversationNotFound, resp.Code)
}

func TestUsage_Report(t *testing.T) {
	svc := &fakeChatService{
		usage: &entity.UsageReport{
			Conversations: 2,
			TotalMessages: 7,
			Agents: []entity.AgentUsage{
				{Name: "Claude", Messages: 3, EstimatedTokens: 120, EstimatedCost: 0.0018},
				{Name: "GPT-4", Messages: 4, EstimatedTokens: 200, EstimatedCost: 0.006},
			},
		},
	}
	g := newTestRouter(svc)

	w := getJSON(t, g, "/v1/usage")
	require.Equal(t, http.StatusOK, w.Code)

	var resp UsageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Conversations)
	assert.Equal(t, 7, resp.TotalMessages)
	require.Len(t, resp.Agents, 2)
	assert.Equal(t, "Claude", resp.Agents[0].Name)
	assert.Equal(t, int64(120), resp.Agents[0].EstimatedTokens)
}
