// Package client is the HTTP client for the parleyd gateway.
package client

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kiosk404/parley/pkg/utils/json"
)

// StreamRequest is the request body for /v1/chat/stream.
type StreamRequest struct {
	Topic          string `json:"topic"`
	Turns          int    `json:"turns,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	IsContinuation bool   `json:"isContinuation,omitempty"`
}

// Event is a single frame of the conversation stream.
type Event struct {
	Type string    `json:"type"`
	Data EventData `json:"data"`
}

// EventData carries the payload fields of an Event; unused fields stay zero.
type EventData struct {
	Topic          string `json:"topic,omitempty"`
	Turns          int    `json:"turns,omitempty"`
	AI             string `json:"ai,omitempty"`
	Message        string `json:"message,omitempty"`
	Turn           int    `json:"turn,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	TotalMessages  int    `json:"total_messages,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Message is a stored transcript message.
type Message struct {
	Author    string    `json:"ai"`
	Text      string    `json:"message"`
	Turn      int       `json:"turn"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is a full stored transcript.
type Conversation struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
	Messages  []Message `json:"messages"`
}

// Summary is one row of the conversation listing.
type Summary struct {
	ID           string    `json:"id"`
	Topic        string    `json:"topic"`
	LastMessage  string    `json:"last_message"`
	MessageCount int       `json:"message_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// AgentUsage is the per-agent usage aggregation row.
type AgentUsage struct {
	Name            string  `json:"ai"`
	Messages        int     `json:"messages"`
	EstimatedTokens int64   `json:"estimated_tokens"`
	EstimatedCost   float64 `json:"estimated_cost_usd"`
}

// UsageReport is the response of /v1/usage.
type UsageReport struct {
	Conversations int          `json:"conversations"`
	TotalMessages int          `json:"total_messages"`
	Agents        []AgentUsage `json:"agents"`
}

type stopResponse struct {
	Success bool `json:"success"`
}

type errResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client talks to the parleyd /v1 API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New creates a new gateway client.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		// Streams run for minutes; no client-side timeout.
		httpClient = &http.Client{}
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

// EventCallback is called for each stream event as it arrives.
type EventCallback func(ev Event)

// StreamChat opens a conversation stream and calls cb for each event
// until the [DONE] sentinel or stream end.
func (c *Client) StreamChat(ctx context.Context, req StreamRequest, cb EventCallback) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v1/chat/stream", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	c.setAuth(httpReq)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	scanner := bufio.NewScanner(resp.Body)
	// Increase buffer for large frames
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")
		if data == "[DONE]" {
			break
		}

		var ev Event
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			continue
		}
		if cb != nil {
			cb(ev)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}

	return nil
}

// StopChat stops the named conversation, or all when id is empty.
func (c *Client) StopChat(ctx context.Context, conversationID string) (bool, error) {
	body, err := json.Marshal(map[string]string{"conversationId": conversationID})
	if err != nil {
		return false, fmt.Errorf("marshal request: %w", err)
	}

	var out stopResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/chat/stop", bytes.NewReader(body), &out); err != nil {
		return false, err
	}

	return out.Success, nil
}

// ListConversations fetches the stored conversation summaries, newest first.
func (c *Client) ListConversations(ctx context.Context) ([]Summary, error) {
	var out struct {
		Conversations []Summary `json:"conversations"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/conversations", nil, &out); err != nil {
		return nil, err
	}

	return out.Conversations, nil
}

// GetConversation fetches a full transcript by id.
func (c *Client) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var out Conversation
	if err := c.doJSON(ctx, http.MethodGet, "/v1/conversations/"+id, nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Usage fetches the locally-estimated usage report.
func (c *Client) Usage(ctx context.Context) (*UsageReport, error) {
	var out UsageReport
	if err := c.doJSON(ctx, http.MethodGet, "/v1/usage", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuth(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

func (c *Client) setAuth(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func decodeError(resp *http.Response) error {
	respBody, _ := io.ReadAll(resp.Body)

	var er errResponse
	if err := json.Unmarshal(respBody, &er); err == nil && er.Message != "" {
		return fmt.Errorf("server returned %d: %s (code %d)", resp.StatusCode, er.Message, er.Code)
	}

	return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(respBody))
}
