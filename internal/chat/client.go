package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultUpstreamURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultModel       = "google/gemini-2.5-flash"

	// Input bounds; the widget never sends more than this, anything bigger
	// is abuse or a bug.
	MaxMessages      = 50
	MaxMessageLength = 10000
)

const systemPrompt = `You are a helpful assistant for a premium hair systems retailer. You help customers choose between lace, skin and silk base systems, explain attachment and maintenance, and answer sizing and delivery questions for India.

Be helpful, empathetic, and professional. If asked about specific pricing, provide general ranges and encourage booking a consultation for exact quotes. For complex technical questions or complaints, suggest contacting the team directly.

Keep responses concise but informative. Use a warm, reassuring tone - many customers may feel self-conscious about hair loss.`

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ValidateMessages checks the client-supplied history before it reaches the
// upstream. Returns a human-readable reason on failure.
func ValidateMessages(messages []Message) error {
	if len(messages) == 0 {
		return fmt.Errorf("Messages array cannot be empty")
	}
	if len(messages) > MaxMessages {
		return fmt.Errorf("Too many messages. Maximum allowed: %d", MaxMessages)
	}
	for i, m := range messages {
		if m.Role != "user" && m.Role != "assistant" {
			return fmt.Errorf("Invalid role at message %d", i)
		}
		if m.Content == "" {
			return fmt.Errorf("Empty message content at message %d", i)
		}
		if len(m.Content) > MaxMessageLength {
			return fmt.Errorf("Message %d too long. Maximum length: %d", i, MaxMessageLength)
		}
	}
	return nil
}

// Client forwards conversations to an OpenAI-compatible chat-completions
// upstream and hands back the streaming response.
type Client struct {
	apiKey      string
	upstreamURL string
	model       string
	httpClient  *http.Client
}

// NewClient builds a chat client. Empty upstreamURL/model fall back to the
// hosted gateway defaults.
func NewClient(apiKey, upstreamURL, model string) *Client {
	if upstreamURL == "" {
		upstreamURL = defaultUpstreamURL
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:      apiKey,
		upstreamURL: upstreamURL,
		model:       model,
		httpClient:  &http.Client{Timeout: 120 * time.Second},
	}
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// StreamCompletion sends the conversation (with the system prompt
// prepended) upstream and returns the raw streaming response. The caller
// owns the response body and must close it; non-2xx responses are returned
// as-is so the handler can map 429/402 to friendly errors.
func (c *Client) StreamCompletion(ctx context.Context, messages []Message) (*http.Response, error) {
	payload := completionRequest{
		Model:    c.model,
		Messages: append([]Message{{Role: "system", Content: systemPrompt}}, messages...),
		Stream:   true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.upstreamURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	return resp, nil
}
