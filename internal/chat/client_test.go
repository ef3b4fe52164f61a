package chat

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestValidateMessages(t *testing.T) {
	valid := []Message{{Role: "user", Content: "Do lace systems survive swimming?"}}
	if err := ValidateMessages(valid); err != nil {
		t.Fatalf("valid messages rejected: %v", err)
	}

	if err := ValidateMessages(nil); err == nil {
		t.Fatalf("empty array accepted")
	}

	many := make([]Message, MaxMessages+1)
	for i := range many {
		many[i] = Message{Role: "user", Content: "hi"}
	}
	if err := ValidateMessages(many); err == nil {
		t.Fatalf("oversized array accepted")
	}
	if err := ValidateMessages(many[:MaxMessages]); err != nil {
		t.Fatalf("array at limit rejected: %v", err)
	}

	if err := ValidateMessages([]Message{{Role: "system", Content: "x"}}); err == nil {
		t.Fatalf("system role accepted from client")
	}
	if err := ValidateMessages([]Message{{Role: "user", Content: ""}}); err == nil {
		t.Fatalf("empty content accepted")
	}
	if err := ValidateMessages([]Message{{Role: "user", Content: strings.Repeat("a", MaxMessageLength+1)}}); err == nil {
		t.Fatalf("oversized content accepted")
	}
}

func TestStreamCompletion(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode upstream request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[]}\n\ndata: [DONE]\n\n")
	}))
	defer upstream.Close()

	c := NewClient("test-key", upstream.URL, "test-model")
	resp, err := c.StreamCompletion(context.Background(), []Message{{Role: "user", Content: "hello"}})
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	defer resp.Body.Close()

	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if !gotReq.Stream {
		t.Fatalf("stream flag not set upstream")
	}
	if gotReq.Model != "test-model" {
		t.Fatalf("model = %q", gotReq.Model)
	}
	// System prompt is prepended server-side, never taken from the client.
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("system prompt not prepended: %+v", gotReq.Messages)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "[DONE]") {
		t.Fatalf("stream body not passed through: %q", body)
	}
}
