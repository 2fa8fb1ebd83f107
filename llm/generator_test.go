package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pulseai/server/config"
	"github.com/pulseai/server/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		GroqModel:        "llama",
		RequestTimeout:   time.Second,
		Temperature:      0.2,
		MaxTokens:        600,
		TopP:             0.9,
		FrequencyPenalty: 1.0,
		PresencePenalty:  0.7,
		StopSequences:    []string{"\n\nPatient:"},
	}
}

func TestGeneratorSendsPersonaAndProfile(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":"How long have you had the headache?"}}]}`)
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, "", time.Second), testConfig())
	history := []domain.Message{
		{Role: "user", Content: "earlier question"},
		{Role: "assistant", Content: "earlier answer"},
	}

	reply, err := gen.Generate(context.Background(), history, "Patient Name: Ana\nAdditional Information: headache")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if reply != "How long have you had the headache?" {
		t.Fatalf("unexpected reply: %q", reply)
	}

	if len(got.Messages) != 4 {
		t.Fatalf("expected 4 messages (system + 2 history + user), got %d", len(got.Messages))
	}
	if got.Messages[0].Role != "system" || !strings.HasPrefix(got.Messages[0].Content, "You are Pulse AI") {
		t.Fatalf("first message is not the persona: %+v", got.Messages[0])
	}
	if got.Messages[3].Role != "user" {
		t.Fatalf("last message is not the user turn: %+v", got.Messages[3])
	}
	if got.Model != "llama" {
		t.Fatalf("unexpected model: %q", got.Model)
	}
	if got.Temperature == nil || *got.Temperature != 0.2 {
		t.Fatalf("unexpected temperature: %v", got.Temperature)
	}
	if got.MaxTokens == nil || *got.MaxTokens != 600 {
		t.Fatalf("unexpected max_tokens: %v", got.MaxTokens)
	}
	if len(got.Stop) == 0 {
		t.Fatalf("expected stop sequences")
	}
}

func TestGeneratorEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, "", time.Second), testConfig())
	_, err := gen.Generate(context.Background(), nil, "hello")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeneratorEmptyContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"index":0,"message":{"role":"assistant","content":""}}]}`)
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, "", time.Second), testConfig())
	_, err := gen.Generate(context.Background(), nil, "hello")
	if !errors.Is(err, domain.ErrEmptyResponse) {
		t.Fatalf("expected ErrEmptyResponse, got %v", err)
	}
}

func TestGeneratorTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	gen := NewGenerator(NewClient(server.URL, "", time.Second), cfg)

	_, err := gen.Generate(context.Background(), nil, "hello")
	if !errors.Is(err, domain.ErrUpstreamTimeout) {
		t.Fatalf("expected ErrUpstreamTimeout, got %v", err)
	}
}

func TestGeneratorUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"internal secret detail","type":"server_error"}}`)
	}))
	defer server.Close()

	gen := NewGenerator(NewClient(server.URL, "", time.Second), testConfig())
	_, err := gen.Generate(context.Background(), nil, "hello")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), "secret") {
		t.Fatalf("upstream detail leaked into error: %v", err)
	}
}
