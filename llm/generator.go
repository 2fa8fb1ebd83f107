package llm

import (
	"context"
	"errors"
	"log"
	"net/url"

	"github.com/pulseai/server/config"
	"github.com/pulseai/server/domain"
)

// Generator produces assistant replies under a fixed clinical sampling
// profile. All upstream failures are mapped to the domain error set; raw
// upstream detail only ever reaches the log.
type Generator struct {
	client *Client
	cfg    *config.Config
}

// NewGenerator creates a generator on top of a completion client.
func NewGenerator(client *Client, cfg *config.Config) *Generator {
	return &Generator{client: client, cfg: cfg}
}

// Generate sends the persona, prior history, and the new user turn to the
// completion API and returns the assistant text.
func (g *Generator) Generate(ctx context.Context, history []domain.Message, userText string) (string, error) {
	messages := make([]ChatMessage, 0, len(history)+2)
	messages = append(messages, ChatMessage{Role: "system", Content: SystemPrompt})
	for _, m := range history {
		messages = append(messages, ChatMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, ChatMessage{Role: domain.RoleUser, Content: userText})

	req := &ChatCompletionRequest{
		Model:            g.cfg.GroqModel,
		Messages:         messages,
		Temperature:      &g.cfg.Temperature,
		MaxTokens:        &g.cfg.MaxTokens,
		TopP:             &g.cfg.TopP,
		FrequencyPenalty: &g.cfg.FrequencyPenalty,
		PresencePenalty:  &g.cfg.PresencePenalty,
		Stop:             g.cfg.StopSequences,
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		if isTimeout(err) {
			log.Printf("ERROR: completion request timed out after %s", g.cfg.RequestTimeout)
			return "", domain.ErrUpstreamTimeout
		}
		log.Printf("ERROR: completion request failed: %v", err)
		return "", domain.ErrUpstream
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message == nil || resp.Choices[0].Message.Content == "" {
		log.Printf("WARN: completion response carried no content")
		return "", domain.ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	return errors.As(err, &ue) && ue.Timeout()
}
