package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// maxGenerateAttempts bounds the retry loop around one outbound model
// call. Two attempts total; anything beyond that is the fallback's job.
const maxGenerateAttempts = 2

// caller abstracts the structured-output model call so the analyst and
// generator can be exercised without the Gemini service. The only
// production implementation is Client.
type caller interface {
	generateJSON(ctx context.Context, system, user string, schema *genai.Schema, out any) error
}

// generationError is the typed failure of a structured model call:
// transport error, empty candidates, or output that does not parse
// into the requested shape. Consumers branch on it to substitute the
// fallback; it never crosses a package boundary.
type generationError struct {
	attempts int
	cause    error
}

func (e *generationError) Error() string {
	return fmt.Sprintf("model call failed after %d attempts: %v", e.attempts, e.cause)
}

func (e *generationError) Unwrap() error { return e.cause }

// Client is an injectable handle on the Gemini API, constructed once
// at process start and shared by the analyst and the generator.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient dials the Gemini API. The model name is fixed for the
// client's lifetime; both negotiation and generation use it.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	gc, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &Client{genai: gc, model: model}, nil
}

func (c *Client) Close() {
	if c.genai != nil {
		if err := c.genai.Close(); err != nil {
			log.Printf("error closing GenAI client: %v", err)
		}
	}
}

// generateJSON performs one schema-constrained model call and decodes
// the JSON response into out. It retries transient failures up to
// maxGenerateAttempts before returning a generationError.
func (c *Client) generateJSON(ctx context.Context, system, user string, schema *genai.Schema, out any) error {
	model := c.genai.GenerativeModel(c.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}

	var lastErr error
	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		start := time.Now()
		resp, err := model.GenerateContent(ctx, genai.Text(user))
		observeModelCall(time.Since(start))
		if err != nil {
			lastErr = err
			continue
		}

		text, err := responseText(resp)
		if err != nil {
			lastErr = err
			continue
		}

		if err := json.Unmarshal([]byte(text), out); err != nil {
			lastErr = fmt.Errorf("malformed structured output: %w", err)
			continue
		}
		return nil
	}

	return &generationError{attempts: maxGenerateAttempts, cause: lastErr}
}

// responseText flattens the first candidate's text parts.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty model response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model response contained no text parts")
	}
	return sb.String(), nil
}
