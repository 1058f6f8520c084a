package handlers

import (
	"encoding/json"

	"github.com/valyala/fasthttp"

	"insightboard/internal/ai"
)

// chatPart mirrors the message shape some chat frontends send, where a
// turn's text is split across typed parts.
type chatPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type chatMessagePayload struct {
	Role    string     `json:"role"`
	Content string     `json:"content"`
	Parts   []chatPart `json:"parts"`
}

type chatRequest struct {
	Messages []chatMessagePayload `json:"messages"`
}

// ChatAnalyst drives one turn of the metric negotiation. The full
// transcript arrives on every call; the response carries the analyst's
// reply, the current metric proposals, and the readiness signal.
func ChatAnalyst(analyst *ai.Analyst) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload chatRequest
		if err := json.Unmarshal(ctx.PostBody(), &payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(payload.Messages) == 0 {
			errResponse(ctx, fasthttp.StatusBadRequest, "no messages provided")
			return
		}

		history := make([]ai.ChatMessage, 0, len(payload.Messages))
		for _, m := range payload.Messages {
			role := m.Role
			if role == "model" {
				role = ai.RoleAssistant
			}
			history = append(history, ai.ChatMessage{Role: role, Content: flattenParts(m)})
		}

		result := analyst.Negotiate(ctx, history)

		ctx.SetContentType("application/json")
		body, _ := json.Marshal(result)
		ctx.SetBody(body)
	}
}

func flattenParts(m chatMessagePayload) string {
	if m.Content != "" || len(m.Parts) == 0 {
		return m.Content
	}
	text := ""
	for _, p := range m.Parts {
		if p.Type != "" && p.Type != "text" {
			continue
		}
		text += p.Text
	}
	return text
}
