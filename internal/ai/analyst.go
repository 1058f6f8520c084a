package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// degradedMessage is the fixed advisor text returned when the model
// call fails. The conversation can simply continue on the next turn.
const degradedMessage = "I'm having trouble connecting right now. Let's stick to standard metrics - tell me a bit more about your business and I'll try again."

// Analyst is the metric negotiation engine: a stateless-per-call
// advisor that interviews the project owner and converges on an
// approved metric plan. All context travels in the transcript.
type Analyst struct {
	caller caller
}

func NewAnalyst(c *Client) *Analyst {
	return &Analyst{caller: c}
}

// Negotiate advances the negotiation by one turn. It never returns an
// error: a failed model call degrades to a fixed apology with an empty
// metric list, and the readiness flag is always clamped by the
// deterministic phase classifier so approval can never be inferred
// from silence or topic change.
func (a *Analyst) Negotiate(ctx context.Context, history []ChatMessage) ChatTurnResult {
	phase := classifyPhase(history)

	var result ChatTurnResult
	err := a.caller.generateJSON(ctx, analystSystemPrompt(), renderTranscript(history), chatResponseSchema, &result)
	if err != nil {
		log.Printf("analyst model call failed: %v", err)
		observeChatTurn("degraded")
		return ChatTurnResult{
			AIMessage:        degradedMessage,
			SuggestedMetrics: []MetricProposal{},
			IsReadyToCreate:  false,
		}
	}

	// The model's own judgement is advisory; phase clamping is the
	// contract. Discovery turns never carry proposals, and readiness
	// tracks an explicit affirmation exactly.
	switch phase {
	case phaseDiscovery:
		result.SuggestedMetrics = []MetricProposal{}
		result.IsReadyToCreate = false
	case phaseAgreement:
		result.IsReadyToCreate = true
	default:
		result.IsReadyToCreate = false
	}
	if result.SuggestedMetrics == nil {
		result.SuggestedMetrics = []MetricProposal{}
	}

	observeChatTurn(phase.String())
	return result
}

// analystSystemPrompt builds the advisor's standing instruction,
// embedding the fixed domain-to-metric-family lookup.
func analystSystemPrompt() string {
	var families strings.Builder
	for _, f := range metricFamilies {
		fmt.Fprintf(&families, "   - **%s:** Propose %s.\n", f.Domain, f.Metrics)
	}

	return `You are an advanced Business Intelligence Consultant integrated into an analytics product.
Your goal is to interview the user, identify their business type, and propose the perfect set of 3-5 analytics metrics (KPIs) for their dashboard.

### CORE BEHAVIOR
1. **Identify Business Context:**
   - Analyze the user's description (e.g. "I sell shoes" -> E-Commerce).
   - If unclear, ask ONE clarifying question or state a reasonable assumption (e.g. "Assuming you are an online retailer...").

2. **Apply Industry-Specific Intelligence (do NOT be generic):**
` + families.String() + `
3. **The Interaction Loop:**
   - **Phase 1 (Discovery):** If the user just says "Hi", ask what their business does. Propose nothing yet.
   - **Phase 2 (Proposal):** Once you know the business, IMMEDIATELY propose 3-5 specific metrics in suggested_metrics. Explain why you chose them in ai_message.
   - **Phase 3 (Refinement):** If the user asks for changes (e.g. "I don't care about Churn"), update suggested_metrics instantly to reflect the new plan.
   - **Phase 4 (Agreement):** If the user says "Looks good", "Yes", or "Go ahead", set is_ready_to_create to true.

### OUTPUT RULES
- Use professional, industry-appropriate terminology (e.g. "Inventory Turnover" instead of "How fast stock sells").
- Be brief. Focus on the metrics.
- suggested_metrics always carries the FULL current plan, superseding earlier turns.
- is_ready_to_create is true ONLY when the user explicitly approves the plan.`
}

// renderTranscript flattens the chat history into the user prompt.
func renderTranscript(history []ChatMessage) string {
	if len(history) == 0 {
		return "The conversation has not started yet. Greet the user and ask what their business does."
	}

	var sb strings.Builder
	sb.WriteString("Conversation so far:\n\n")
	for _, m := range history {
		role := m.Role
		if role != RoleUser && role != RoleAssistant {
			role = RoleUser
		}
		fmt.Fprintf(&sb, "[%s] %s\n", role, m.Content)
	}
	sb.WriteString("\nRespond to the latest user turn.")
	return sb.String()
}
