package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Generator turns a tenant's event sample plus an optional approved
// metric plan into a set of titled, parameterized SQL queries. It is
// stateless; everything it needs is passed per call.
type Generator struct {
	caller caller
}

func NewGenerator(c *Client) *Generator {
	return &Generator{caller: c}
}

// Generate produces the insight set for a project. The resilience
// contract: it never returns an error. An empty sample short-circuits
// to the fallback set (generating against no data just fabricates
// structure), and any model failure - transport, malformed output,
// exhausted retries - substitutes the fallback set as well.
//
// With approved metrics the generation is constrained: the prompt
// enumerates each approved metric and forbids inventing new ones.
// Without them it is exploratory: 3-4 insights inferred from patterns
// in the sample.
func (g *Generator) Generate(ctx context.Context, projectName, projectDescription string, sample []EventSample, approved []MetricProposal) []Insight {
	mode := "exploratory"
	if len(approved) > 0 {
		mode = "constrained"
	}

	if len(sample) == 0 {
		log.Printf("insight generation for %q: no events, returning fallback", projectName)
		observeGeneration(mode, "fallback_empty_sample")
		return FallbackInsights()
	}

	system, err := generatorSystemPrompt(projectName, projectDescription, sample, approved)
	if err != nil {
		log.Printf("insight generation for %q: %v, returning fallback", projectName, err)
		observeGeneration(mode, "fallback_error")
		return FallbackInsights()
	}

	var out DashboardConfig
	if err := g.caller.generateJSON(ctx, system, "Generate the dashboard configuration.", dashboardConfigSchema, &out); err != nil {
		log.Printf("insight generation for %q failed: %v, returning fallback", projectName, err)
		observeGeneration(mode, "fallback_error")
		return FallbackInsights()
	}
	if len(out.Insights) == 0 {
		log.Printf("insight generation for %q returned no insights, returning fallback", projectName)
		observeGeneration(mode, "fallback_empty_output")
		return FallbackInsights()
	}

	observeGeneration(mode, "generated")
	return out.Insights
}

// generatorSystemPrompt assembles the data-architect instruction:
// tenant context, a JSON preview of the sample, the task (constrained
// to the approved plan, or exploratory), and the query rules.
func generatorSystemPrompt(projectName, projectDescription string, sample []EventSample, approved []MetricProposal) (string, error) {
	preview, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode event sample: %w", err)
	}

	var task string
	if len(approved) > 0 {
		var plan strings.Builder
		for _, m := range approved {
			fmt.Fprintf(&plan, "- %s: %s\n", m.Name, m.Description)
		}
		task = fmt.Sprintf(`STRICTLY generate one SQL query per APPROVED METRIC below:
%s
Do not invent new metrics. Focus ONLY on implementing the list above.`, plan.String())
	} else {
		task = "Generate 3-4 interesting insights based on the data patterns you see."
	}

	return fmt.Sprintf(`You are a Data Architect (PostgreSQL + JSONB).
CONTEXT: %s - %s
TABLE: analytics_events (event_name, properties)
SAMPLE DATA: %s

TASK:
%s

RULES:
1. Use PostgreSQL JSONB syntax (properties->>'key').
2. Always filter by project_id = :project_id.
3. Ensure SQL is valid and efficient.`,
		projectName, projectDescription, preview, task), nil
}
