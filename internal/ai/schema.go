package ai

import "github.com/google/generative-ai-go/genai"

// dashboardConfigSchema constrains the generator's output to the
// DashboardConfig shape.
var dashboardConfigSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"insights": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"title": {
						Type:        genai.TypeString,
						Description: "Short widget title (e.g. 'Daily Active Users')",
					},
					"sql_query": {
						Type:        genai.TypeString,
						Description: "PostgreSQL JSONB query. MUST filter by project_id = :project_id.",
					},
				},
				Required: []string{"title", "sql_query"},
			},
		},
	},
	Required: []string{"insights"},
}

// chatResponseSchema constrains the analyst's output to the
// ChatTurnResult shape.
var chatResponseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"ai_message": {
			Type:        genai.TypeString,
			Description: "Polite, professional response shown to the user.",
		},
		"suggested_metrics": {
			Type:        genai.TypeArray,
			Description: "The full list of metrics currently proposed, superseding prior turns.",
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "Metric name (e.g. 'Retention Rate')",
					},
					"description": {
						Type:        genai.TypeString,
						Description: "What this metric measures",
					},
				},
				Required: []string{"name", "description"},
			},
		},
		"is_ready_to_create": {
			Type:        genai.TypeBoolean,
			Description: "True ONLY if the user explicitly approved the plan.",
		},
	},
	Required: []string{"ai_message", "suggested_metrics", "is_ready_to_create"},
}
