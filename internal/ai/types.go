package ai

// Chat roles as they appear in the negotiation transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of the negotiation transcript. The engine is
// stateless: the full transcript is passed on every call and the
// conversation phase is re-derived from it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// MetricProposal is one metric the analyst proposes during
// negotiation. Proposals are superseded wholesale each turn; only the
// transcript itself carries history.
type MetricProposal struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ChatTurnResult is the structured outcome of one negotiation turn.
// IsReadyToCreate is a terminal-transition signal: it is set only on
// an explicit user affirmation, never inferred from silence.
type ChatTurnResult struct {
	AIMessage        string           `json:"ai_message"`
	SuggestedMetrics []MetricProposal `json:"suggested_metrics"`
	IsReadyToCreate  bool             `json:"is_ready_to_create"`
}

// EventSample is one raw event handed to the generator as part of the
// data preview: the event name plus its free-form properties.
type EventSample struct {
	EventName  string         `json:"event"`
	Properties map[string]any `json:"props"`
}

// Insight is one generated dashboard metric: a short title and the
// parameterized SQL backing it. The query is expected to reference the
// :project_id scope token; the persistence boundary repairs it if the
// model forgot (see db.EnsureProjectScope).
type Insight struct {
	Title    string `json:"title"`
	SQLQuery string `json:"sql_query"`
}

// DashboardConfig is the generator's structured output shape.
type DashboardConfig struct {
	Insights []Insight `json:"insights"`
}
