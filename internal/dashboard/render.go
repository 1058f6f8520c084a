package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"

	dbpkg "insightboard/internal/db"
)

// Widget presentation shapes. A stat card carries a single scalar; a
// bar chart carries an ordered label/value series.
const (
	WidgetStatCard = "stat_card"
	WidgetBarChart = "bar_chart"
)

// statTitleHints are the title substrings (matched case-insensitively)
// that mark a single-row result as a scalar stat rather than a
// one-bar chart. This is a documented heuristic: presentation type is
// inferred from the title text, pending an explicit field on the
// stored config.
var statTitleHints = []string{"avg", "total", "count"}

// LabelValue is one point of a bar chart series.
type LabelValue struct {
	Label string `json:"label"`
	Value any    `json:"value"`
}

// Widget is the rendered, typed presentation of one insight's live
// query result. Never persisted; derived on every dashboard read.
type Widget struct {
	Title string `json:"title"`
	Type  string `json:"type"`
	// Data is a scalar for stat cards, a []LabelValue for bar charts.
	Data any `json:"data"`
}

// Renderer executes stored insight configs against the live event
// store and shapes the results into widgets.
type Renderer struct {
	exec Executor
}

func NewRenderer(exec Executor) *Renderer {
	return &Renderer{exec: exec}
}

// Render executes each config's query with the tenant scope bound and
// classifies the result. A failing config (schema drift, type
// mismatch) is skipped - one bad query never aborts the dashboard -
// and emits no widget. Output order follows config order.
func (r *Renderer) Render(ctx context.Context, configs []dbpkg.InsightConfig, projectID string) []Widget {
	widgets := make([]Widget, 0, len(configs))

	for _, cfg := range configs {
		rows, err := r.exec.Query(ctx, cfg.SQLQuery, projectID)
		if err != nil {
			log.Printf("widget query %q failed for project %s: %v", cfg.Title, projectID, err)
			observeWidgetFailure()
			continue
		}
		widgets = append(widgets, classifyWidget(cfg.Title, rows))
	}

	return widgets
}

// classifyWidget shapes one result set. Each row becomes a label/value
// pair: label is the stringified first column, value the second column
// (or the first again for single-column results such as bare counts).
// A single-row result whose title hints at an aggregate collapses to a
// scalar stat card; everything else stays a bar chart.
func classifyWidget(title string, rows [][]any) Widget {
	series := make([]LabelValue, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		value := row[0]
		if len(row) > 1 {
			value = row[1]
		}
		series = append(series, LabelValue{
			Label: stringify(row[0]),
			Value: normalize(value),
		})
	}

	if len(series) == 1 && titleSuggestsStat(title) {
		return Widget{Title: title, Type: WidgetStatCard, Data: series[0].Value}
	}
	return Widget{Title: title, Type: WidgetBarChart, Data: series}
}

func titleSuggestsStat(title string) bool {
	t := strings.ToLower(title)
	for _, hint := range statTitleHints {
		if strings.Contains(t, hint) {
			return true
		}
	}
	return false
}

func stringify(v any) string {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

// normalize unwraps driver byte slices so JSON encoding produces a
// string instead of base64.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
