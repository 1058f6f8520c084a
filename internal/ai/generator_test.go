package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []EventSample {
	return []EventSample{
		{EventName: "video_play", Properties: map[string]any{"duration": 120, "quality": "hd"}},
		{EventName: "subscription", Properties: map[string]any{"plan": "premium", "price": 15.99}},
	}
}

func TestGenerateEmptySampleReturnsFallback(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		t.Fatal("model must not be called for an empty sample")
	}}
	gen := &Generator{caller: fake}

	insights := gen.Generate(context.Background(), "Acme", "streaming service", nil, nil)

	require.Len(t, insights, 2)
	assert.Equal(t, "Total Events Tracked", insights[0].Title)
	assert.Equal(t, "SELECT count(*) FROM analytics_events WHERE project_id = :project_id", insights[0].SQLQuery)
	assert.Equal(t, "Activity by Event Name", insights[1].Title)
	assert.Equal(t, "SELECT event_name, count(*) FROM analytics_events WHERE project_id = :project_id GROUP BY 1 ORDER BY 2 DESC LIMIT 5", insights[1].SQLQuery)
	assert.Zero(t, fake.calls)
}

func TestGenerateModelFailureReturnsFallback(t *testing.T) {
	gen := &Generator{caller: &fakeCaller{err: errors.New("rate limited")}}

	approved := []MetricProposal{{Name: "Engagement Time", Description: "Minutes watched"}}
	insights := gen.Generate(context.Background(), "Acme", "streaming service", sampleEvents(), approved)

	assert.Equal(t, FallbackInsights(), insights, "a failed model call substitutes the fallback set even in constrained mode")
}

func TestGenerateEmptyOutputReturnsFallback(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		// schema-valid but empty
		*out.(*DashboardConfig) = DashboardConfig{}
	}}
	gen := &Generator{caller: fake}

	insights := gen.Generate(context.Background(), "Acme", "streaming service", sampleEvents(), nil)

	assert.Equal(t, FallbackInsights(), insights)
}

func TestGeneratePassesThroughModelInsights(t *testing.T) {
	want := []Insight{
		{Title: "Avg Watch Duration", SQLQuery: "SELECT avg((properties->>'duration')::numeric) FROM analytics_events WHERE project_id = :project_id AND event_name = 'video_play'"},
	}
	fake := &fakeCaller{fn: func(out any) {
		out.(*DashboardConfig).Insights = want
	}}
	gen := &Generator{caller: fake}

	insights := gen.Generate(context.Background(), "Acme", "streaming service", sampleEvents(), nil)

	assert.Equal(t, want, insights)
	assert.Equal(t, 1, fake.calls)
}

func TestGenerateConstrainedPromptEnumeratesApprovedMetrics(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		out.(*DashboardConfig).Insights = []Insight{{Title: "x", SQLQuery: "SELECT 1"}}
	}}
	gen := &Generator{caller: fake}

	approved := []MetricProposal{
		{Name: "Engagement Time", Description: "Minutes watched per user"},
		{Name: "Churn", Description: "Cancelled subscriptions"},
	}
	gen.Generate(context.Background(), "Acme", "streaming service", sampleEvents(), approved)

	assert.Contains(t, fake.lastSystem, "Engagement Time: Minutes watched per user")
	assert.Contains(t, fake.lastSystem, "Churn: Cancelled subscriptions")
	assert.Contains(t, fake.lastSystem, "Do not invent new metrics")
}

func TestGenerateExploratoryPromptCarriesSample(t *testing.T) {
	fake := &fakeCaller{fn: func(out any) {
		out.(*DashboardConfig).Insights = []Insight{{Title: "x", SQLQuery: "SELECT 1"}}
	}}
	gen := &Generator{caller: fake}

	gen.Generate(context.Background(), "Acme", "streaming service", sampleEvents(), nil)

	assert.Contains(t, fake.lastSystem, "video_play")
	assert.Contains(t, fake.lastSystem, "3-4 interesting insights")
	assert.NotContains(t, fake.lastSystem, "Do not invent new metrics")
}

func TestFallbackInsightsReturnsFreshCopies(t *testing.T) {
	a := FallbackInsights()
	a[0].Title = "mutated"
	b := FallbackInsights()
	assert.Equal(t, "Total Events Tracked", b[0].Title)
}
