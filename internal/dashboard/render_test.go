package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbpkg "insightboard/internal/db"
)

// fakeExecutor serves canned rows per query and records what it was
// asked to run.
type fakeExecutor struct {
	results    map[string][][]any
	errs       map[string]error
	projectIDs []string
}

func (f *fakeExecutor) Query(_ context.Context, sqlQuery, projectID string) ([][]any, error) {
	f.projectIDs = append(f.projectIDs, projectID)
	if err, ok := f.errs[sqlQuery]; ok {
		return nil, err
	}
	return f.results[sqlQuery], nil
}

func TestRenderStatCard(t *testing.T) {
	exec := &fakeExecutor{results: map[string][][]any{
		"q1": {{"count", int64(42)}},
	}}
	r := NewRenderer(exec)

	widgets := r.Render(context.Background(), []dbpkg.InsightConfig{
		{Title: "Total Events Tracked", SQLQuery: "q1"},
	}, "p-1")

	require.Len(t, widgets, 1)
	assert.Equal(t, WidgetStatCard, widgets[0].Type)
	assert.Equal(t, "Total Events Tracked", widgets[0].Title)
	assert.Equal(t, int64(42), widgets[0].Data)
}

func TestRenderBarChart(t *testing.T) {
	exec := &fakeExecutor{results: map[string][][]any{
		"q1": {
			{"video_play", int64(12)},
			{"subscription", int64(7)},
			{"error", int64(5)},
			{"cart_checkout", int64(4)},
			{"signup", int64(2)},
		},
	}}
	r := NewRenderer(exec)

	widgets := r.Render(context.Background(), []dbpkg.InsightConfig{
		{Title: "Activity by Event Name", SQLQuery: "q1"},
	}, "p-1")

	require.Len(t, widgets, 1)
	assert.Equal(t, WidgetBarChart, widgets[0].Type)
	series, ok := widgets[0].Data.([]LabelValue)
	require.True(t, ok)
	require.Len(t, series, 5)
	assert.Equal(t, "video_play", series[0].Label)
	assert.Equal(t, int64(12), series[0].Value)
	assert.Equal(t, "signup", series[4].Label)
}

func TestRenderSingleRowWithoutStatTitleStaysBarChart(t *testing.T) {
	exec := &fakeExecutor{results: map[string][][]any{
		"q1": {{"premium", int64(9)}},
	}}
	r := NewRenderer(exec)

	widgets := r.Render(context.Background(), []dbpkg.InsightConfig{
		{Title: "Most Popular Plan", SQLQuery: "q1"},
	}, "p-1")

	require.Len(t, widgets, 1)
	assert.Equal(t, WidgetBarChart, widgets[0].Type)
}

func TestRenderIsolatesFailingConfigs(t *testing.T) {
	exec := &fakeExecutor{
		results: map[string][][]any{
			"q1": {{"ok", int64(1)}},
			"q3": {{"also ok", int64(3)}},
		},
		errs: map[string]error{
			"q2": errors.New(`column "missing" does not exist`),
		},
	}
	r := NewRenderer(exec)

	widgets := r.Render(context.Background(), []dbpkg.InsightConfig{
		{Title: "First", SQLQuery: "q1"},
		{Title: "Broken", SQLQuery: "q2"},
		{Title: "Third", SQLQuery: "q3"},
	}, "p-1")

	require.Len(t, widgets, 2)
	assert.Equal(t, "First", widgets[0].Title)
	assert.Equal(t, "Third", widgets[1].Title)
}

func TestRenderBindsTenantScope(t *testing.T) {
	exec := &fakeExecutor{results: map[string][][]any{"q1": nil}}
	r := NewRenderer(exec)

	r.Render(context.Background(), []dbpkg.InsightConfig{
		{Title: "Anything", SQLQuery: "q1"},
	}, "p-42")

	require.Len(t, exec.projectIDs, 1)
	assert.Equal(t, "p-42", exec.projectIDs[0])
}

func TestRenderNoConfigsYieldsEmptySlice(t *testing.T) {
	r := NewRenderer(&fakeExecutor{})

	widgets := r.Render(context.Background(), nil, "p-1")

	require.NotNil(t, widgets)
	assert.Empty(t, widgets)
}

func TestClassifyWidgetNormalizesByteLabels(t *testing.T) {
	w := classifyWidget("Revenue by Plan", [][]any{
		{[]byte("premium"), []byte("159.90")},
		{[]byte("free"), []byte("0")},
	})

	series := w.Data.([]LabelValue)
	assert.Equal(t, "premium", series[0].Label)
	assert.Equal(t, "159.90", series[0].Value)
}

func TestClassifyWidgetSingleColumnRows(t *testing.T) {
	w := classifyWidget("Total Count", [][]any{{int64(7)}})

	assert.Equal(t, WidgetStatCard, w.Type)
	assert.Equal(t, int64(7), w.Data)
}
