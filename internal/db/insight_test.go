package db

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProjectScopeAppendsMissingFilter(t *testing.T) {
	got := EnsureProjectScope("SELECT count(*) FROM analytics_events")
	assert.Equal(t, "SELECT count(*) FROM analytics_events WHERE project_id = :project_id", got)
}

func TestEnsureProjectScopeLeavesScopedQueryAlone(t *testing.T) {
	q := "SELECT event_name, count(*) FROM analytics_events WHERE project_id = :project_id GROUP BY 1"
	assert.Equal(t, q, EnsureProjectScope(q))
}

func TestEnsureProjectScopeNeverDuplicatesToken(t *testing.T) {
	q := EnsureProjectScope("SELECT count(*) FROM analytics_events")
	again := EnsureProjectScope(q)
	assert.Equal(t, q, again)
}

func fallbackSet() []InsightConfig {
	return []InsightConfig{
		{Title: "Total Events Tracked", SQLQuery: "SELECT count(*) FROM analytics_events WHERE project_id = :project_id"},
		{Title: "Activity by Event Name", SQLQuery: "SELECT event_name, count(*) FROM analytics_events WHERE project_id = :project_id GROUP BY 1 ORDER BY 2 DESC LIMIT 5"},
	}
}

func TestReplaceInsightConfigsIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, ReplaceInsightConfigs(db, "p-1", fallbackSet()))
	require.NoError(t, ReplaceInsightConfigs(db, "p-1", fallbackSet()))

	configs, err := InsightConfigsByProject(db, "p-1")
	require.NoError(t, err)
	require.Len(t, configs, 2, "regenerating with identical inputs must leave exactly one config set")
	assert.Equal(t, "Total Events Tracked", configs[0].Title)
	assert.Equal(t, "Activity by Event Name", configs[1].Title)
}

func TestReplaceInsightConfigsSwapsWholePriorSet(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, ReplaceInsightConfigs(db, "p-1", fallbackSet()))
	require.NoError(t, ReplaceInsightConfigs(db, "p-1", []InsightConfig{
		{Title: "Avg Watch Duration", SQLQuery: "SELECT avg(1) FROM analytics_events WHERE project_id = :project_id"},
	}))

	configs, err := InsightConfigsByProject(db, "p-1")
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Avg Watch Duration", configs[0].Title)
}

func TestReplaceInsightConfigsLeavesOtherTenantsAlone(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, ReplaceInsightConfigs(db, "p-1", fallbackSet()))
	require.NoError(t, ReplaceInsightConfigs(db, "p-2", fallbackSet()[:1]))

	first, err := InsightConfigsByProject(db, "p-1")
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := InsightConfigsByProject(db, "p-2")
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestReplaceInsightConfigsRepairsScopeOnInsert(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, ReplaceInsightConfigs(db, "p-1", []InsightConfig{
		{Title: "Unscoped", SQLQuery: "SELECT count(*) FROM analytics_events"},
	}))

	configs, err := InsightConfigsByProject(db, "p-1")
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, 1, strings.Count(configs[0].SQLQuery, ScopeToken))
}
