package ai

// FallbackInsights returns the safety fallback set: two queries that
// are valid for any tenant with the minimal analytics_events shape.
// This is the generator's guaranteed worst case - returned verbatim
// when the sample is empty or the model call fails. Callers get a
// fresh slice each time.
func FallbackInsights() []Insight {
	return []Insight{
		{
			Title:    "Total Events Tracked",
			SQLQuery: "SELECT count(*) FROM analytics_events WHERE project_id = :project_id",
		},
		{
			Title:    "Activity by Event Name",
			SQLQuery: "SELECT event_name, count(*) FROM analytics_events WHERE project_id = :project_id GROUP BY 1 ORDER BY 2 DESC LIMIT 5",
		},
	}
}
