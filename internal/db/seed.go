package db

import (
	"math/rand"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// demoEvents are the templates used to seed a fresh project so the
// generator has real rows to look at before the tenant's SDK ships.
var demoEvents = []struct {
	name  string
	props map[string]any
}{
	{"video_play", map[string]any{"title": "Demo Video A", "duration": 120, "user_type": "free"}},
	{"video_play", map[string]any{"title": "Demo Video B", "duration": 300, "user_type": "premium"}},
	{"subscription", map[string]any{"plan": "premium", "price": 19.99}},
	{"error", map[string]any{"code": 500, "message": "Crash"}},
	{"cart_checkout", map[string]any{"amount": 45.50, "items": 3}},
}

// SeedDemoEvents inserts n randomly chosen demo events for a new
// project, spread over the preceding hour so recency ordering is
// meaningful. Returns the number of rows inserted.
func SeedDemoEvents(db *gorm.DB, projectID string, n int, retentionDays int) (int, error) {
	if n <= 0 {
		n = 30
	}

	now := time.Now()
	records := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		tpl := demoEvents[rand.Intn(len(demoEvents))]

		props := datatypes.JSONMap{}
		for k, v := range tpl.props {
			props[k] = v
		}

		createdAt := now.Add(-time.Duration(n-i) * time.Minute)
		var expiresAt *time.Time
		if retentionDays > 0 {
			t := createdAt.Add(time.Duration(retentionDays) * 24 * time.Hour)
			expiresAt = &t
		}

		records = append(records, Event{
			CreatedAt:  createdAt,
			ExpiresAt:  expiresAt,
			ProjectID:  projectID,
			EventName:  tpl.name,
			Properties: props,
		})
	}

	if err := db.Create(&records).Error; err != nil {
		return 0, err
	}
	return len(records), nil
}
