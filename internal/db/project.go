package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewAPIKey mints a project API key. The "key-" prefix makes keys easy
// to spot in SDK snippets and logs.
func NewAPIKey() string {
	return "key-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CreateProject inserts a new project with a freshly minted API key.
func CreateProject(db *gorm.DB, name, description string) (*Project, error) {
	p := &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		APIKey:      NewAPIKey(),
	}
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ProjectByAPIKey resolves a project from its API key. Returns
// (nil, nil) when the key is unknown.
func ProjectByAPIKey(db *gorm.DB, key string) (*Project, error) {
	var p Project
	err := db.Where("api_key = ?", key).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// RecentEvents returns the most recent events for a project, newest
// first, capped at limit. This is the event sample handed to the
// generator as a data preview.
func RecentEvents(db *gorm.DB, projectID string, limit int) ([]Event, error) {
	var events []Event
	err := db.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CountEvents returns the number of events tracked for a project.
func CountEvents(db *gorm.DB, projectID string) (int64, error) {
	var n int64
	err := db.Model(&Event{}).Where("project_id = ?", projectID).Count(&n).Error
	return n, err
}

// TrackEvent inserts one event for a project, stamping the retention
// expiry when retentionDays > 0.
func TrackEvent(db *gorm.DB, projectID, eventName string, properties map[string]any, retentionDays int) (*Event, error) {
	now := time.Now()
	ev := &Event{
		CreatedAt:  now,
		ProjectID:  projectID,
		EventName:  eventName,
		Properties: properties,
	}
	if retentionDays > 0 {
		t := now.Add(time.Duration(retentionDays) * 24 * time.Hour)
		ev.ExpiresAt = &t
	}
	if err := db.Create(ev).Error; err != nil {
		return nil, err
	}
	return ev, nil
}
