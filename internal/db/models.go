package db

import (
	"time"

	"gorm.io/datatypes"
)

// Project is an onboarded tenant. Its API key scopes event ingestion
// and dashboard reads; its description feeds the AI prompt context.
type Project struct {
	ID string `gorm:"primaryKey;size:36"`

	CreatedAt time.Time

	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	// APIKey is the bearer credential SDKs send as X-API-Key.
	APIKey string `gorm:"uniqueIndex;size:64;not null"`
}

// Event is a single tracked product event. The schema is intentionally
// generic: a name plus free-form JSONB properties, so any tenant can
// track anything without schema changes.
type Event struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	// ExpiresAt is the timestamp after which this event is eligible
	// for deletion by the retention worker. A nil value means the
	// event does not currently expire.
	ExpiresAt *time.Time `gorm:"index"`

	ProjectID string `gorm:"index;size:36;not null"`

	EventName string `gorm:"index;size:255;not null"`

	// Properties holds arbitrary key/value pairs for this event
	// (e.g. plan, price, duration). Generated queries reach into it
	// with PostgreSQL JSONB accessors.
	Properties datatypes.JSONMap `gorm:"type:jsonb"`
}

// TableName pins the table name the generated and fallback SQL is
// written against.
func (Event) TableName() string { return "analytics_events" }

// InsightConfig is the persisted form of one generated insight: a
// widget title plus the parameterized query that backs it. A project
// owns zero or more configs; regeneration replaces the whole set.
type InsightConfig struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time

	ProjectID string `gorm:"index;size:36;not null"`

	Title string `gorm:"size:255;not null"`

	// SQLQuery always contains the :project_id scope token by the
	// time it is persisted; see EnsureProjectScope.
	SQLQuery string `gorm:"type:text;not null"`
}

// User represents an operator who can call the admin endpoints. The
// bootstrap admin (from env) is created as a row on startup.
type User struct {
	ID uint `gorm:"primaryKey"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Username     string `gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// IsAdmin marks users allowed on /admin routes. The bootstrap
	// admin has IsAdmin=true.
	IsAdmin bool `gorm:"default:false"`
}
