package db

import (
	"strings"

	"gorm.io/gorm"
)

// ScopeToken is the named parameter every stored insight query must
// carry so execution can bind the tenant scope. Queries are written
// against it by the generator; EnsureProjectScope guarantees it.
const ScopeToken = ":project_id"

// EnsureProjectScope mechanically appends a project scope clause when
// the query text does not already contain the scope token. This is the
// single place the tenant-isolation invariant is actually enforced;
// generated and fallback queries alike pass through it before being
// persisted. Queries that already carry the token are left untouched.
func EnsureProjectScope(sqlQuery string) string {
	if strings.Contains(sqlQuery, ScopeToken) {
		return sqlQuery
	}
	return sqlQuery + " WHERE project_id = " + ScopeToken
}

// InsightConfigsByProject returns a project's stored insight configs in
// insertion order. Widget order on the dashboard follows this order.
func InsightConfigsByProject(db *gorm.DB, projectID string) ([]InsightConfig, error) {
	var configs []InsightConfig
	err := db.Where("project_id = ?", projectID).Order("id ASC").Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// ReplaceInsightConfigs atomically swaps a project's insight set:
// all prior configs are deleted and the new set inserted inside one
// transaction, so a concurrent dashboard read never observes a partial
// set. Each query is scope-repaired before insert.
func ReplaceInsightConfigs(db *gorm.DB, projectID string, configs []InsightConfig) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", projectID).Delete(&InsightConfig{}).Error; err != nil {
			return err
		}
		for i := range configs {
			configs[i].ID = 0
			configs[i].ProjectID = projectID
			configs[i].SQLQuery = EnsureProjectScope(configs[i].SQLQuery)
			if err := tx.Create(&configs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
