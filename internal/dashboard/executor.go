package dashboard

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"

	dbpkg "insightboard/internal/db"
)

// Executor is the relational execution boundary: it takes an opaque
// query string plus the tenant scope value and returns ordered rows of
// column values. Any execution error surfaces as a normal error, never
// a panic, so the renderer can isolate per-config failures.
type Executor interface {
	Query(ctx context.Context, sqlQuery, projectID string) ([][]any, error)
}

// SQLExecutor executes stored insight queries against the live event
// store through GORM. Stored queries carry the :project_id token; at
// execution time it is rewritten to GORM's named-argument form and the
// tenant id bound - the stored text itself never changes.
type SQLExecutor struct {
	db *gorm.DB
}

func NewSQLExecutor(db *gorm.DB) *SQLExecutor {
	return &SQLExecutor{db: db}
}

func (e *SQLExecutor) Query(ctx context.Context, sqlQuery, projectID string) ([][]any, error) {
	bound := strings.ReplaceAll(sqlQuery, dbpkg.ScopeToken, "@project_id")

	rows, err := e.db.WithContext(ctx).Raw(bound, sql.Named("project_id", projectID)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out [][]any
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, values)
	}
	return out, rows.Err()
}
