package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/atlas/schema"
)

// Table names for team data and risk history.
const (
	votesTable      = "atlas_confidence_votes"
	metricsTable    = "atlas_metrics"
	objectivesTable = "atlas_objectives"
	riskScoresTable = "atlas_risk_scores"
	migrationsTable = "atlas_schema_migrations"
)

// allTables lists the data tables in creation order.
var allTables = []string{votesTable, metricsTable, objectivesTable, riskScoresTable}

// sqliteTimeFormat is fixed width so TEXT columns sort chronologically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateTableName checks that a table name is safe to interpolate into SQL.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern ^[a-zA-Z_][a-zA-Z0-9_]*$)", name)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("\"%s\"", name)
	}
}

// rebind rewrites '?' placeholders into the backend's parameter syntax.
func rebind(query string, backend schema.DatabaseBackend) string {
	if backend != schema.PostgreSQLBackend {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeFormat)
	default:
		return t.UTC()
	}
}

// timeValue scans timestamps stored as native datetimes or as text.
type timeValue struct {
	time.Time
}

// Scan implements sql.Scanner.
func (tv *timeValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		tv.Time = time.Time{}
		return nil
	case time.Time:
		tv.Time = v.UTC()
		return nil
	case string:
		return tv.parse(v)
	case []byte:
		return tv.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into time", src)
	}
}

func (tv *timeValue) parse(s string) error {
	for _, layout := range []string{sqliteTimeFormat, time.RFC3339Nano, "2006-01-02 15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			tv.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized time format: %q", s)
}
