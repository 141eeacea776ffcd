package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/google/uuid"
	"github.com/huangsam/atlas/internal/contract"
	"github.com/huangsam/atlas/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// SQLStore implements RiskStore on top of database/sql.
// With the none backend it keeps no connection: reads are empty and writes are dropped.
type SQLStore struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	now        func() time.Time
}

var _ contract.RiskStore = &SQLStore{} // Compile-time check

// Option configures a SQLStore.
type Option func(*SQLStore)

// WithNow overrides the clock used for record timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *SQLStore) { s.now = now }
}

// NewSQLStore opens a store for the backend and creates its tables.
func NewSQLStore(backend schema.DatabaseBackend, connStr string, opts ...Option) (*SQLStore, error) {
	s := &SQLStore{backend: backend, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	switch backend {
	case schema.SQLiteBackend:
		s.driverName = "sqlite"
		dbPath := ResolveSQLitePath(connStr)
		s.db, err = sql.Open(s.driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		s.db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		s.driverName = "mysql"
		s.db, err = sql.Open(s.driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=atlas
		s.driverName = "pgx"
		s.db, err = sql.Open(s.driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=atlas", err)
		}

	case schema.NoneBackend:
		return s, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := s.db.Ping(); err != nil {
		_ = s.db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if err := createTables(s.db, backend); err != nil {
		_ = s.db.Close()
		return nil, fmt.Errorf("failed to create store tables: %w", err)
	}

	return s, nil
}

// columnTypes maps abstract column kinds to backend types.
type columnTypes struct {
	key, text, long, time, float, int string
}

func columnTypesFor(backend schema.DatabaseBackend) columnTypes {
	switch backend {
	case schema.MySQLBackend:
		return columnTypes{key: "VARCHAR(64)", text: "VARCHAR(255)", long: "TEXT", time: "DATETIME(6)", float: "DOUBLE", int: "INT"}
	case schema.PostgreSQLBackend:
		return columnTypes{key: "TEXT", text: "TEXT", long: "TEXT", time: "TIMESTAMPTZ", float: "DOUBLE PRECISION", int: "INTEGER"}
	default: // SQLite
		return columnTypes{key: "TEXT", text: "TEXT", long: "TEXT", time: "TEXT", float: "REAL", int: "INTEGER"}
	}
}

// tableColumns holds the column list of every table with type placeholders.
var tableColumns = map[string]string{
	votesTable: `
		id {key} PRIMARY KEY,
		team_id {text} NOT NULL,
		sprint {text} NOT NULL,
		confidence_level {int} NOT NULL,
		voted_at {time} NOT NULL`,
	metricsTable: `
		id {key} PRIMARY KEY,
		team_id {text} NOT NULL,
		sprint {text} NOT NULL,
		metric_type {text} NOT NULL,
		metric_value {float} NOT NULL,
		target_value {float},
		recorded_at {time} NOT NULL`,
	objectivesTable: `
		id {key} PRIMARY KEY,
		team_id {text} NOT NULL,
		sprint {text} NOT NULL,
		title {text},
		status {text} NOT NULL`,
	riskScoresTable: `
		id {key} PRIMARY KEY,
		team_id {text} NOT NULL,
		sprint {text} NOT NULL,
		overall_risk_score {int} NOT NULL,
		risk_level {text} NOT NULL,
		confidence_score {float} NOT NULL,
		velocity_score {float} NOT NULL,
		throughput_score {float} NOT NULL,
		objective_health_score {float} NOT NULL,
		factors {long} NOT NULL,
		recommendations {long} NOT NULL,
		created_at {time} NOT NULL`,
}

// getCreateTableQuery returns the CREATE TABLE query for a table on the backend.
func getCreateTableQuery(table string, backend schema.DatabaseBackend) string {
	ct := columnTypesFor(backend)
	columns := strings.NewReplacer(
		"{key}", ct.key,
		"{text}", ct.text,
		"{long}", ct.long,
		"{time}", ct.time,
		"{float}", ct.float,
		"{int}", ct.int,
	).Replace(tableColumns[table])
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s\n\t);", quoteTableName(table, backend), columns)
}

// createTables creates every atlas table that does not exist yet.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	for _, table := range allTables {
		if err := validateTableName(table); err != nil {
			return err
		}
		if _, err := db.Exec(getCreateTableQuery(table, backend)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

// q quotes the table into the query and rebinds placeholders for the backend.
func (s *SQLStore) q(format, table string) string {
	return rebind(fmt.Sprintf(format, quoteTableName(table, s.backend)), s.backend)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// AddConfidenceVote inserts a vote, assigning an ID and VotedAt when they are empty.
func (s *SQLStore) AddConfidenceVote(ctx context.Context, vote *schema.ConfidenceVote) error {
	if vote.ID == "" {
		vote.ID = uuid.NewString()
	}
	if vote.VotedAt.IsZero() {
		vote.VotedAt = s.now()
	}
	if s.db == nil {
		return nil
	}

	query := s.q(`INSERT INTO %s (id, team_id, sprint, confidence_level, voted_at) VALUES (?, ?, ?, ?, ?)`, votesTable)
	if _, err := s.db.ExecContext(ctx, query, vote.ID, vote.TeamID, vote.Sprint, vote.ConfidenceLevel, formatTime(vote.VotedAt, s.backend)); err != nil {
		return fmt.Errorf("failed to insert confidence vote: %w", err)
	}
	return nil
}

// AddMetric inserts a metric, assigning an ID and RecordedAt when they are empty.
func (s *SQLStore) AddMetric(ctx context.Context, metric *schema.Metric) error {
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}
	if metric.RecordedAt.IsZero() {
		metric.RecordedAt = s.now()
	}
	if s.db == nil {
		return nil
	}

	var target sql.NullFloat64
	if metric.Target != nil {
		target = sql.NullFloat64{Float64: *metric.Target, Valid: true}
	}

	query := s.q(`INSERT INTO %s (id, team_id, sprint, metric_type, metric_value, target_value, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`, metricsTable)
	if _, err := s.db.ExecContext(ctx, query, metric.ID, metric.TeamID, metric.Sprint, string(metric.MetricType), metric.Value, target, formatTime(metric.RecordedAt, s.backend)); err != nil {
		return fmt.Errorf("failed to insert metric: %w", err)
	}
	return nil
}

// AddObjective inserts an objective, assigning an ID when it is empty.
func (s *SQLStore) AddObjective(ctx context.Context, objective *schema.Objective) error {
	if objective.ID == "" {
		objective.ID = uuid.NewString()
	}
	if s.db == nil {
		return nil
	}

	query := s.q(`INSERT INTO %s (id, team_id, sprint, title, status) VALUES (?, ?, ?, ?, ?)`, objectivesTable)
	if _, err := s.db.ExecContext(ctx, query, objective.ID, objective.TeamID, objective.Sprint, objective.Title, string(objective.Status)); err != nil {
		return fmt.Errorf("failed to insert objective: %w", err)
	}
	return nil
}

// ListConfidenceVotes returns the votes for a team and sprint, oldest first.
func (s *SQLStore) ListConfidenceVotes(ctx context.Context, teamID, sprint string) ([]schema.ConfidenceVote, error) {
	if s.db == nil {
		return nil, nil
	}

	query := s.q(`SELECT id, team_id, sprint, confidence_level, voted_at FROM %s WHERE team_id = ? AND sprint = ? ORDER BY voted_at, id`, votesTable)
	rows, err := s.db.QueryContext(ctx, query, teamID, sprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query confidence votes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ConfidenceVote
	for rows.Next() {
		var v schema.ConfidenceVote
		var votedAt timeValue
		if err := rows.Scan(&v.ID, &v.TeamID, &v.Sprint, &v.ConfidenceLevel, &votedAt); err != nil {
			return nil, fmt.Errorf("failed to scan confidence vote: %w", err)
		}
		v.VotedAt = votedAt.Time
		results = append(results, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating confidence votes: %w", err)
	}
	return results, nil
}

// ListMetrics returns the metrics for a team and sprint, oldest first.
func (s *SQLStore) ListMetrics(ctx context.Context, teamID, sprint string) ([]schema.Metric, error) {
	if s.db == nil {
		return nil, nil
	}

	query := s.q(`SELECT id, team_id, sprint, metric_type, metric_value, target_value, recorded_at FROM %s WHERE team_id = ? AND sprint = ? ORDER BY recorded_at, id`, metricsTable)
	rows, err := s.db.QueryContext(ctx, query, teamID, sprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Metric
	for rows.Next() {
		var m schema.Metric
		var metricType string
		var target sql.NullFloat64
		var recordedAt timeValue
		if err := rows.Scan(&m.ID, &m.TeamID, &m.Sprint, &metricType, &m.Value, &target, &recordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		m.MetricType = schema.MetricType(metricType)
		if target.Valid {
			t := target.Float64
			m.Target = &t
		}
		m.RecordedAt = recordedAt.Time
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metrics: %w", err)
	}
	return results, nil
}

// ListObjectives returns the objectives for a team and sprint.
func (s *SQLStore) ListObjectives(ctx context.Context, teamID, sprint string) ([]schema.Objective, error) {
	if s.db == nil {
		return nil, nil
	}

	query := s.q(`SELECT id, team_id, sprint, title, status FROM %s WHERE team_id = ? AND sprint = ? ORDER BY id`, objectivesTable)
	rows, err := s.db.QueryContext(ctx, query, teamID, sprint)
	if err != nil {
		return nil, fmt.Errorf("failed to query objectives: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.Objective
	for rows.Next() {
		var o schema.Objective
		var title sql.NullString
		var status string
		if err := rows.Scan(&o.ID, &o.TeamID, &o.Sprint, &title, &status); err != nil {
			return nil, fmt.Errorf("failed to scan objective: %w", err)
		}
		o.Title = title.String
		o.Status = schema.ObjectiveStatus(status)
		results = append(results, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating objectives: %w", err)
	}
	return results, nil
}

// SaveRiskScore inserts a new immutable risk score record for the result.
// It never updates an existing row.
func (s *SQLStore) SaveRiskScore(ctx context.Context, result *schema.RiskAnalysisResult) (*schema.RiskScoreRecord, error) {
	if result == nil {
		return nil, fmt.Errorf("cannot save a nil risk analysis result")
	}
	// MySQL DATETIME(6) keeps microseconds
	record := schema.NewRiskScoreRecord(uuid.NewString(), s.now().UTC().Truncate(time.Microsecond), result)
	if s.db == nil {
		return record, nil
	}

	factorsJSON, err := json.Marshal(record.Factors)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal risk factors: %w", err)
	}
	recsJSON, err := json.Marshal(record.Recommendations)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	query := s.q(`
		INSERT INTO %s (id, team_id, sprint, overall_risk_score, risk_level,
		                confidence_score, velocity_score, throughput_score, objective_health_score,
		                factors, recommendations, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, riskScoresTable)
	args := []any{
		record.ID, record.TeamID, record.Sprint, record.OverallRiskScore, string(record.RiskLevel),
		record.ConfidenceScore, record.VelocityScore, record.ThroughputScore, record.ObjectiveHealthScore,
		string(factorsJSON), string(recsJSON), formatTime(record.CreatedAt, s.backend),
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to insert risk score: %w", err)
	}
	return record, nil
}

const riskScoreColumns = `id, team_id, sprint, overall_risk_score, risk_level,
	confidence_score, velocity_score, throughput_score, objective_health_score,
	factors, recommendations, created_at`

// ListRiskScores returns up to limit records for a team, newest first.
func (s *SQLStore) ListRiskScores(ctx context.Context, teamID string, limit int) ([]schema.RiskScoreRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query := s.q(`SELECT `+riskScoreColumns+` FROM %s WHERE team_id = ? ORDER BY created_at DESC, overall_risk_score DESC`, riskScoresTable)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return s.queryRiskScores(ctx, query, teamID)
}

// GetAllRiskScores returns every record, oldest first.
func (s *SQLStore) GetAllRiskScores(ctx context.Context) ([]schema.RiskScoreRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	query := s.q(`SELECT `+riskScoreColumns+` FROM %s ORDER BY created_at, id`, riskScoresTable)
	return s.queryRiskScores(ctx, query)
}

func (s *SQLStore) queryRiskScores(ctx context.Context, query string, args ...any) ([]schema.RiskScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query risk scores: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RiskScoreRecord
	for rows.Next() {
		record, err := scanRiskScore(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating risk scores: %w", err)
	}
	return results, nil
}

func scanRiskScore(row rowScanner) (schema.RiskScoreRecord, error) {
	var r schema.RiskScoreRecord
	var level, factorsJSON, recsJSON string
	var createdAt timeValue
	if err := row.Scan(&r.ID, &r.TeamID, &r.Sprint, &r.OverallRiskScore, &level,
		&r.ConfidenceScore, &r.VelocityScore, &r.ThroughputScore, &r.ObjectiveHealthScore,
		&factorsJSON, &recsJSON, &createdAt); err != nil {
		return r, fmt.Errorf("failed to scan risk score: %w", err)
	}
	r.RiskLevel = schema.RiskLevel(level)
	r.CreatedAt = createdAt.Time
	if err := json.Unmarshal([]byte(factorsJSON), &r.Factors); err != nil {
		return r, fmt.Errorf("failed to decode factors of risk score %s: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(recsJSON), &r.Recommendations); err != nil {
		return r, fmt.Errorf("failed to decode recommendations of risk score %s: %w", r.ID, err)
	}
	return r, nil
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetStatus returns status information about the store.
func (s *SQLStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}

	if s.db == nil {
		return status, nil
	}

	quoted := quoteTableName(riskScoresTable, s.backend)
	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoted))
	if err := row.Scan(&status.TotalRiskScores); err != nil {
		return status, fmt.Errorf("failed to get total risk scores: %w", err)
	}

	if status.TotalRiskScores > 0 {
		var last, oldest timeValue
		row = s.db.QueryRow(fmt.Sprintf("SELECT MAX(created_at), MIN(created_at) FROM %s", quoted))
		if err := row.Scan(&last, &oldest); err != nil {
			return status, fmt.Errorf("failed to get risk score time range: %w", err)
		}
		status.LastScoreTime = last.Time
		status.OldestScoreTime = oldest.Time
	}

	for _, table := range allTables {
		var count int64
		row = s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}
