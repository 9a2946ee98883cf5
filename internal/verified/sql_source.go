package verified

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/uniscore/uniscore/internal/model"
)

// SQLSource loads verified records from Postgres. Deployments that curate
// the verified set in a database point the engine here instead of at the
// YAML file; the engine still snapshots everything into memory at startup.
type SQLSource struct {
	db *sqlx.DB
}

// OpenSQLSource connects to Postgres and verifies connectivity.
func OpenSQLSource(ctx context.Context, dsn string) (*SQLSource, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to verified records db: %w", err)
	}
	return &SQLSource{db: db}, nil
}

// NewSQLSource wraps an existing connection. Used by tests.
func NewSQLSource(db *sqlx.DB) *SQLSource {
	return &SQLSource{db: db}
}

// Close releases the underlying connection pool.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

type institutionRow struct {
	Key          string         `db:"key"`
	DisplayName  string         `db:"display_name"`
	Aliases      pq.StringArray `db:"aliases"`
	Country      string         `db:"country"`
	Type         string         `db:"institution_type"`
	Scope        string         `db:"scope"`
	Academic     float64        `db:"academic"`
	Graduate     float64        `db:"graduate"`
	ROI          float64        `db:"roi"`
	FSR          float64        `db:"fsr"`
	Transparency float64        `db:"transparency"`
	Visibility   float64        `db:"visibility"`
	DataQuality  float64        `db:"data_quality"`
	Sources      pq.StringArray `db:"sources"`
	Description  string         `db:"description"`
}

const selectInstitutions = `
SELECT key, display_name, aliases, country, institution_type, scope,
       academic, graduate, roi, fsr, transparency, visibility,
       data_quality, sources, description
FROM institutions
ORDER BY key`

// Load implements RecordSource.
func (s *SQLSource) Load(ctx context.Context) ([]model.InstitutionRecord, error) {
	var rows []institutionRow
	if err := s.db.SelectContext(ctx, &rows, selectInstitutions); err != nil {
		return nil, fmt.Errorf("querying institutions: %w", err)
	}

	records := make([]model.InstitutionRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.InstitutionRecord{
			Key:         row.Key,
			DisplayName: row.DisplayName,
			Aliases:     []string(row.Aliases),
			Country:     row.Country,
			Type:        model.InstitutionType(row.Type),
			Scope:       model.ScopeLevel(row.Scope),
			Scores: model.PillarValues{
				Academic:     row.Academic,
				Graduate:     row.Graduate,
				ROI:          row.ROI,
				FSR:          row.FSR,
				Transparency: row.Transparency,
				Visibility:   row.Visibility,
			},
			DataQuality: row.DataQuality,
			Sources:     []string(row.Sources),
			Description: row.Description,
		}
		applyRecordDefaults(&rec)
		records = append(records, rec)
	}
	return records, nil
}
