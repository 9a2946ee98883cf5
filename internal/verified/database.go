// Package verified holds the static database of institutions with known
// pillar scores. Records are loaded once at process start from a
// RecordSource and indexed read-only; nothing is written at request time.
package verified

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/uniscore/uniscore/internal/model"
)

// RecordSource loads institution records from some backing store. The
// engine only requires that records be loadable before the first Rank
// call; where they come from is the source's concern.
type RecordSource interface {
	Load(ctx context.Context) ([]model.InstitutionRecord, error)
}

// Database is the immutable in-memory index of verified records.
type Database struct {
	records map[string]*model.InstitutionRecord
	aliases map[string]string
}

// NewDatabase validates and indexes a record set. Every verified record
// must carry data_quality 1.0; partially trusted data belongs in the
// estimator, not here.
func NewDatabase(records []model.InstitutionRecord) (*Database, error) {
	db := &Database{
		records: make(map[string]*model.InstitutionRecord, len(records)),
		aliases: make(map[string]string),
	}
	for i := range records {
		rec := records[i]
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("verified record %d: %w", i, err)
		}
		if rec.DataQuality != 1.0 {
			return nil, fmt.Errorf("verified record %s: data_quality %.2f, want 1.0", rec.Key, rec.DataQuality)
		}
		key := model.NormalizeKey(rec.Key)
		if _, dup := db.records[key]; dup {
			return nil, fmt.Errorf("duplicate verified record: %s", key)
		}
		db.records[key] = &rec
		for _, alias := range rec.Aliases {
			a := model.NormalizeKey(alias)
			if a == "" {
				continue
			}
			if _, dup := db.aliases[a]; dup {
				return nil, fmt.Errorf("duplicate alias %q on record %s", alias, rec.Key)
			}
			db.aliases[a] = key
		}
	}
	return db, nil
}

// Open loads records from the source and builds the index.
func Open(ctx context.Context, src RecordSource) (*Database, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading verified records: %w", err)
	}
	db, err := NewDatabase(records)
	if err != nil {
		return nil, err
	}
	log.Info().Int("records", len(db.records)).Msg("verified database loaded")
	return db, nil
}

// Lookup resolves an institution name (or alias) to its verified record.
func (db *Database) Lookup(name string) (*model.InstitutionRecord, bool) {
	key := model.NormalizeKey(name)
	if rec, ok := db.records[key]; ok {
		return rec, true
	}
	if target, ok := db.aliases[key]; ok {
		return db.records[target], true
	}
	return nil, false
}

// Len returns the number of indexed records.
func (db *Database) Len() int {
	return len(db.records)
}
