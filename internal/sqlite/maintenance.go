// Destructive maintenance operations: clearing character data and dropping
// the whole schema.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/dukaforge/chronicle/internal/prefs"
)

// ClearCharacterData drops and recreates the character, event, event
// detail, and character-event tables as one atomic unit. Races, classes,
// and event types are untouched.
func (s *Store) ClearCharacterData() error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range characterDataTables {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("dropping %s: %w", table, err)
		}
	}
	for _, ddl := range characterDataDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("recreating table: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing clear: %w", err)
	}

	s.log.Info("character data cleared")
	return nil
}

// DropAllTables drops every table as one atomic unit and clears the
// schema-initialized flag so the next Open reseeds. The flag is cleared
// before the drop; if the drop fails it is restored to true, since the
// schema is still in place.
func (s *Store) DropAllTables() error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	if err := s.prefs.SetBool(prefs.KeySchemaInitialized, false); err != nil {
		return fmt.Errorf("clearing initialized flag: %w", err)
	}

	if err := dropAll(db); err != nil {
		if restoreErr := s.prefs.SetBool(prefs.KeySchemaInitialized, true); restoreErr != nil {
			return fmt.Errorf("restoring initialized flag after failed drop: %w (drop: %w)", restoreErr, err)
		}
		return err
	}

	s.log.Info("all tables dropped")
	return nil
}

// dropAll drops every table inside one transaction.
func dropAll(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range allTables {
		if _, err := tx.Exec("DROP TABLE IF EXISTS " + table); err != nil {
			return fmt.Errorf("dropping %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing drop: %w", err)
	}
	return nil
}
