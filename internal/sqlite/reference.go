// Race and class reference data: insert-if-absent creation, conditional
// deletion, and ordered listing.
package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/pkg/types"
)

// AddRace inserts a race by unique name. When the name already exists the
// call still succeeds with inserted=false and id 0.
func (s *Store) AddRace(name string) (int64, bool, error) {
	return s.addReference("races", name)
}

// AddClass inserts a character class by unique name, with the same
// collision semantics as AddRace.
func (s *Store) AddClass(name string) (int64, bool, error) {
	return s.addReference("classes", name)
}

func (s *Store) addReference(table, name string) (int64, bool, error) {
	if name == "" {
		return 0, false, types.ErrInvalidName
	}
	db, err := s.handle()
	if err != nil {
		return 0, false, err
	}

	res, err := db.Exec("INSERT OR IGNORE INTO "+table+" (name) VALUES (?)", name)
	if err != nil {
		return 0, false, fmt.Errorf("inserting into %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, false, fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		// Unique-name collision is a no-op success, not an error.
		return 0, false, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("reading inserted id: %w", err)
	}
	s.log.Debug("reference row added", zap.String("table", table), zap.Int64("id", id))
	return id, true, nil
}

// DeleteRace removes a race only while no character references it. A
// blocked delete reports deleted=false and is a successful completion,
// not an error.
func (s *Store) DeleteRace(id int64) (bool, error) {
	return s.deleteReference("races", "race_id", id)
}

// DeleteClass removes a character class with the same referential guard as
// DeleteRace.
func (s *Store) DeleteClass(id int64) (bool, error) {
	return s.deleteReference("classes", "class_id", id)
}

func (s *Store) deleteReference(table, idCol string, id int64) (bool, error) {
	if id <= 0 {
		return false, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ? AND NOT EXISTS (SELECT 1 FROM characters WHERE %s = ?)",
		table, idCol, idCol,
	)
	res, err := db.Exec(query, id, id)
	if err != nil {
		return false, fmt.Errorf("deleting from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return affected > 0, nil
}

// Races returns all races ordered by name.
func (s *Store) Races() ([]types.SelectEntry, error) {
	return s.listReference("races", "race_id")
}

// Classes returns all character classes ordered by name.
func (s *Store) Classes() ([]types.SelectEntry, error) {
	return s.listReference("classes", "class_id")
}

// EventTypes returns the event type enumeration ordered by id.
func (s *Store) EventTypes() ([]types.SelectEntry, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	return scanSelectEntries(db, "SELECT event_type_id, name FROM event_types ORDER BY event_type_id")
}

func (s *Store) listReference(table, idCol string) ([]types.SelectEntry, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT %s, name FROM %s ORDER BY name", idCol, table)
	return scanSelectEntries(db, query)
}

// scanSelectEntries runs a two-column (id, name) query and returns the rows
// as SelectEntry values. Returns an empty slice, never nil.
func scanSelectEntries(db *sql.DB, query string, args ...any) ([]types.SelectEntry, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	entries := []types.SelectEntry{}
	for rows.Next() {
		var e types.SelectEntry
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}
