// Character writes and reads: creation, full-replace update, the cascading
// delete, and the joined list/profile queries.
package sqlite

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/pkg/types"
)

// AddCharacter inserts a character and returns the generated id.
func (s *Store) AddCharacter(c *types.Character) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	res, err := db.Exec(
		"INSERT INTO characters (race_id, class_id, name, status, details) VALUES (?, ?, ?, ?, ?)",
		c.RaceID, c.ClassID, c.Name, c.Status, c.Details,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting character: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	c.CharacterID = id

	s.log.Debug("character added", zap.Int64("character_id", id), zap.String("name", c.Name))
	return id, nil
}

// UpdateCharacter overwrites every mutable field of the character row by id.
// Full replace, not patch.
func (s *Store) UpdateCharacter(c *types.Character) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.CharacterID <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	res, err := db.Exec(
		"UPDATE characters SET race_id = ?, class_id = ?, name = ?, status = ?, details = ? WHERE character_id = ?",
		c.RaceID, c.ClassID, c.Name, c.Status, c.Details, c.CharacterID,
	)
	if err != nil {
		return fmt.Errorf("updating character: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// DeleteCharacter removes a character and everything it owns: event
// details, events, and join rows, scoped to that character, as one atomic
// unit.
func (s *Store) DeleteCharacter(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`DELETE FROM event_details WHERE event_id IN
		 (SELECT event_id FROM character_events WHERE character_id = ?)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting event details: %w", err)
	}
	_, err = tx.Exec(
		`DELETE FROM events WHERE event_id IN
		 (SELECT event_id FROM character_events WHERE character_id = ?)`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting events: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM character_events WHERE character_id = ?", id); err != nil {
		return fmt.Errorf("deleting character events: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM characters WHERE character_id = ?", id); err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing character deletion: %w", err)
	}

	s.log.Debug("character deleted", zap.Int64("character_id", id))
	return nil
}

// CharacterCount returns the number of characters.
func (s *Store) CharacterCount() (int64, error) {
	db, err := s.handle()
	if err != nil {
		return 0, err
	}
	var count int64
	if err := db.QueryRow("SELECT COUNT(*) FROM characters").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting characters: %w", err)
	}
	return count, nil
}

// Characters returns all characters joined with race and class names,
// ordered by character name. No experience totals are computed here.
func (s *Store) Characters() ([]types.CharacterSummary, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT c.character_id, c.name, r.name, cl.name, c.status
		 FROM characters c
		 JOIN races r ON r.race_id = c.race_id
		 JOIN classes cl ON cl.class_id = c.class_id
		 ORDER BY c.name`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying characters: %w", err)
	}
	defer rows.Close()

	summaries := []types.CharacterSummary{}
	for rows.Next() {
		var cs types.CharacterSummary
		if err := rows.Scan(&cs.CharacterID, &cs.Name, &cs.RaceName, &cs.ClassName, &cs.Status); err != nil {
			return nil, fmt.Errorf("scanning character: %w", err)
		}
		summaries = append(summaries, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating characters: %w", err)
	}
	return summaries, nil
}

// Character returns one character joined with race/class names and the
// total experience from its event history. Each event contributes
// experience / character_count using SQLite's integer division; the total
// is the sum of those per-event quotients. Events with null experience
// contribute nothing.
func (s *Store) Character(id int64) (*types.CharacterProfile, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		`SELECT c.character_id, c.name, r.name, cl.name, c.status,
		        c.race_id, c.class_id, c.details,
		        COALESCE((SELECT SUM(e.experience / e.character_count)
		                  FROM events e
		                  JOIN character_events ce ON ce.event_id = e.event_id
		                  WHERE ce.character_id = c.character_id), 0)
		 FROM characters c
		 JOIN races r ON r.race_id = c.race_id
		 JOIN classes cl ON cl.class_id = c.class_id
		 WHERE c.character_id = ?`,
		id,
	)

	var p types.CharacterProfile
	var details sql.NullString
	err = row.Scan(
		&p.CharacterID, &p.Name, &p.RaceName, &p.ClassName, &p.Status,
		&p.RaceID, &p.ClassID, &details, &p.Experience,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting character %d: %w", id, err)
	}
	p.Details = details.String
	return &p, nil
}
