// Event writes and reads. AddEvent, UpdateEvent, and DeleteEvent are the
// grouped writes at the heart of the engine: each runs as one transaction
// across the event, join, detail, and character tables, and keeps the
// character's derived living status in sync with the event history.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dukaforge/chronicle/pkg/types"
)

// AddEvent inserts an event, its character association, and its details as
// one atomic unit, and returns the generated event id. When the event type
// is resurrect or death the character's status is set in the same unit, so
// a failed write leaves the stored status untouched.
func (s *Store) AddEvent(ev *types.Event, details []types.EventDetail, characterID int64) (int64, error) {
	if err := ev.Validate(); err != nil {
		return 0, err
	}
	if len(details) == 0 {
		return 0, types.ErrNoDetails
	}
	if characterID <= 0 {
		return 0, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return 0, err
	}

	if ev.Date == "" {
		ev.Date = time.Now().Format(types.DateLayout)
	} else if _, err := time.Parse(types.DateLayout, ev.Date); err != nil {
		return 0, types.ErrInvalidDate
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO events (event_type_id, character_count, event_date, experience, description) VALUES (?, ?, ?, ?, ?)",
		ev.EventTypeID, ev.CharacterCount, ev.Date, nullInt64(ev.Experience), ev.Description,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting event: %w", err)
	}
	eventID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}

	_, err = tx.Exec(
		"INSERT INTO character_events (character_id, event_id) VALUES (?, ?)",
		characterID, eventID,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting character event: %w", err)
	}

	if err := insertDetails(tx, eventID, details); err != nil {
		return 0, err
	}

	if status, ok := types.StatusForEventType(ev.EventTypeID); ok {
		if _, err := tx.Exec("UPDATE characters SET status = ? WHERE character_id = ?", status, characterID); err != nil {
			return 0, fmt.Errorf("updating character status: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing event: %w", err)
	}

	ev.EventID = eventID
	s.log.Debug("event added",
		zap.Int64("event_id", eventID),
		zap.Int64("character_id", characterID),
		zap.Int64("event_type_id", ev.EventTypeID),
	)
	return eventID, nil
}

// UpdateEvent overwrites the event row by id and replaces its details:
// every existing detail row is deleted and the supplied ones re-inserted,
// all in one transaction. At least one detail is required. This operation
// never changes a character's status; callers updating a resurrect/death
// event must not change its type.
func (s *Store) UpdateEvent(ev *types.Event, details []types.EventDetail) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	if ev.EventID <= 0 {
		return types.ErrInvalidID
	}
	if len(details) == 0 {
		return types.ErrNoDetails
	}
	db, err := s.handle()
	if err != nil {
		return err
	}

	if ev.Date == "" {
		ev.Date = time.Now().Format(types.DateLayout)
	} else if _, err := time.Parse(types.DateLayout, ev.Date); err != nil {
		return types.ErrInvalidDate
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE events SET event_type_id = ?, character_count = ?, event_date = ?, experience = ?, description = ? WHERE event_id = ?",
		ev.EventTypeID, ev.CharacterCount, ev.Date, nullInt64(ev.Experience), ev.Description, ev.EventID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading rows affected: %w", err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}

	if _, err := tx.Exec("DELETE FROM event_details WHERE event_id = ?", ev.EventID); err != nil {
		return fmt.Errorf("deleting event details: %w", err)
	}
	if err := insertDetails(tx, ev.EventID, details); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing event update: %w", err)
	}
	return nil
}

// DeleteEvent removes the event, its details, and its join row, then
// recomputes the owning character's status from the remaining
// resurrect/death events, all in one transaction. The deleted event may
// have been the one that most recently set the status, so the derived value
// cannot be assigned up front; it is re-derived from the post-delete state
// inside the same unit. Returns the recomputed status so callers can sync
// their session without re-querying.
func (s *Store) DeleteEvent(id, characterID int64) (string, error) {
	if id <= 0 || characterID <= 0 {
		return "", types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM event_details WHERE event_id = ?", id); err != nil {
		return "", fmt.Errorf("deleting event details: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM events WHERE event_id = ?", id); err != nil {
		return "", fmt.Errorf("deleting event: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM character_events WHERE event_id = ?", id); err != nil {
		return "", fmt.Errorf("deleting character event: %w", err)
	}

	status, err := deriveStatus(tx, characterID)
	if err != nil {
		return "", err
	}
	if _, err := tx.Exec("UPDATE characters SET status = ? WHERE character_id = ?", status, characterID); err != nil {
		return "", fmt.Errorf("updating character status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing event deletion: %w", err)
	}

	s.log.Debug("event deleted",
		zap.Int64("event_id", id),
		zap.Int64("character_id", characterID),
		zap.String("status", status),
	)
	return status, nil
}

// deriveStatus computes the character's living status from its remaining
// resurrect/death events: the type of the most recent one by date wins
// (ties broken by event id), alive when none remain.
func deriveStatus(tx *sql.Tx, characterID int64) (string, error) {
	var typeID int64
	err := tx.QueryRow(
		`SELECT e.event_type_id
		 FROM events e
		 JOIN character_events ce ON ce.event_id = e.event_id
		 WHERE ce.character_id = ? AND e.event_type_id IN (?, ?)
		 ORDER BY e.event_date DESC, e.event_id DESC
		 LIMIT 1`,
		characterID, types.EventTypeResurrect, types.EventTypeDeath,
	).Scan(&typeID)
	if err != nil {
		if err == sql.ErrNoRows {
			return types.StatusAlive, nil
		}
		return "", fmt.Errorf("deriving status: %w", err)
	}

	status, ok := types.StatusForEventType(typeID)
	if !ok {
		return "", fmt.Errorf("deriving status: unexpected event type %d", typeID)
	}
	return status, nil
}

// insertDetails inserts the supplied details with sequential detail ids
// starting at 1. Detail ids are scoped to the event, not globally unique.
func insertDetails(tx *sql.Tx, eventID int64, details []types.EventDetail) error {
	for i, d := range details {
		if d.Name == "" {
			return types.ErrInvalidName
		}
		_, err := tx.Exec(
			"INSERT INTO event_details (detail_id, event_id, name, creature_count) VALUES (?, ?, ?, ?)",
			int64(i+1), eventID, d.Name, nullInt64(d.CreatureCount),
		)
		if err != nil {
			return fmt.Errorf("inserting event detail %d: %w", i+1, err)
		}
	}
	return nil
}

// Event returns one event with its type name and details ordered by
// detail id.
func (s *Store) Event(id int64) (*types.Event, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow(
		`SELECT e.event_id, e.event_type_id, t.name, e.character_count, e.event_date, e.experience, e.description
		 FROM events e
		 JOIN event_types t ON t.event_type_id = e.event_type_id
		 WHERE e.event_id = ?`,
		id,
	)
	ev, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting event %d: %w", id, err)
	}

	ev.Details, err = s.eventDetails(db, id)
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// CharacterEvents returns all of a character's events with their details,
// ordered by date ascending (ties by event id).
func (s *Store) CharacterEvents(characterID int64) ([]types.Event, error) {
	if characterID <= 0 {
		return nil, types.ErrInvalidID
	}
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		`SELECT e.event_id, e.event_type_id, t.name, e.character_count, e.event_date, e.experience, e.description
		 FROM events e
		 JOIN event_types t ON t.event_type_id = e.event_type_id
		 JOIN character_events ce ON ce.event_id = e.event_id
		 WHERE ce.character_id = ?
		 ORDER BY e.event_date ASC, e.event_id ASC`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying character events: %w", err)
	}
	defer rows.Close()

	events := []types.Event{}
	for rows.Next() {
		ev, err := scanEventFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	for i := range events {
		events[i].Details, err = s.eventDetails(db, events[i].EventID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// EventTitles returns, for each requested event type id, the distinct
// detail names used by events of that type, sorted. Types with no history
// map to an empty list, never an absent entry.
func (s *Store) EventTitles(typeIDs []int64) (map[int64][]string, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	titles := make(map[int64][]string, len(typeIDs))
	for _, typeID := range typeIDs {
		rows, err := db.Query(
			`SELECT DISTINCT d.name
			 FROM event_details d
			 JOIN events e ON e.event_id = d.event_id
			 WHERE e.event_type_id = ?
			 ORDER BY d.name`,
			typeID,
		)
		if err != nil {
			return nil, fmt.Errorf("querying titles for type %d: %w", typeID, err)
		}

		names := []string{}
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scanning title: %w", err)
			}
			names = append(names, name)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterating titles: %w", err)
		}
		rows.Close()
		titles[typeID] = names
	}
	return titles, nil
}

// eventDetails loads the details for one event ordered by detail id.
func (s *Store) eventDetails(db *sql.DB, eventID int64) ([]types.EventDetail, error) {
	rows, err := db.Query(
		"SELECT detail_id, event_id, name, creature_count FROM event_details WHERE event_id = ? ORDER BY detail_id",
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying event details: %w", err)
	}
	defer rows.Close()

	details := []types.EventDetail{}
	for rows.Next() {
		var d types.EventDetail
		var creatures sql.NullInt64
		if err := rows.Scan(&d.DetailID, &d.EventID, &d.Name, &creatures); err != nil {
			return nil, fmt.Errorf("scanning event detail: %w", err)
		}
		d.CreatureCount = fromNullInt64(creatures)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating event details: %w", err)
	}
	return details, nil
}

// scanEvent hydrates a single event row.
func scanEvent(row *sql.Row) (*types.Event, error) {
	var ev types.Event
	var exp sql.NullInt64
	var desc sql.NullString
	err := row.Scan(&ev.EventID, &ev.EventTypeID, &ev.TypeName, &ev.CharacterCount, &ev.Date, &exp, &desc)
	if err != nil {
		return nil, err
	}
	ev.Experience = fromNullInt64(exp)
	ev.Description = desc.String
	return &ev, nil
}

// scanEventFromRows hydrates an event from a multi-row result set.
func scanEventFromRows(rows *sql.Rows) (*types.Event, error) {
	var ev types.Event
	var exp sql.NullInt64
	var desc sql.NullString
	err := rows.Scan(&ev.EventID, &ev.EventTypeID, &ev.TypeName, &ev.CharacterCount, &ev.Date, &exp, &desc)
	if err != nil {
		return nil, err
	}
	ev.Experience = fromNullInt64(exp)
	ev.Description = desc.String
	return &ev, nil
}

// nullInt64 maps an optional int64 to its nullable SQL form.
func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

// fromNullInt64 reverses nullInt64.
func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}
