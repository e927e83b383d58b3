// Seeding of default reference data on first open.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/dukaforge/chronicle/pkg/types"
)

// defaultRaces are seeded on first open. Every insert is keyed on the
// unique name, so reseeding after a lost initialized flag never duplicates.
var defaultRaces = []string{
	"Dwarf",
	"Elf",
	"Gnome",
	"Half-Elf",
	"Halfling",
	"Human",
	"Orc",
}

// defaultClasses are seeded on first open.
var defaultClasses = []string{
	"Barbarian",
	"Bard",
	"Cleric",
	"Druid",
	"Fighter",
	"Monk",
	"Paladin",
	"Ranger",
	"Rogue",
	"Sorcerer",
	"Wizard",
}

// seedEventType pairs the fixed literal id of an event type with its name.
type seedEventType struct {
	id   int64
	name string
}

// eventTypeSeed holds the fixed event type enumeration. Ids are literal,
// never auto-assigned, so the resurrect/death ids the status derivation
// depends on are stable across databases.
var eventTypeSeed = []seedEventType{
	{types.EventTypeCombat, "Combat"},
	{types.EventTypeNonCombat, "Non-Combat"},
	{types.EventTypeResurrect, "Resurrect"},
	{types.EventTypeDeath, "Death"},
}

// seedDefaults inserts the default races, classes, and event types inside
// one transaction using insert-if-absent semantics.
func seedDefaults(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range defaultRaces {
		if _, err := tx.Exec("INSERT OR IGNORE INTO races (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seeding race %s: %w", name, err)
		}
	}
	for _, name := range defaultClasses {
		if _, err := tx.Exec("INSERT OR IGNORE INTO classes (name) VALUES (?)", name); err != nil {
			return fmt.Errorf("seeding class %s: %w", name, err)
		}
	}
	for _, et := range eventTypeSeed {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO event_types (event_type_id, name) VALUES (?, ?)",
			et.id, et.name,
		)
		if err != nil {
			return fmt.Errorf("seeding event type %s: %w", et.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed transaction: %w", err)
	}
	return nil
}
