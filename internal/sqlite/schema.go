// Package sqlite implements the chronicle storage layer: schema management,
// the transactional write engine, and the read/query layer over an embedded
// SQLite database.
package sqlite

// Schema DDL. Foreign keys are declared for documentation; the engine-level
// foreign key pragma stays off because all cascades are owned by the write
// engine, never by the storage engine.
const (
	createRaces = `CREATE TABLE IF NOT EXISTS races (
    race_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createClasses = `CREATE TABLE IF NOT EXISTS classes (
    class_id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
);`

	createEventTypes = `CREATE TABLE IF NOT EXISTS event_types (
    event_type_id INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);`

	createCharacters = `CREATE TABLE IF NOT EXISTS characters (
    character_id INTEGER PRIMARY KEY AUTOINCREMENT,
    race_id INTEGER NOT NULL,
    class_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    status TEXT NOT NULL,
    details TEXT,
    FOREIGN KEY (race_id) REFERENCES races(race_id),
    FOREIGN KEY (class_id) REFERENCES classes(class_id)
);`

	createEvents = `CREATE TABLE IF NOT EXISTS events (
    event_id INTEGER PRIMARY KEY AUTOINCREMENT,
    event_type_id INTEGER NOT NULL,
    character_count INTEGER NOT NULL,
    event_date TEXT NOT NULL,
    experience INTEGER,
    description TEXT,
    FOREIGN KEY (event_type_id) REFERENCES event_types(event_type_id)
);`

	createEventDetails = `CREATE TABLE IF NOT EXISTS event_details (
    detail_id INTEGER NOT NULL,
    event_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    creature_count INTEGER,
    PRIMARY KEY (detail_id, event_id),
    FOREIGN KEY (event_id) REFERENCES events(event_id)
);`

	createCharacterEvents = `CREATE TABLE IF NOT EXISTS character_events (
    character_id INTEGER NOT NULL,
    event_id INTEGER NOT NULL,
    PRIMARY KEY (character_id, event_id),
    FOREIGN KEY (character_id) REFERENCES characters(character_id),
    FOREIGN KEY (event_id) REFERENCES events(event_id)
);`
)

// Index DDL for common queries.
const (
	idxEventsTypeDate      = `CREATE INDEX IF NOT EXISTS idx_events_type_date ON events(event_type_id, event_date);`
	idxEventDetailsEvent   = `CREATE INDEX IF NOT EXISTS idx_event_details_event ON event_details(event_id);`
	idxCharacterEventsChar = `CREATE INDEX IF NOT EXISTS idx_character_events_character ON character_events(character_id);`
	idxCharactersRace      = `CREATE INDEX IF NOT EXISTS idx_characters_race ON characters(race_id);`
	idxCharactersClass     = `CREATE INDEX IF NOT EXISTS idx_characters_class ON characters(class_id);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createRaces,
	createClasses,
	createEventTypes,
	createCharacters,
	createEvents,
	createEventDetails,
	createCharacterEvents,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEventsTypeDate,
	idxEventDetailsEvent,
	idxCharacterEventsChar,
	idxCharactersRace,
	idxCharactersClass,
}

// characterDataDDL recreates the tables dropped by ClearCharacterData,
// in dependency order.
var characterDataDDL = []string{
	createCharacters,
	createEvents,
	createEventDetails,
	createCharacterEvents,
}

// characterDataTables are the tables holding per-character data, in a
// drop-safe order (children before parents).
var characterDataTables = []string{
	"event_details",
	"character_events",
	"events",
	"characters",
}

// allTables lists every table in a drop-safe order.
var allTables = []string{
	"event_details",
	"character_events",
	"events",
	"characters",
	"event_types",
	"classes",
	"races",
}
